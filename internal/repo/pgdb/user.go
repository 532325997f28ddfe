package pgdb

import (
	"context"
	"errors"

	"github.com/Egor213/Sawmill/internal/domain"
	"github.com/Egor213/Sawmill/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/Sawmill/pkg/errors"
	"github.com/Egor213/Sawmill/pkg/postgres"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type UserRepo struct {
	*postgres.Postgres
}

func NewUserRepo(pg *postgres.Postgres) *UserRepo {
	return &UserRepo{pg}
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	sql, args, err := r.Builder.
		Select("id", "email", "hashed_password", "is_admin").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, repoerrs.ErrNotFound
		}
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}
	return user, nil
}
