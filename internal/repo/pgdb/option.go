package pgdb

import (
	"context"
	"errors"

	"github.com/Egor213/Sawmill/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/Sawmill/pkg/errors"
	"github.com/Egor213/Sawmill/pkg/postgres"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type OptionRepo struct {
	*postgres.Postgres
}

func NewOptionRepo(pg *postgres.Postgres) *OptionRepo {
	return &OptionRepo{pg}
}

func (r *OptionRepo) GetOption(ctx context.Context, key string) (string, error) {
	sql, args, err := r.Builder.
		Select("value").
		From("options").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", errorsUtils.WrapPathErr(err)
	}

	var value string
	err = r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).QueryRow(ctx, sql, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", repoerrs.ErrNotFound
		}
		return "", errorsUtils.WrapPathErr(err)
	}
	return value, nil
}
