package pgdb

import (
	"context"

	"github.com/Egor213/Sawmill/internal/domain"
	"github.com/Egor213/Sawmill/internal/repo/repoerrs"
	"github.com/Egor213/Sawmill/internal/repo/repotypes"
	errorsUtils "github.com/Egor213/Sawmill/pkg/errors"
	"github.com/Egor213/Sawmill/pkg/postgres"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const logTable = "log_entry"

type LogRepo struct {
	*postgres.Postgres
}

func NewLogRepo(pg *postgres.Postgres) *LogRepo {
	return &LogRepo{pg}
}

func (r *LogRepo) AppendEntry(ctx context.Context, entry *domain.LogEntry) (int64, error) {
	sql, args, err := r.Builder.
		Insert(logTable).
		Columns(`"timestamp"`, "server", "log_name", "message").
		Values(entry.Timestamp, entry.Server, entry.LogName, entry.Message).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	var id int64
	err = r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if errorsUtils.IsDataViolation(err) {
			return 0, errorsUtils.WrapPathErr(repoerrs.ErrInvalidData)
		}
		return 0, errorsUtils.WrapPathErr(err)
	}
	return id, nil
}

// GetEntries returns one page ordered by id, which follows insertion order,
// and the total number of matching rows.
func (r *LogRepo) GetEntries(ctx context.Context, filter repotypes.EntryFilter) ([]domain.LogEntry, int, error) {
	conds := BuildEntryQueryFilters(filter)
	limit, offset := BuildPagination(filter)

	countQuery := r.Builder.Select("COUNT(*)").From(logTable)
	query := r.Builder.
		Select("id", `"timestamp"`, "server", "log_name", "message").
		From(logTable).
		OrderBy("id ASC").
		Limit(limit).
		Offset(offset)

	if len(conds) > 0 {
		countQuery = countQuery.Where(sq.And(conds))
		query = query.Where(sq.And(conds))
	}

	db := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool)

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, errorsUtils.WrapPathErr(err)
	}
	var total int
	if err := db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, errorsUtils.WrapPathErr(err)
	}

	sql, args, err = query.ToSql()
	if err != nil {
		return nil, 0, errorsUtils.WrapPathErr(err)
	}
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.LogEntry])
	if err != nil {
		return nil, 0, errorsUtils.WrapPathErr(err)
	}

	return entries, total, nil
}

func (r *LogRepo) GetDistinctServers(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "server")
}

func (r *LogRepo) GetDistinctLogNames(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "log_name")
}

// distinct scans the whole table; cost grows with the number of distinct values.
func (r *LogRepo) distinct(ctx context.Context, column string) ([]string, error) {
	sql, args, err := r.Builder.
		Select(column).
		Distinct().
		From(logTable).
		OrderBy(column + ` COLLATE "C"`).
		ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return values, nil
}
