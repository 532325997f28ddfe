package pgdb

import (
	"math"

	"github.com/Egor213/Sawmill/internal/repo/repotypes"
	sq "github.com/Masterminds/squirrel"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

func BuildEntryQueryFilters(filter repotypes.EntryFilter) []sq.Sqlizer {
	conds := []sq.Sqlizer{}

	if len(filter.Servers) > 0 {
		conds = append(conds, sq.Eq{"server": filter.Servers})
	}
	if len(filter.LogNames) > 0 {
		conds = append(conds, sq.Eq{"log_name": filter.LogNames})
	}

	return conds
}

func BuildPagination(filter repotypes.EntryFilter) (limit uint64, offset uint64) {
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	// OFFSET is a bigint; pages beyond it are past any possible row and stay
	// empty instead of wrapping around.
	if uint64(page-1) > math.MaxInt64/uint64(pageSize) {
		return uint64(pageSize), math.MaxInt64
	}

	return uint64(pageSize), uint64(page-1) * uint64(pageSize)
}
