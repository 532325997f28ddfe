package pgdb_test

import (
	"testing"

	"github.com/Egor213/Sawmill/pkg/postgres"
	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

// newMockPostgres returns a Postgres backed by a mock pool that matches SQL
// text exactly.
func newMockPostgres(t *testing.T) (*postgres.Postgres, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return &postgres.Postgres{
		Builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		CtxGetter: trmpgx.DefaultCtxGetter,
		Pool:      mock,
	}, mock
}
