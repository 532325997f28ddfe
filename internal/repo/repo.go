package repo

import (
	"context"

	"github.com/Egor213/Sawmill/internal/domain"
	"github.com/Egor213/Sawmill/internal/repo/pgdb"
	"github.com/Egor213/Sawmill/internal/repo/repotypes"
	"github.com/Egor213/Sawmill/pkg/postgres"
)

type Log interface {
	AppendEntry(ctx context.Context, entry *domain.LogEntry) (int64, error)
	GetEntries(ctx context.Context, filter repotypes.EntryFilter) ([]domain.LogEntry, int, error)
	GetDistinctServers(ctx context.Context) ([]string, error)
	GetDistinctLogNames(ctx context.Context) ([]string, error)
}

type User interface {
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

type Option interface {
	GetOption(ctx context.Context, key string) (string, error)
}

type Repositories struct {
	Log
	User
	Option
}

func NewRepositories(pg *postgres.Postgres) *Repositories {
	return &Repositories{
		Log:    pgdb.NewLogRepo(pg),
		User:   pgdb.NewUserRepo(pg),
		Option: pgdb.NewOptionRepo(pg),
	}
}
