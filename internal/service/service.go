package service

import (
	"context"
	"time"

	"github.com/Egor213/Sawmill/internal/broker"
	"github.com/Egor213/Sawmill/internal/domain"
	"github.com/Egor213/Sawmill/internal/metrics"
	"github.com/Egor213/Sawmill/internal/repo"
)

type Log interface {
	Intake(ctx context.Context, entry *domain.LogEntry) (int64, error)
	ListEntries(ctx context.Context, fs domain.FilterState, page, pageSize int) (domain.EntryPage, error)
}

type Auth interface {
	Authenticate(ctx context.Context, email, password string) (domain.User, error)
	LoadUser(ctx context.Context, email string) (domain.User, error)
}

type Option interface {
	Get(ctx context.Context, key, defaultValue string) (string, error)
	Title(ctx context.Context) string
	Revision() string
}

type Services struct {
	Log
	Auth
	Option
}

type ServicesDependencies struct {
	Repos          *repo.Repositories
	Counters       *metrics.Counters
	BrokerProducer broker.Producer
	PublishTimeout time.Duration
	Revision       string
}

func NewServices(deps ServicesDependencies) *Services {
	producer := deps.BrokerProducer
	if producer == nil {
		producer = broker.NopProducer{}
	}
	return &Services{
		Log:    NewLogService(deps.Repos.Log, deps.Counters, producer, deps.PublishTimeout),
		Auth:   NewAuthService(deps.Repos.User),
		Option: NewOptionService(deps.Repos.Option, deps.Revision),
	}
}
