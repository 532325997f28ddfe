package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/Egor213/Sawmill/internal/broker"
	"github.com/Egor213/Sawmill/internal/domain"
	"github.com/Egor213/Sawmill/internal/metrics"
	"github.com/Egor213/Sawmill/internal/repo"
	"github.com/Egor213/Sawmill/internal/repo/repoerrs"
	"github.com/Egor213/Sawmill/internal/repo/repotypes"
	errorsUtils "github.com/Egor213/Sawmill/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500

	DefaultPublishTimeout = 2 * time.Second
)

type LogService struct {
	logRepo        repo.Log
	counters       *metrics.Counters
	brokerProducer broker.Producer
	publishTimeout time.Duration
}

func NewLogService(lr repo.Log, cnt *metrics.Counters, p broker.Producer, publishTimeout time.Duration) *LogService {
	if publishTimeout <= 0 {
		publishTimeout = DefaultPublishTimeout
	}
	return &LogService{
		logRepo:        lr,
		counters:       cnt,
		brokerProducer: p,
		publishTimeout: publishTimeout,
	}
}

// Intake appends one entry. Every call is a separate insert: duplicates
// delivered by the shipper are stored twice.
func (s *LogService) Intake(ctx context.Context, entry *domain.LogEntry) (int64, error) {
	if err := validateEntry(entry); err != nil {
		return 0, err
	}
	entry.Timestamp = entry.Timestamp.UTC()

	id, err := s.logRepo.AppendEntry(ctx, entry)
	if err != nil {
		if errors.Is(err, repoerrs.ErrInvalidData) {
			return 0, newValidationError("entry rejected by store")
		}
		log.WithError(err).Error("Append entry failed")
		return 0, errorsUtils.WrapPathErr(ErrCannotCreateEntry)
	}
	entry.Id = id

	s.counters.EntriesReceived.Inc(entry.Server)
	s.publish(ctx, *entry)

	return id, nil
}

// publish is bounded by publishTimeout and ignores the caller's
// cancellation; the entry is already stored when it runs.
func (s *LogService) publish(ctx context.Context, entry domain.LogEntry) {
	key, value, err := broker.EncodeEntry(entry)
	if err != nil {
		log.WithError(err).Warn("Cannot encode entry for broker")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	if err := s.brokerProducer.SendMessage(ctx, key, value); err != nil {
		log.WithError(err).WithField("id", entry.Id).Warn("Entry not published")
	}
}

func (s *LogService) ListEntries(ctx context.Context, fs domain.FilterState, page, pageSize int) (domain.EntryPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	entries, total, err := s.logRepo.GetEntries(ctx, repotypes.EntryFilter{
		Servers:  fs.Servers,
		LogNames: fs.LogNames,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		log.WithError(err).Error("Get entries failed")
		return domain.EntryPage{}, errorsUtils.WrapPathErr(ErrCannotGetEntries)
	}

	servers, err := s.logRepo.GetDistinctServers(ctx)
	if err != nil {
		log.WithError(err).Error("Get distinct servers failed")
		return domain.EntryPage{}, errorsUtils.WrapPathErr(ErrCannotGetEntries)
	}

	logNames, err := s.logRepo.GetDistinctLogNames(ctx)
	if err != nil {
		log.WithError(err).Error("Get distinct log names failed")
		return domain.EntryPage{}, errorsUtils.WrapPathErr(ErrCannotGetEntries)
	}

	return domain.EntryPage{
		Entries:  entries,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Pages:    (total + pageSize - 1) / pageSize,
		Servers:  servers,
		LogNames: logNames,
	}, nil
}

func validateEntry(entry *domain.LogEntry) error {
	switch {
	case entry.Timestamp.IsZero():
		return newValidationError("timestamp must be specified")
	case entry.Server == "":
		return newValidationError("server must be specified")
	case entry.LogName == "":
		return newValidationError("log name must be specified")
	case utf8.RuneCountInString(entry.Server) > domain.MaxServerLen:
		return newValidationError("server longer than %d characters", domain.MaxServerLen)
	case utf8.RuneCountInString(entry.LogName) > domain.MaxLogNameLen:
		return newValidationError("log name longer than %d characters", domain.MaxLogNameLen)
	}
	return nil
}
