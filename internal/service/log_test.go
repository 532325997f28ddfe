package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Egor213/Sawmill/internal/domain"
	"github.com/Egor213/Sawmill/internal/metrics"
	repository_mock "github.com/Egor213/Sawmill/internal/mocks/repository"
	"github.com/Egor213/Sawmill/internal/repo/repoerrs"
	"github.com/Egor213/Sawmill/internal/repo/repotypes"
	"github.com/Egor213/Sawmill/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingProducer struct {
	keys [][]byte
	err  error
}

func (p *recordingProducer) SendMessage(_ context.Context, key, _ []byte) error {
	p.keys = append(p.keys, key)
	return p.err
}

// blockingProducer waits until its context gives up, like a writer facing an
// unreachable broker.
type blockingProducer struct {
	ctxErr error
}

func (p *blockingProducer) SendMessage(ctx context.Context, _, _ []byte) error {
	<-ctx.Done()
	p.ctxErr = ctx.Err()
	return ctx.Err()
}

func strPtr(s string) *string {
	return &s
}

func TestLogService_Intake(t *testing.T) {
	ctx := context.Background()
	moscow := time.FixedZone("MSK", 3*60*60)

	type mockBehavior func(r *repository_mock.MockLog, entry *domain.LogEntry)

	testCases := []struct {
		name          string
		entry         *domain.LogEntry
		producerErr   error
		mockBehavior  mockBehavior
		wantID        int64
		wantErr       error
		wantPublished int
	}{
		{
			name: "success",
			entry: &domain.LogEntry{
				Timestamp: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
				Server:    "h1",
				LogName:   "/var/log/a.log",
				Message:   strPtr("boot"),
			},
			mockBehavior: func(r *repository_mock.MockLog, entry *domain.LogEntry) {
				r.EXPECT().AppendEntry(ctx, entry).Return(int64(42), nil)
			},
			wantID:        42,
			wantPublished: 1,
		},
		{
			name: "offset timestamp normalized to utc",
			entry: &domain.LogEntry{
				Timestamp: time.Date(2021, 1, 1, 3, 0, 0, 0, moscow),
				Server:    "h1",
				LogName:   "/var/log/a.log",
			},
			mockBehavior: func(r *repository_mock.MockLog, _ *domain.LogEntry) {
				r.EXPECT().AppendEntry(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, e *domain.LogEntry) (int64, error) {
						assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), e.Timestamp)
						return 1, nil
					})
			},
			wantID:        1,
			wantPublished: 1,
		},
		{
			name: "publish failure does not fail intake",
			entry: &domain.LogEntry{
				Timestamp: time.Now(),
				Server:    "h1",
				LogName:   "/var/log/a.log",
			},
			producerErr: errors.New("broker down"),
			mockBehavior: func(r *repository_mock.MockLog, entry *domain.LogEntry) {
				r.EXPECT().AppendEntry(ctx, entry).Return(int64(3), nil)
			},
			wantID:        3,
			wantPublished: 1,
		},
		{
			name:         "missing server",
			entry:        &domain.LogEntry{Timestamp: time.Now(), LogName: "/var/log/a.log"},
			mockBehavior: func(r *repository_mock.MockLog, _ *domain.LogEntry) {},
			wantErr:      service.ErrValidation,
		},
		{
			name:         "missing timestamp",
			entry:        &domain.LogEntry{Server: "h1", LogName: "/var/log/a.log"},
			mockBehavior: func(r *repository_mock.MockLog, _ *domain.LogEntry) {},
			wantErr:      service.ErrValidation,
		},
		{
			name: "server too long",
			entry: &domain.LogEntry{
				Timestamp: time.Now(),
				Server:    string(make([]byte, domain.MaxServerLen+1)),
				LogName:   "/var/log/a.log",
			},
			mockBehavior: func(r *repository_mock.MockLog, _ *domain.LogEntry) {},
			wantErr:      service.ErrValidation,
		},
		{
			name:  "store rejects row",
			entry: &domain.LogEntry{Timestamp: time.Now(), Server: "h1", LogName: "/var/log/a.log"},
			mockBehavior: func(r *repository_mock.MockLog, entry *domain.LogEntry) {
				r.EXPECT().AppendEntry(ctx, entry).Return(int64(0), repoerrs.ErrInvalidData)
			},
			wantErr: service.ErrValidation,
		},
		{
			name:  "repository error",
			entry: &domain.LogEntry{Timestamp: time.Now(), Server: "h1", LogName: "/var/log/a.log"},
			mockBehavior: func(r *repository_mock.MockLog, entry *domain.LogEntry) {
				r.EXPECT().AppendEntry(ctx, entry).Return(int64(0), errors.New("db error"))
			},
			wantErr: service.ErrCannotCreateEntry,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := repository_mock.NewMockLog(ctrl)
			tc.mockBehavior(mockRepo, tc.entry)

			producer := &recordingProducer{err: tc.producerErr}
			s := service.NewLogService(mockRepo, metrics.NewTestCounters(), producer, 0)

			id, err := s.Intake(ctx, tc.entry)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, producer.keys)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantID, id)
			assert.Equal(t, tc.wantID, tc.entry.Id)
			assert.Len(t, producer.keys, tc.wantPublished)
		})
	}
}

func TestLogService_ListEntries(t *testing.T) {
	ctx := context.Background()
	fs := domain.NewFilterState([]string{"h1"}, nil)

	entries := []domain.LogEntry{
		{Id: 11, Server: "h1", LogName: "/var/log/a.log"},
		{Id: 12, Server: "h1", LogName: "/var/log/b.log"},
	}

	type mockBehavior func(r *repository_mock.MockLog)

	testCases := []struct {
		name         string
		page         int
		pageSize     int
		mockBehavior mockBehavior
		want         domain.EntryPage
		wantErr      bool
	}{
		{
			name:     "success",
			page:     2,
			pageSize: 10,
			mockBehavior: func(r *repository_mock.MockLog) {
				r.EXPECT().GetEntries(ctx, repotypes.EntryFilter{
					Servers: []string{"h1"}, LogNames: []string{}, Page: 2, PageSize: 10,
				}).Return(entries, 12, nil)
				r.EXPECT().GetDistinctServers(ctx).Return([]string{"h1", "h2"}, nil)
				r.EXPECT().GetDistinctLogNames(ctx).Return([]string{"/var/log/a.log", "/var/log/b.log"}, nil)
			},
			want: domain.EntryPage{
				Entries:  entries,
				Total:    12,
				Page:     2,
				PageSize: 10,
				Pages:    2,
				Servers:  []string{"h1", "h2"},
				LogNames: []string{"/var/log/a.log", "/var/log/b.log"},
			},
		},
		{
			name:     "paging defaults",
			page:     0,
			pageSize: 0,
			mockBehavior: func(r *repository_mock.MockLog) {
				r.EXPECT().GetEntries(ctx, repotypes.EntryFilter{
					Servers: []string{"h1"}, LogNames: []string{}, Page: 1, PageSize: service.DefaultPageSize,
				}).Return(nil, 0, nil)
				r.EXPECT().GetDistinctServers(ctx).Return(nil, nil)
				r.EXPECT().GetDistinctLogNames(ctx).Return(nil, nil)
			},
			want: domain.EntryPage{Page: 1, PageSize: service.DefaultPageSize},
		},
		{
			name:     "entries error",
			page:     1,
			pageSize: 10,
			mockBehavior: func(r *repository_mock.MockLog) {
				r.EXPECT().GetEntries(ctx, gomock.Any()).Return(nil, 0, errors.New("db error"))
			},
			wantErr: true,
		},
		{
			name:     "distinct error",
			page:     1,
			pageSize: 10,
			mockBehavior: func(r *repository_mock.MockLog) {
				r.EXPECT().GetEntries(ctx, gomock.Any()).Return(entries, 2, nil)
				r.EXPECT().GetDistinctServers(ctx).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := repository_mock.NewMockLog(ctrl)
			tc.mockBehavior(mockRepo)

			s := service.NewLogService(mockRepo, metrics.NewTestCounters(), &recordingProducer{}, 0)

			got, err := s.ListEntries(ctx, fs, tc.page, tc.pageSize)

			if tc.wantErr {
				assert.ErrorIs(t, err, service.ErrCannotGetEntries)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLogService_Intake_SlowBrokerIsBounded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository_mock.NewMockLog(ctrl)
	mockRepo.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(int64(7), nil)

	producer := &blockingProducer{}
	s := service.NewLogService(mockRepo, metrics.NewTestCounters(), producer, 20*time.Millisecond)

	// A cancelled request context must not cut the publish short either.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	id, err := s.Intake(ctx, &domain.LogEntry{
		Timestamp: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		Server:    "h1",
		LogName:   "/var/log/a.log",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.ErrorIs(t, producer.ctxErr, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
