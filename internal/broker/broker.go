package broker

import (
	"context"
	"time"

	"github.com/Egor213/Sawmill/internal/domain"
	"github.com/goccy/go-json"
)

type Producer interface {
	SendMessage(ctx context.Context, key, value []byte) error
}

// NopProducer drops every message. Used when no brokers are configured.
type NopProducer struct{}

func (NopProducer) SendMessage(context.Context, []byte, []byte) error {
	return nil
}

type EntryMessage struct {
	Id        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Server    string    `json:"server"`
	LogName   string    `json:"log_name"`
	Message   *string   `json:"message"`
}

func EncodeEntry(entry domain.LogEntry) (key []byte, value []byte, err error) {
	value, err = json.Marshal(EntryMessage{
		Id:        entry.Id,
		Timestamp: entry.Timestamp,
		Server:    entry.Server,
		LogName:   entry.LogName,
		Message:   entry.Message,
	})
	if err != nil {
		return nil, nil, err
	}
	return []byte(entry.Server), value, nil
}
