package broker_test

import (
	"testing"
	"time"

	"github.com/Egor213/Sawmill/internal/broker"
	"github.com/Egor213/Sawmill/internal/domain"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEntry(t *testing.T) {
	msg := "boot"
	entry := domain.LogEntry{
		Id:        7,
		Timestamp: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		Server:    "h1",
		LogName:   "/var/log/a.log",
		Message:   &msg,
	}

	key, value, err := broker.EncodeEntry(entry)
	require.NoError(t, err)
	assert.Equal(t, []byte("h1"), key)

	var decoded broker.EntryMessage
	require.NoError(t, json.Unmarshal(value, &decoded))
	assert.Equal(t, int64(7), decoded.Id)
	assert.Equal(t, "/var/log/a.log", decoded.LogName)
	require.NotNil(t, decoded.Message)
	assert.Equal(t, "boot", *decoded.Message)
	assert.True(t, entry.Timestamp.Equal(decoded.Timestamp))
}
