package logger_test

import (
	"testing"

	"github.com/Egor213/Sawmill/pkg/logger"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	testCases := []struct {
		name  string
		level string
		debug bool
		want  log.Level
	}{
		{"configured level", "warn", false, log.WarnLevel},
		{"unknown level falls back to info", "loud", false, log.InfoLevel},
		{"debug overrides level", "error", true, log.DebugLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger.SetupLogger(tc.level, tc.debug)
			assert.Equal(t, tc.want, log.GetLevel())
		})
	}
}
