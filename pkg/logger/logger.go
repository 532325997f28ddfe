package logger

import (
	"fmt"
	"path"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// SetupLogger configures the global logrus logger. Debug mode forces the
// debug level regardless of the configured one.
func SetupLogger(level string, debug bool) {
	log.SetReportCaller(true)

	log.SetFormatter(&log.JSONFormatter{
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			return "", fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
		},
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if debug {
		log.SetLevel(log.DebugLevel)
		return
	}

	loggerLevel, err := log.ParseLevel(level)
	if err != nil {
		log.Infof("Level setup default INFO, err: %v", err)
		log.SetLevel(log.InfoLevel)
		return
	}
	log.SetLevel(loggerLevel)
}
