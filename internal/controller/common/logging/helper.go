package logginghelper

import (
	"github.com/Egor213/Sawmill/internal/domain"
	log "github.com/sirupsen/logrus"
)

func LogReceived(entry *domain.LogEntry) {
	log.WithFields(log.Fields{
		"server":   entry.Server,
		"log_name": entry.LogName,
	}).Debug("Received log entry via intake")
}

func LogSaved(entry *domain.LogEntry, id int64) {
	log.WithFields(log.Fields{
		"server":   entry.Server,
		"log_name": entry.LogName,
		"id":       id,
	}).Info("Log entry saved successfully")
}

func LogRejected(reason error) {
	log.WithField("error", reason).Warn("Log entry rejected")
}

func LogError(entry *domain.LogEntry, err error) {
	log.WithFields(log.Fields{
		"server":   entry.Server,
		"log_name": entry.LogName,
		"error":    err,
	}).Error("Failed to save log entry")
}

func LogLogin(email string, ok bool) {
	entry := log.WithField("email", email)
	if ok {
		entry.Info("User logged in")
		return
	}
	entry.Warn("Login failed")
}
