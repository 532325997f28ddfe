package httpv1

import (
	"time"

	"github.com/Egor213/Sawmill/internal/domain"
	"github.com/araddon/dateparse"
)

// IntakeRequest is the body a log shipper posts to /intake.
type IntakeRequest struct {
	Timestamp string  `json:"@timestamp" validate:"required"`
	Source    string  `json:"source" validate:"required,max=1000"`
	Host      string  `json:"host" validate:"required,max=100"`
	Message   *string `json:"message"`
}

// NewLogEntryFromRequest maps source to the log name and host to the
// server. Timestamps without a zone are taken as UTC; zoned ones are
// converted to it.
func NewLogEntryFromRequest(req *IntakeRequest) (*domain.LogEntry, error) {
	ts, err := dateparse.ParseIn(req.Timestamp, time.UTC)
	if err != nil {
		return nil, err
	}

	return &domain.LogEntry{
		Timestamp: ts.UTC(),
		Server:    req.Host,
		LogName:   req.Source,
		Message:   req.Message,
	}, nil
}
