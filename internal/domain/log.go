package domain

import "time"

const (
	MaxServerLen  = 100
	MaxLogNameLen = 1000
)

type LogEntry struct {
	Id        int64     `db:"id"`
	Timestamp time.Time `db:"timestamp"`
	Server    string    `db:"server"`
	LogName   string    `db:"log_name"`
	Message   *string   `db:"message"`
}

// MessageText returns the message or an empty string for entries stored
// without one.
func (e LogEntry) MessageText() string {
	if e.Message == nil {
		return ""
	}
	return *e.Message
}

type EntryPage struct {
	Entries  []LogEntry
	Total    int
	Page     int
	PageSize int
	Pages    int

	// Known values for the filter form, sorted.
	Servers  []string
	LogNames []string
}

func (p EntryPage) HasPrev() bool {
	return p.Page > 1
}

func (p EntryPage) HasNext() bool {
	return p.Page < p.Pages
}
