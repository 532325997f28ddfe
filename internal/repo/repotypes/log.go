package repotypes

// EntryFilter selects one page of log entries. Empty Servers or LogNames
// leave that dimension unrestricted.
type EntryFilter struct {
	Servers  []string
	LogNames []string
	Page     int
	PageSize int
}
