package domain

import "slices"

// FilterState is the per-session selection restricting the listing.
// An empty dimension means no restriction on it.
type FilterState struct {
	Servers  []string
	LogNames []string
}

func NewFilterState(servers, logNames []string) FilterState {
	return FilterState{
		Servers:  normalize(servers),
		LogNames: normalize(logNames),
	}
}

func (f FilterState) IsEmpty() bool {
	return len(f.Servers) == 0 && len(f.LogNames) == 0
}

func (f FilterState) HasServer(server string) bool {
	return slices.Contains(f.Servers, server)
}

func (f FilterState) HasLogName(logName string) bool {
	return slices.Contains(f.LogNames, logName)
}

func normalize(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
