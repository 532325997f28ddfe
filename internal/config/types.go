package config

import (
	"runtime/debug"
	"strconv"
	"strings"
)

// BoolFlag accepts the loose spellings operators tend to put in env files:
// true/t/1/y and false/f/0/n, case-insensitive. Any other non-empty value
// counts as true.
type BoolFlag bool

// SetValue implements cleanenv.Setter.
func (b *BoolFlag) SetValue(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1", "y", "yes":
		*b = true
	case "false", "f", "0", "n", "no", "":
		*b = false
	default:
		*b = true
	}
	return nil
}

// Set implements flag.Value.
func (b *BoolFlag) Set(s string) error {
	return b.SetValue(s)
}

func (b *BoolFlag) String() string {
	if b == nil {
		return "false"
	}
	return strconv.FormatBool(bool(*b))
}

// IsBoolFlag lets "--debug" be passed without a value.
func (b *BoolFlag) IsBoolFlag() bool {
	return true
}

func readRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if revision == "" {
		return "unknown"
	}
	if dirty {
		revision += "-dirty"
	}
	return revision
}
