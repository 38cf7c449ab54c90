package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/desertthunder/todox/internal/shared"
)

// Format selects the on-disk encoding of a task file.
type Format int

const (
	Structured Format = iota // JSON array of objects
	Delimited                // one quoted CSV line per record
)

func (f Format) String() string {
	switch f {
	case Structured:
		return "json"
	case Delimited:
		return "csv"
	default:
		return "unknown"
	}
}

// Ext returns the file suffix that selects f.
func (f Format) Ext() string {
	return "." + f.String()
}

// FormatForPath picks the [Format] from the file suffix, case-insensitively.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return Structured, nil
	case ".csv":
		return Delimited, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected .json or .csv)", shared.ErrUnsupportedFormat, path)
	}
}

// ParseFormat maps a format name ("json" or "csv") to a [Format].
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return Structured, nil
	case "csv":
		return Delimited, nil
	default:
		return 0, fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, name)
	}
}
