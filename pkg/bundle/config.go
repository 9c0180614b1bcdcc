// File: pkg/bundle/config.go
package bundle

import (
	"fmt"
	"strings"
)

// DefaultOutput is used when Config.Output is empty.
const DefaultOutput = "bundle_output.txt"

// SortMode orders candidate files before they are written.
type SortMode int

const (
	SortByName SortMode = iota
	SortByTypeThenName
)

func (m SortMode) String() string {
	if m == SortByTypeThenName {
		return "type"
	}
	return "name"
}

// ParseSortMode accepts "name" or "type" (case-insensitive). Empty means name.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name":
		return SortByName, nil
	case "type":
		return SortByTypeThenName, nil
	default:
		return SortByName, fmt.Errorf("invalid sort mode %q: expected \"name\" or \"type\"", s)
	}
}

// ReadErrorPolicy decides what happens when a candidate file cannot be read.
type ReadErrorPolicy int

const (
	AbortOnReadError ReadErrorPolicy = iota
	SkipOnReadError
)

// Config holds the options for one bundling pass.
type Config struct {
	Language          string          // Language key or "all".
	Directory         string          // Directory to scan (non-recursive). Defaults to ".".
	Output            string          // Destination path. Defaults to DefaultOutput.
	IncludeSource     bool            // Prefix each file with a relative-path comment.
	Sort              SortMode        // Ordering of bundled files.
	RemoveEmptyLines  bool            // Drop empty and whitespace-only lines.
	Author            string          // Adds an author/date header when non-empty.
	ExcludePatterns   []string        // Extra ignore patterns applied to file names.
	OnReadError       ReadErrorPolicy // Abort (default) or skip unreadable files.
	DisableIgnoreFile bool            // Do not read .bundleignore from Directory.
}

// DefaultConfig returns a Config with defaults for everything but Language.
func DefaultConfig() Config {
	return Config{
		Directory: ".",
		Output:    DefaultOutput,
		Sort:      SortByName,
	}
}

// withDefaults fills empty Directory and Output.
func (c Config) withDefaults() Config {
	if c.Directory == "" {
		c.Directory = "."
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	return c
}
