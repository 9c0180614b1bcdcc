// File: pkg/bundle/transform.go
package bundle

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Separator is written after every bundled file.
var Separator = strings.Repeat("-", 50)

// LineEnding is the platform line terminator used for everything the bundler writes.
var LineEnding = lineEndingFor(runtime.GOOS)

// DateLayout formats the generation date in the author header.
const DateLayout = "2006-01-02"

func lineEndingFor(goos string) string {
	if goos == "windows" {
		return "\r\n"
	}
	return "\n"
}

// splitLines splits text on \n, dropping a trailing \r from each line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// RemoveEmptyLines drops every empty or whitespace-only line and joins the
// rest with LineEnding, keeping their order.
func RemoveEmptyLines(text string) string {
	var kept []string
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, LineEnding)
}

// renderHeader returns the author/date comment block.
func renderHeader(author string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Author: %s%s", author, LineEnding)
	fmt.Fprintf(&b, "// Generated on: %s%s", now.Format(DateLayout), LineEnding)
	b.WriteString(LineEnding)
	return b.String()
}

// renderFile returns the complete block for one file.
func renderFile(relPath, content string, includeSource bool) string {
	var b strings.Builder
	if includeSource {
		fmt.Fprintf(&b, "// Source file: %s%s", filepath.ToSlash(relPath), LineEnding)
	}
	b.WriteString(LineEnding)
	b.WriteString(content)
	b.WriteString(LineEnding)
	b.WriteString(Separator)
	b.WriteString(LineEnding)
	b.WriteString(LineEnding)
	return b.String()
}
