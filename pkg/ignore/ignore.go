// Package ignore matches file names against gitignore-style exclusion patterns.
//
// Only the patterns meaningful inside a single directory are supported:
// `*` and `?` wildcards, `!` negation, `#` comments and `\#`/`\!` escapes.
// A leading or trailing `/` is stripped since no nesting is involved.
package ignore

import (
	"errors"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// FileName is the per-directory ignore file consulted by the bundler.
const FileName = ".bundleignore"

// Pattern is one compiled exclusion rule.
type Pattern struct {
	Regexp *regexp.Regexp
	Negate bool
	Line   string // Original line.
	LineNo int    // 1-based position among all compiled lines.
}

// Matcher holds patterns in the order they were added. The last matching
// pattern decides the result.
type Matcher struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New returns an empty Matcher. A nil logger is replaced with a no-op one.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// AddLines compiles each line; blank lines, comments and invalid patterns are skipped.
func (m *Matcher) AddLines(lines ...string) {
	for _, line := range lines {
		re, negate, ok := compile(line)
		if !ok {
			continue
		}
		p := &Pattern{
			Regexp: re,
			Negate: negate,
			Line:   line,
			LineNo: len(m.patterns) + 1,
		}
		m.patterns = append(m.patterns, p)
		m.logger.Debug("Compiled ignore pattern",
			zap.Int("lineNo", p.LineNo),
			zap.String("pattern", p.Line),
			zap.Bool("negate", p.Negate))
	}
}

// AddFile reads patterns from path. A missing file is not an error.
func (m *Matcher) AddFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", path))
			return nil
		}
		m.logger.Error("Failed to read ignore file", zap.String("filePath", path), zap.Error(err))
		return err
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	before := len(m.patterns)
	m.AddLines(lines...)
	m.logger.Debug("Loaded ignore file",
		zap.String("filePath", path),
		zap.Int("patternCount", len(m.patterns)-before))
	return nil
}

// Match reports whether name is excluded.
func (m *Matcher) Match(name string) bool {
	matched, _ := m.MatchWithPattern(name)
	return matched
}

// MatchWithPattern reports whether name is excluded and which pattern decided it.
func (m *Matcher) MatchWithPattern(name string) (bool, *Pattern) {
	matched := false
	var decided *Pattern
	for _, p := range m.patterns {
		if p.Regexp.MatchString(name) {
			matched = !p.Negate
			decided = p
		}
	}
	return matched, decided
}

// compile turns one pattern line into an anchored regular expression.
func compile(line string) (*regexp.Regexp, bool, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false, false
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = trimmed[1:]
	}
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}
	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return nil, false, false
	}

	var b strings.Builder
	b.WriteString("^")
	for _, r := range trimmed {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, false, false
	}
	return re, negate, true
}
