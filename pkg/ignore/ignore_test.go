package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Match(t *testing.T) {
	m := New(nil)
	m.AddLines(
		"# generated code",
		"",
		"*.pb.go",
		"*_test.py",
		"!keep_test.py",
		"/vendor.js",
		"tmp?.cs",
		`\#hash.py`,
		"a+b.c",
	)

	tests := []struct {
		name string
		want bool
	}{
		{"api.pb.go", true},
		{"api.go", false},
		{"util_test.py", true},
		{"keep_test.py", false},
		{"vendor.js", true},
		{"myvendor.js", false},
		{"tmp1.cs", true},
		{"tmp12.cs", false},
		{"#hash.py", true},
		{"a+b.c", true},
		{"aab.c", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.name))
		})
	}
}

func TestMatcher_MatchWithPattern(t *testing.T) {
	m := New(nil)
	m.AddLines("*.py", "!main.py")

	matched, p := m.MatchWithPattern("main.py")
	assert.False(t, matched)
	require.NotNil(t, p)
	assert.True(t, p.Negate)
	assert.Equal(t, 2, p.LineNo)

	matched, p = m.MatchWithPattern("other.py")
	assert.True(t, matched)
	require.NotNil(t, p)
	assert.Equal(t, "*.py", p.Line)

	matched, p = m.MatchWithPattern("other.js")
	assert.False(t, matched)
	assert.Nil(t, p)
}

func TestMatcher_AddFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		m := New(nil)
		require.NoError(t, m.AddFile(filepath.Join(dir, FileName)))
		assert.Zero(t, m.Len())
	})

	t.Run("crlf file", func(t *testing.T) {
		path := filepath.Join(dir, FileName)
		require.NoError(t, os.WriteFile(path, []byte("# c\r\n*.min.js\r\n\r\n!app.min.js\r\n"), 0o644))

		m := New(nil)
		require.NoError(t, m.AddFile(path))
		assert.Equal(t, 2, m.Len())
		assert.True(t, m.Match("lib.min.js"))
		assert.False(t, m.Match("app.min.js"))
	})

	t.Run("unreadable path", func(t *testing.T) {
		m := New(nil)
		assert.Error(t, m.AddFile(dir))
	})
}
