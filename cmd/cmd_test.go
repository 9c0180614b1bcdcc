package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codebundle/pkg/bundle"
	"codebundle/pkg/config"
	"codebundle/pkg/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd(nil)
	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func sourceDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"a.py":      "print('a')\n\n",
		"B.CS":      "class B {}",
		"notes.txt": "text",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestBundleCmd(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	dir := sourceDir(t)
	output := filepath.Join(t.TempDir(), "out.txt")

	stdout, _, err := execute(t, "", "bundle", "-l", "all", "-d", dir, "-o", output, "-i", "-s", "type", "-r", "-a", "Jane")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Bundle created successfully. Output file: "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "// Author: Jane"))
	assert.Less(t, strings.Index(text, "// Source file: B.CS"), strings.Index(text, "// Source file: a.py"))
	assert.NotContains(t, text, "text")
}

func TestBundleCmd_LanguageRequired(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	_, _, err := execute(t, "", "bundle", "-d", t.TempDir())
	assert.True(t, errors.Is(err, errLanguageRequired))
}

func TestBundleCmd_UnsupportedLanguage(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	output := filepath.Join(t.TempDir(), "out.txt")

	_, _, err := execute(t, "", "bundle", "-l", "cobol", "-d", sourceDir(t), "-o", output)
	assert.True(t, errors.Is(err, bundle.ErrUnsupportedLanguage))

	_, statErr := os.Stat(output)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestBundleCmd_NoMatchingFilesIsNotFatal(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	output := filepath.Join(t.TempDir(), "out.txt")

	stdout, _, err := execute(t, "", "bundle", "-l", "java", "-d", sourceDir(t), "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No files found")

	_, statErr := os.Stat(output)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestBundleCmd_InvalidSort(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	_, _, err := execute(t, "", "bundle", "-l", "python", "-s", "size")
	assert.Error(t, err)
}

func TestBundleCmd_ConfigFileAndOverrides(t *testing.T) {
	dir := sourceDir(t)
	output := filepath.Join(t.TempDir(), "out.txt")
	cfgPath := filepath.Join(t.TempDir(), "bundle.yaml")
	cfgYAML := "language: python\ndir: " + dir + "\noutput: " + output + "\ninclude-source: true\nauthor: FromFile\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o644))

	t.Run("env var", func(t *testing.T) {
		t.Setenv(config.EnvVar, cfgPath)
		_, _, err := execute(t, "", "bundle")
		require.NoError(t, err)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(data), "// Author: FromFile")
		assert.Contains(t, string(data), "// Source file: a.py")
	})

	t.Run("flags override file", func(t *testing.T) {
		t.Setenv(config.EnvVar, "")
		_, _, err := execute(t, "", "bundle", "--config", cfgPath, "-l", "csharp", "--include-source=false", "-a", "FromFlag")
		require.NoError(t, err)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(data), "// Author: FromFlag")
		assert.Contains(t, string(data), "class B {}")
		assert.NotContains(t, string(data), "// Source file:")
		assert.NotContains(t, string(data), "print('a')")
	})
}

func TestCreateRspCmd(t *testing.T) {
	rspPath := filepath.Join(t.TempDir(), "bundle.rsp")
	answers := "python\nout.txt\ny\nname\ny\nJane Doe\n"

	stdout, _, err := execute(t, answers, "create-rsp", "--file", rspPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Response file created: "+rspPath)

	data, err := os.ReadFile(rspPath)
	require.NoError(t, err)
	assert.Equal(t,
		"codebundle bundle --language python --output out.txt --include-source --sort name --remove --author 'Jane Doe'\n",
		string(data))
}

func TestCreateRspCmd_InputClosed(t *testing.T) {
	rspPath := filepath.Join(t.TempDir(), "bundle.rsp")
	_, _, err := execute(t, "python\n", "create-rsp", "--file", rspPath)
	assert.Error(t, err)

	_, statErr := os.Stat(rspPath)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)

	stdout, _, err = execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "codebundle version "+version.Version)
}
