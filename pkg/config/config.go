// Package config loads bundle defaults from a YAML file.
//
// Keys mirror the bundle command's long flag names:
//
//	language: python
//	dir: ./src
//	output: out.txt
//	include-source: true
//	sort: type
//	remove: true
//	author: Jane Doe
//	exclude: ["*_test.py"]
//	skip-unreadable: false
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"codebundle/pkg/bundle"

	"gopkg.in/yaml.v3"
)

// EnvVar names the defaults file when --config is not given.
const EnvVar = "BUNDLE_CONFIG"

// File is the on-disk defaults document. Pointer fields distinguish
// "unset" from false.
type File struct {
	Language       string   `yaml:"language"`
	Directory      string   `yaml:"dir"`
	Output         string   `yaml:"output"`
	IncludeSource  *bool    `yaml:"include-source"`
	Sort           string   `yaml:"sort"`
	Remove         *bool    `yaml:"remove"`
	Author         string   `yaml:"author"`
	Exclude        []string `yaml:"exclude"`
	SkipUnreadable *bool    `yaml:"skip-unreadable"`
}

// ResolvePath returns flagPath if set, otherwise the value of EnvVar.
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return os.Getenv(EnvVar)
}

// Load reads and strictly decodes path. Unknown keys are an error; an empty
// document yields an empty File.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &f, nil
}

// Apply copies every set field of f onto cfg.
func (f *File) Apply(cfg *bundle.Config) error {
	if f.Language != "" {
		cfg.Language = f.Language
	}
	if f.Directory != "" {
		cfg.Directory = f.Directory
	}
	if f.Output != "" {
		cfg.Output = f.Output
	}
	if f.IncludeSource != nil {
		cfg.IncludeSource = *f.IncludeSource
	}
	if f.Sort != "" {
		mode, err := bundle.ParseSortMode(f.Sort)
		if err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		cfg.Sort = mode
	}
	if f.Remove != nil {
		cfg.RemoveEmptyLines = *f.Remove
	}
	if f.Author != "" {
		cfg.Author = f.Author
	}
	if len(f.Exclude) > 0 {
		cfg.ExcludePatterns = append(cfg.ExcludePatterns, f.Exclude...)
	}
	if f.SkipUnreadable != nil {
		if *f.SkipUnreadable {
			cfg.OnReadError = bundle.SkipOnReadError
		} else {
			cfg.OnReadError = bundle.AbortOnReadError
		}
	}
	return nil
}
