// File: pkg/bundle/collect.go
package bundle

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codebundle/pkg/ignore"

	"go.uber.org/zap"
)

// CandidateFile is a file selected for bundling.
type CandidateFile struct {
	Path string // Path as joined from the scanned directory.
	Name string // Base name.
	Ext  string // Lower-case extension including the dot.
}

// matchesExtension reports whether name ends with one of exts, ignoring case.
// exts must be lower-case.
func matchesExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// collectCandidates lists dir (non-recursive) and keeps regular files whose
// names match exts and are not excluded. skipPath, if set, is never returned.
func collectCandidates(dir string, exts []string, excluded *ignore.Matcher, skipPath string, logger *zap.Logger) ([]CandidateFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Error("Failed to read directory", zap.String("directory", dir), zap.Error(err))
		return nil, &Error{Kind: KindDirectoryAccess, Path: dir, Err: err}
	}

	var files []CandidateFile
	for _, entry := range entries {
		name := entry.Name()
		if !matchesExtension(name, exts) {
			continue
		}
		if !entry.Type().IsRegular() {
			logger.Debug("Skipping non-regular entry", zap.String("name", name))
			continue
		}
		if excluded.Match(name) {
			logger.Debug("Skipping excluded file", zap.String("name", name))
			continue
		}

		path := filepath.Join(dir, name)
		if skipPath != "" && sameFile(path, skipPath) {
			logger.Debug("Skipping output file", zap.String("name", name))
			continue
		}

		files = append(files, CandidateFile{
			Path: path,
			Name: name,
			Ext:  strings.ToLower(filepath.Ext(name)),
		})
	}

	logger.Debug("Collected candidate files", zap.String("directory", dir), zap.Int("count", len(files)))
	return files, nil
}

// sameFile compares two paths after making them absolute and clean.
func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// sortCandidates orders files in place. Names compare case-insensitively
// with an ordinal tiebreak; names are unique within a directory, so both
// modes are total orders.
func sortCandidates(files []CandidateFile, mode SortMode) {
	sort.SliceStable(files, func(i, j int) bool {
		if mode == SortByTypeThenName && files[i].Ext != files[j].Ext {
			return files[i].Ext < files[j].Ext
		}
		return lessName(files[i].Name, files[j].Name)
	})
}

func lessName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
