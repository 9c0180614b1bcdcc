// File: pkg/bundle/languages.go
package bundle

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// AllLanguages is the language key that selects every known extension.
const AllLanguages = "all"

// notebookExtension is only reachable through AllLanguages.
const notebookExtension = ".ipynb"

// maxSuggestionDistance bounds how far a mistyped key may be from a known one
// before no suggestion is offered.
const maxSuggestionDistance = 2

// LanguageExtensions maps a language key to its file extension.
var LanguageExtensions = map[string]string{
	"csharp":     ".cs",
	"javascript": ".js",
	"python":     ".py",
	"java":       ".java",
	"html":       ".html",
	"css":        ".css",
	"c":          ".c",
	"c++":        ".cpp",
	"c#":         ".cs",
}

// LanguageKeys returns every accepted language key, including AllLanguages, sorted.
func LanguageKeys() []string {
	keys := make([]string, 0, len(LanguageExtensions)+1)
	for k := range LanguageExtensions {
		keys = append(keys, k)
	}
	keys = append(keys, AllLanguages)
	sort.Strings(keys)
	return keys
}

// ResolveExtensions returns the lower-case extension set for a language key.
// Keys are matched case-insensitively.
func ResolveExtensions(language string) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(language))

	if key == AllLanguages {
		seen := map[string]bool{notebookExtension: true}
		exts := []string{notebookExtension}
		for _, ext := range LanguageExtensions {
			if !seen[ext] {
				seen[ext] = true
				exts = append(exts, ext)
			}
		}
		sort.Strings(exts)
		return exts, nil
	}

	ext, ok := LanguageExtensions[key]
	if !ok {
		return nil, &Error{
			Kind:       KindUnsupportedLanguage,
			Path:       language,
			Suggestion: suggestLanguage(key),
		}
	}
	return []string{ext}, nil
}

// IsSupportedLanguage reports whether the key resolves to an extension set.
func IsSupportedLanguage(language string) bool {
	_, err := ResolveExtensions(language)
	return err == nil
}

// suggestLanguage returns the closest known key, or "" if none is close enough.
func suggestLanguage(key string) string {
	if key == "" {
		return ""
	}
	best := ""
	bestDist := maxSuggestionDistance + 1
	for _, candidate := range LanguageKeys() {
		d := levenshtein.ComputeDistance(key, candidate)
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
