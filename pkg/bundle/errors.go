// File: pkg/bundle/errors.go
package bundle

import (
	"errors"
	"fmt"
)

// Kind classifies a bundling failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnsupportedLanguage
	KindNoMatchingFiles
	KindDirectoryAccess
	KindOutputAccess
	KindFileReadFailure
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedLanguage:
		return "UnsupportedLanguage"
	case KindNoMatchingFiles:
		return "NoMatchingFiles"
	case KindDirectoryAccess:
		return "DirectoryAccess"
	case KindOutputAccess:
		return "OutputAccess"
	case KindFileReadFailure:
		return "FileReadFailure"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNoMatchingFiles     = errors.New("no files found matching the specified language")
	ErrDirectoryAccess     = errors.New("cannot access directory")
	ErrOutputAccess        = errors.New("cannot write output file")
	ErrFileReadFailure     = errors.New("cannot read source file")
)

var errNotDirectory = errors.New("not a directory")

var sentinels = map[Kind]error{
	KindUnsupportedLanguage: ErrUnsupportedLanguage,
	KindNoMatchingFiles:     ErrNoMatchingFiles,
	KindDirectoryAccess:     ErrDirectoryAccess,
	KindOutputAccess:        ErrOutputAccess,
	KindFileReadFailure:     ErrFileReadFailure,
}

// Error is returned by every failing Bundler operation.
type Error struct {
	Kind       Kind
	Path       string // Offending path or language key, if any.
	Suggestion string // Closest known language key for KindUnsupportedLanguage.
	Err        error  // Underlying cause, if any.
}

func (e *Error) Error() string {
	msg := "bundle failed"
	if s, ok := sentinels[e.Kind]; ok {
		msg = s.Error()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Suggestion != "" {
		msg = fmt.Sprintf("%s (did you mean %q?)", msg, e.Suggestion)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error for e.Kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}

// IsFatal reports whether err should fail the invocation.
// NoMatchingFiles is informational.
func IsFatal(err error) bool {
	return err != nil && KindOf(err) != KindNoMatchingFiles
}
