// Package bundle concatenates the source files of one directory into a single
// output file, filtered by language and optionally sorted, stripped and
// annotated.
package bundle

import (
	"bufio"
	"os"
	"path/filepath"
	"time"

	"codebundle/pkg/ignore"

	"go.uber.org/zap"
)

// Summary describes a completed run.
type Summary struct {
	FilesBundled int      // Files whose content was written.
	OutputPath   string   // Resolved output path.
	Skipped      []string // Files skipped under SkipOnReadError.
	BytesWritten int64
}

// Option configures a Bundler.
type Option func(*Bundler)

// WithClock overrides the time source used for the author header.
func WithClock(now func() time.Time) Option {
	return func(b *Bundler) {
		b.now = now
	}
}

// Bundler runs bundling passes. It holds no state between runs.
type Bundler struct {
	logger   *zap.Logger
	now      func() time.Time
	readFile func(string) ([]byte, error)
}

// New returns a Bundler. A nil logger is replaced with a no-op one.
func New(logger *zap.Logger, opts ...Option) *Bundler {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Bundler{logger: logger, now: time.Now, readFile: os.ReadFile}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run performs one bundling pass.
//
// When no file matches, Run returns an error of KindNoMatchingFiles and leaves
// the output path untouched. Any failure after the output is opened truncates
// it to empty before it is closed.
func (b *Bundler) Run(cfg Config) (Summary, error) {
	cfg = cfg.withDefaults()
	startTime := time.Now()
	summary := Summary{OutputPath: cfg.Output}

	exts, err := ResolveExtensions(cfg.Language)
	if err != nil {
		b.logger.Error("Unsupported language", zap.String("language", cfg.Language), zap.Error(err))
		return summary, err
	}
	b.logger.Debug("Resolved extensions", zap.String("language", cfg.Language), zap.Strings("extensions", exts))

	info, err := os.Stat(cfg.Directory)
	if err != nil {
		b.logger.Error("Failed to access directory", zap.String("directory", cfg.Directory), zap.Error(err))
		return summary, &Error{Kind: KindDirectoryAccess, Path: cfg.Directory, Err: err}
	}
	if !info.IsDir() {
		return summary, &Error{Kind: KindDirectoryAccess, Path: cfg.Directory, Err: errNotDirectory}
	}

	excluded, err := b.loadExclusions(cfg)
	if err != nil {
		return summary, err
	}

	files, err := collectCandidates(cfg.Directory, exts, excluded, cfg.Output, b.logger)
	if err != nil {
		return summary, err
	}
	if len(files) == 0 {
		b.logger.Warn("No files to bundle after filtering", zap.String("directory", cfg.Directory))
		return summary, &Error{Kind: KindNoMatchingFiles, Path: cfg.Directory}
	}

	sortCandidates(files, cfg.Sort)
	b.logger.Debug("Sorted candidate files", zap.Stringer("sort", cfg.Sort))

	if err := b.write(cfg, files, &summary); err != nil {
		return summary, err
	}

	b.logger.Info("Bundle created",
		zap.String("outputFile", summary.OutputPath),
		zap.Int("totalFiles", summary.FilesBundled),
		zap.Int("skippedFiles", len(summary.Skipped)),
		zap.Duration("elapsed", time.Since(startTime)))
	return summary, nil
}

// loadExclusions builds the name matcher from .bundleignore and ExcludePatterns.
func (b *Bundler) loadExclusions(cfg Config) (*ignore.Matcher, error) {
	m := ignore.New(b.logger)
	if !cfg.DisableIgnoreFile {
		path := filepath.Join(cfg.Directory, ignore.FileName)
		if err := m.AddFile(path); err != nil {
			return nil, &Error{Kind: KindDirectoryAccess, Path: path, Err: err}
		}
	}
	m.AddLines(cfg.ExcludePatterns...)
	b.logger.Debug("Loaded exclusion patterns", zap.Int("totalPatterns", m.Len()))
	return m, nil
}

// write truncates the output and writes the header and every file block.
func (b *Bundler) write(cfg Config, files []CandidateFile, summary *Summary) (err error) {
	outFile, err := os.Create(cfg.Output)
	if err != nil {
		b.logger.Error("Failed to create output file", zap.String("file", cfg.Output), zap.Error(err))
		return &Error{Kind: KindOutputAccess, Path: cfg.Output, Err: err}
	}
	defer func() {
		if err != nil {
			if truncErr := outFile.Truncate(0); truncErr != nil {
				b.logger.Warn("Failed to truncate output file", zap.String("file", cfg.Output), zap.Error(truncErr))
			}
			summary.FilesBundled = 0
			summary.BytesWritten = 0
		}
		if closeErr := outFile.Close(); closeErr != nil {
			b.logger.Error("Failed to close output file", zap.String("file", cfg.Output), zap.Error(closeErr))
			if err == nil {
				err = &Error{Kind: KindOutputAccess, Path: cfg.Output, Err: closeErr}
			}
		}
	}()

	writer := bufio.NewWriter(outFile)
	emit := func(s string) error {
		n, werr := writer.WriteString(s)
		summary.BytesWritten += int64(n)
		if werr != nil {
			b.logger.Error("Failed to write output file", zap.String("file", cfg.Output), zap.Error(werr))
			return &Error{Kind: KindOutputAccess, Path: cfg.Output, Err: werr}
		}
		return nil
	}

	if cfg.Author != "" {
		if err := emit(renderHeader(cfg.Author, b.now())); err != nil {
			return err
		}
	}

	for _, f := range files {
		content, readErr := b.readFile(f.Path)
		if readErr != nil {
			if cfg.OnReadError == SkipOnReadError {
				b.logger.Warn("Skipping unreadable file", zap.String("filePath", f.Path), zap.Error(readErr))
				summary.Skipped = append(summary.Skipped, f.Path)
				continue
			}
			b.logger.Error("Failed to read file", zap.String("filePath", f.Path), zap.Error(readErr))
			return &Error{Kind: KindFileReadFailure, Path: f.Path, Err: readErr}
		}

		text := string(content)
		if cfg.RemoveEmptyLines {
			text = RemoveEmptyLines(text)
		}

		relPath, relErr := filepath.Rel(cfg.Directory, f.Path)
		if relErr != nil {
			relPath = f.Name
		}

		if err := emit(renderFile(relPath, text, cfg.IncludeSource)); err != nil {
			return err
		}
		summary.FilesBundled++
		b.logger.Debug("Bundled file", zap.String("filePath", f.Path), zap.Int("sizeBytes", len(content)))
	}

	if err := writer.Flush(); err != nil {
		b.logger.Error("Failed to flush output file", zap.String("file", cfg.Output), zap.Error(err))
		return &Error{Kind: KindOutputAccess, Path: cfg.Output, Err: err}
	}
	return nil
}
