// File: cmd/bundle.go
package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"codebundle/pkg/bundle"
	"codebundle/pkg/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errLanguageRequired = errors.New(`required flag "language" not set`)

// bundleFlags holds raw flag values before they are merged with a config file.
type bundleFlags struct {
	language       string
	output         string
	includeSource  bool
	sort           string
	remove         bool
	author         string
	dir            string
	exclude        []string
	skipUnreadable bool
	noIgnoreFile   bool
	configPath     string
}

func newBundleCmd(a *app) *cobra.Command {
	f := &bundleFlags{}

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Bundle source files into a single file",
		Long: `Bundle the files of one directory (non-recursive) whose extension matches the
selected language into a single output file.

Languages: ` + strings.Join(bundle.LanguageKeys(), ", ") + `

Examples:
  codebundle bundle --language python
  codebundle bundle -l all -o all.txt --sort type --include-source --remove --author "Jane Doe"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			return runBundle(cmd, a.logger, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.language, "language", "l", "", "Language to include ("+strings.Join(bundle.LanguageKeys(), ", ")+")")
	flags.StringVarP(&f.output, "output", "o", bundle.DefaultOutput, "Output file path")
	flags.BoolVarP(&f.includeSource, "include-source", "i", false, "Prefix each file with a source path comment")
	flags.StringVarP(&f.sort, "sort", "s", "name", "Sort order: name or type")
	flags.BoolVarP(&f.remove, "remove", "r", false, "Remove empty and whitespace-only lines")
	flags.StringVarP(&f.author, "author", "a", "", "Author written in a header comment")
	flags.StringVarP(&f.dir, "dir", "d", ".", "Directory to scan")
	flags.StringSliceVarP(&f.exclude, "exclude", "e", nil, "File name patterns to exclude (repeatable)")
	flags.BoolVar(&f.skipUnreadable, "skip-unreadable", false, "Skip files that cannot be read instead of aborting")
	flags.BoolVar(&f.noIgnoreFile, "no-ignore-file", false, "Do not read the directory's .bundleignore file")
	flags.StringVar(&f.configPath, "config", "", "YAML file with default options (env "+config.EnvVar+")")

	return cmd
}

// resolve builds the bundle config: defaults, then the config file, then
// flags the user set explicitly.
func (f *bundleFlags) resolve(cmd *cobra.Command) (bundle.Config, error) {
	cfg := bundle.DefaultConfig()

	if path := config.ResolvePath(f.configPath); path != "" {
		file, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		if err := file.Apply(&cfg); err != nil {
			return cfg, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("language") {
		cfg.Language = f.language
	}
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("include-source") {
		cfg.IncludeSource = f.includeSource
	}
	if changed("sort") {
		mode, err := bundle.ParseSortMode(f.sort)
		if err != nil {
			return cfg, err
		}
		cfg.Sort = mode
	}
	if changed("remove") {
		cfg.RemoveEmptyLines = f.remove
	}
	if changed("author") {
		cfg.Author = f.author
	}
	if changed("dir") {
		cfg.Directory = f.dir
	}
	if changed("exclude") {
		cfg.ExcludePatterns = append(cfg.ExcludePatterns, f.exclude...)
	}
	if changed("skip-unreadable") {
		cfg.OnReadError = bundle.AbortOnReadError
		if f.skipUnreadable {
			cfg.OnReadError = bundle.SkipOnReadError
		}
	}
	if changed("no-ignore-file") {
		cfg.DisableIgnoreFile = f.noIgnoreFile
	}

	if strings.TrimSpace(cfg.Language) == "" {
		return cfg, errLanguageRequired
	}
	return cfg, nil
}

// runBundle executes one pass and reports the outcome on the command's streams.
func runBundle(cmd *cobra.Command, logger *zap.Logger, cfg bundle.Config) error {
	summary, err := bundle.New(logger).Run(cfg)
	if err != nil {
		if !bundle.IsFatal(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "No files found matching the specified language.")
			return nil
		}
		return err
	}

	for _, path := range summary.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: skipped unreadable file: %s\n", path)
	}

	output := summary.OutputPath
	if abs, absErr := filepath.Abs(output); absErr == nil {
		output = abs
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Bundle created successfully. Output file: %s\n", output)
	return nil
}
