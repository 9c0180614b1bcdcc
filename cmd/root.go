package cmd

import (
	"fmt"

	"codebundle/pkg/logging"
	"codebundle/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// AppName is attached to every log entry.
const AppName = "codebundle"

// app carries state shared by subcommands for one invocation.
type app struct {
	logger *zap.Logger
}

// NewRootCmd builds the command tree. logger is replaced by a development
// logger when --debug is given.
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &app{logger: logger}
	var debug bool

	root := &cobra.Command{
		Use:   AppName,
		Short: "codebundle concatenates source files into a single file",
		Long: `codebundle collects the source files of one directory, filtered by language,
and writes them into a single output file with optional sorting, empty-line
removal, source path comments and an author header.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !debug {
				return nil
			}
			if err := logging.Setup(true, AppName, version.Get().Version); err != nil {
				return fmt.Errorf("failed to initialize debug logger: %w", err)
			}
			a.logger = logging.Logger
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	root.AddCommand(newBundleCmd(a))
	root.AddCommand(newCreateRspCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the command tree with os.Args and prints any failure as
// "ERROR: <message>" on stderr.
func Execute(logger *zap.Logger) error {
	root := NewRootCmd(logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "ERROR: %v\n", err)
		return err
	}
	return nil
}
