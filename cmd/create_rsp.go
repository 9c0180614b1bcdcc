// File: cmd/create_rsp.go
package cmd

import (
	"fmt"

	"codebundle/pkg/rsp"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCreateRspCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create-rsp",
		Short: "Interactively build a response file for the bundle command",
		Long: `Ask for each bundle option in turn and write a response file containing one
equivalent command line. Run it later with:

  sh bundle.rsp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := rsp.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Collect()
			if err != nil {
				return err
			}
			if err := rsp.WriteFile(file, answers); err != nil {
				return err
			}

			a.logger.Debug("Wrote response file", zap.String("file", file), zap.Strings("args", answers.Args()))
			fmt.Fprintf(cmd.OutOrStdout(), "\nResponse file created: %s\n%s\n", file, answers.CommandLine())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", rsp.DefaultFile, "Response file path")
	return cmd
}
