package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eykd/leap-go/internal/domain"
)

// CommandDispatcher performs a parsed command.
type CommandDispatcher interface {
	Dispatch(ctx context.Context, c domain.Command, out io.Writer) error
}

// requirePaths rejects a command line with no spec paths.
func requirePaths(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &UsageError{Msg: fmt.Sprintf("%s requires at least one spec path", cmd.CommandPath())}
	}
	return nil
}

// NewFormatCmd creates the format command.
func NewFormatCmd(d CommandDispatcher) *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:          "format <spec>...",
		Short:        "Format spec files in place",
		Long:         "Format rewrites each spec file in place, keeping a backup beside it until the new content is written. Files are processed in order and a failure on one does not stop the rest. A file keeps its encoding and byte order mark; --stdout always writes UTF-8.",
		SilenceUsage: true,
		Args:         requirePaths,
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.Dispatch(cmd.Context(), domain.NewFormatCommand(args, toStdout), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&toStdout, "stdout", "s", false, "Print formatted output instead of rewriting files")

	return cmd
}
