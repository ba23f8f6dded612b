package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/leap-go/internal/domain"
)

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &UsageError{Msg: fmt.Sprintf("%s takes no arguments, got %q", cmd.CommandPath(), args[0])}
	}
	return nil
}

// NewPrintStdCmd creates the print-std command.
func NewPrintStdCmd(d CommandDispatcher) *cobra.Command {
	return &cobra.Command{
		Use:          "print-std",
		Short:        "Print the standard type definitions",
		SilenceUsage: true,
		Args:         noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.Dispatch(cmd.Context(), domain.PrintStdCommand{}, cmd.OutOrStdout())
		},
	}
}
