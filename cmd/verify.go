package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/eykd/leap-go/internal/domain"
	"github.com/eykd/leap-go/internal/leap"
)

// VerifyJSON is the --json output of verify.
type VerifyJSON struct {
	Valid       bool              `json:"valid"`
	Diagnostics []leap.Diagnostic `json:"diagnostics"`
}

// NewVerifyCmd creates the verify command.
func NewVerifyCmd(d CommandDispatcher) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:          "verify <spec>...",
		Short:        "Check spec files for errors",
		Long:         "Verify parses and checks all given spec files together and reports every problem found. It prints nothing when the files are valid.",
		SilenceUsage: true,
		Args:         requirePaths,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := d.Dispatch(cmd.Context(), domain.NewVerifyCommand(args), cmd.OutOrStdout())
			if !jsonOutput {
				return err
			}

			var diag interface{ Diagnostics() []leap.Diagnostic }
			switch {
			case err == nil:
				writeJSON(cmd.OutOrStdout(), VerifyJSON{Valid: true, Diagnostics: []leap.Diagnostic{}})
				return nil
			case errors.As(err, &diag):
				writeJSON(cmd.OutOrStdout(), VerifyJSON{Valid: false, Diagnostics: diag.Diagnostics()})
				return &SilentError{Err: err}
			default:
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output diagnostics as JSON")

	return cmd
}
