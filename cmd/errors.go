package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// ContextError adds operation and path context to an underlying error.
type ContextError struct {
	Op   string
	Path string
	Err  error
}

// Error returns the formatted error string with context.
func (e *ContextError) Error() string {
	if e.Op != "" && e.Path != "" {
		return e.Op + ": " + e.Path + ": " + e.Err.Error()
	}
	if e.Op != "" {
		return e.Op + ": " + e.Err.Error()
	}
	if e.Path != "" {
		return e.Path + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ContextError) Unwrap() error {
	return e.Err
}

// ExitCoder is implemented by errors that carry a specific process exit code.
type ExitCoder interface {
	ExitCode() int
}

// ExitCodeFromError returns the appropriate exit code for an error.
// nil returns 0, ExitCoder errors return their code, all others return 1.
func ExitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// UsageError reports invalid command-line arguments.
type UsageError struct {
	Msg string
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return e.Msg
}

// ExitCode returns the exit code for usage errors (always 2).
func (e *UsageError) ExitCode() int {
	return 2
}

// FilesFailedError is returned when one or more files could not be
// formatted. Each failure is reported on its own line.
type FilesFailedError struct {
	Errs  []error
	Total int
}

// Error implements the error interface.
func (e *FilesFailedError) Error() string {
	return strings.Join(e.Lines(), "\n")
}

// Lines returns one message per failing file.
func (e *FilesFailedError) Lines() []string {
	lines := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		lines[i] = err.Error()
	}
	return lines
}

// Unwrap returns the per-file errors.
func (e *FilesFailedError) Unwrap() []error {
	return e.Errs
}

// ReportError carries a multi-line report that is printed as is.
type ReportError struct {
	Err error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// SilentError fails the command after its output was already written.
type SilentError struct {
	Err error
}

// Error implements the error interface.
func (e *SilentError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *SilentError) Unwrap() error {
	return e.Err
}

// FormatError formats an error with the "leap: " prefix and trailing
// newline. Multi-file failures get one prefixed line per file; reports are
// printed verbatim.
func FormatError(err error) string {
	return plainPainter().formatError(err)
}

func (p *painter) formatError(err error) string {
	var silent *SilentError
	if errors.As(err, &silent) {
		return ""
	}

	var b strings.Builder
	var failed *FilesFailedError
	var report *ReportError
	switch {
	case errors.As(err, &failed):
		for _, e := range failed.Errs {
			b.WriteString(p.line(e) + "\n")
		}
	case errors.As(err, &report):
		b.WriteString(p.report(strings.TrimRight(report.Error(), "\n")) + "\n")
	default:
		fmt.Fprintf(&b, "%s%s\n", p.prefix(), err.Error())
	}
	return b.String()
}

// RunCLI executes the command with the given args, writing output to stdout
// and errors to stderr. It returns the appropriate exit code.
func RunCLI(cmd *cobra.Command, args []string, stdout io.Writer, stderr io.Writer) int {
	return RunCLIContext(context.Background(), cmd, args, stdout, stderr)
}

// RunCLIContext is RunCLI with a context, cancelled on SIGINT by main.
func RunCLIContext(ctx context.Context, cmd *cobra.Command, args []string, stdout io.Writer, stderr io.Writer) int {
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprint(stderr, newPainter(colorMode, stderr).formatError(err))
		return ExitCodeFromError(err)
	}
	return 0
}
