package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/eykd/leap-go/internal/domain"
	"github.com/eykd/leap-go/internal/rewrite"
)

// FormatRunner rewrites spec files in order, writing formatted text to
// stdout instead of the files when toStdout is set. The returned error is
// non-nil only when the run stopped early.
type FormatRunner interface {
	Format(ctx context.Context, paths []string, toStdout bool, stdout io.Writer) ([]rewrite.Result, error)
}

// VerifyRunner parses spec files as one unit of work.
type VerifyRunner interface {
	Verify(ctx context.Context, paths []string) error
}

// Dispatcher routes a domain.Command to the component that performs it.
type Dispatcher struct {
	Format   FormatRunner
	Verify   VerifyRunner
	StdTypes func() string
}

// Dispatch performs c, writing command output to out.
func (d *Dispatcher) Dispatch(ctx context.Context, c domain.Command, out io.Writer) error {
	switch c := c.(type) {
	case domain.FormatCommand:
		return d.format(ctx, c, out)
	case domain.VerifyCommand:
		return d.verify(ctx, c)
	case domain.PrintStdCommand:
		fmt.Fprint(out, strings.TrimRight(d.StdTypes(), "\n")+"\n")
		return nil
	default:
		panic(fmt.Sprintf("dispatch: unhandled command %T", c))
	}
}

func (d *Dispatcher) format(ctx context.Context, c domain.FormatCommand, out io.Writer) error {
	results, err := d.Format.Format(ctx, c.Paths, c.ToStdout, out)

	var failed []error
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Err)
		}
	}
	if err != nil {
		failed = append(failed, err)
	}
	if len(failed) > 0 {
		return &FilesFailedError{Errs: failed, Total: len(c.Paths)}
	}
	return nil
}

func (d *Dispatcher) verify(ctx context.Context, c domain.VerifyCommand) error {
	err := d.Verify.Verify(ctx, c.Paths)
	if domain.KindOf(err) == domain.KindAggregatedParse {
		return &ReportError{Err: err}
	}
	return err
}
