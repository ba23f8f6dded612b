package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/eykd/leap-go/internal/config"
	"github.com/eykd/leap-go/internal/domain"
)

func TestContextError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ContextError
		want string
	}{
		{
			name: "op and path",
			err:  &ContextError{Op: "read", Path: "/foo/a.leap", Err: errors.New("permission denied")},
			want: "read: /foo/a.leap: permission denied",
		},
		{
			name: "op only",
			err:  &ContextError{Op: "finding config", Err: errors.New("getting working directory: gone")},
			want: "finding config: getting working directory: gone",
		},
		{
			name: "path only",
			err:  &ContextError{Path: "/foo/a.leap", Err: errors.New("not found")},
			want: "/foo/a.leap: not found",
		},
		{
			name: "error only",
			err:  &ContextError{Err: errors.New("unknown error")},
			want: "unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextError_Unwrap(t *testing.T) {
	inner := errors.New("inner error")
	err := &ContextError{Op: "read", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("ContextError should unwrap to inner error")
	}
}

func TestContextError_Unwrap_ExitCoder(t *testing.T) {
	err := &ContextError{Op: "parse flags", Err: &UsageError{Msg: "bad flag"}}

	if code := ExitCodeFromError(err); code != 2 {
		t.Errorf("ExitCodeFromError(ContextError wrapping UsageError) = %d, want 2", code)
	}
}

func TestFilesFailedError(t *testing.T) {
	errA := &domain.FileError{Kind: domain.KindRead, Path: "a.leap", Err: errors.New("missing")}
	errB := &domain.FileError{Kind: domain.KindFormat, Path: "b.leap", Err: domain.ErrUnformattable}
	err := &FilesFailedError{Errs: []error{errA, errB}, Total: 3}

	want := "Can't read: `a.leap`\nError formatting: `b.leap`"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, domain.ErrUnformattable) {
		t.Error("FilesFailedError should unwrap to each file error")
	}
	if code := ExitCodeFromError(err); code != 1 {
		t.Errorf("ExitCodeFromError() = %d, want 1", code)
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "simple error",
			err:  errors.New("something failed"),
			want: "leap: something failed\n",
		},
		{
			name: "context error with op and path",
			err:  &ContextError{Op: "read", Path: "/foo/a.leap", Err: errors.New("permission denied")},
			want: "leap: read: /foo/a.leap: permission denied\n",
		},
		{
			name: "usage error",
			err:  &UsageError{Msg: "missing command"},
			want: "leap: missing command\n",
		},
		{
			name: "one line per failed file",
			err: &FilesFailedError{Errs: []error{
				&domain.FileError{Kind: domain.KindFormat, Path: "b.leap"},
				&domain.FileError{Kind: domain.KindCleanup, Path: "c.leap", Backup: "c.leap_backup1"},
			}},
			want: "leap: Error formatting: `b.leap`\nleap: Failed delete backup: `c.leap_backup1`\n",
		},
		{
			name: "report printed as is",
			err:  &ReportError{Err: errors.New("error: unknown type `strr`\n --> a.leap:2:11\n")},
			want: "error: unknown type `strr`\n --> a.leap:2:11\n",
		},
		{
			name: "silent error prints nothing",
			err:  &SilentError{Err: errors.New("already reported")},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatError(tt.err)
			if got != tt.want {
				t.Errorf("FormatError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatError_Colored(t *testing.T) {
	p := newPainter(config.ColorAlways, nil)

	got := p.formatError(errors.New("boom"))
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escape in %q", got)
	}
	if !strings.HasSuffix(got, " boom\n") {
		t.Errorf("expected message after colored prefix, got %q", got)
	}
}

func TestRunCLI_ExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		runErr   error
		wantCode int
	}{
		{
			name:     "nil error returns 0",
			runErr:   nil,
			wantCode: 0,
		},
		{
			name:     "generic error returns 1",
			runErr:   errors.New("something went wrong"),
			wantCode: 1,
		},
		{
			name:     "usage error returns 2",
			runErr:   &UsageError{Msg: "missing command"},
			wantCode: 2,
		},
		{
			name:     "failed files return 1",
			runErr:   &FilesFailedError{Errs: []error{errors.New("x")}},
			wantCode: 1,
		},
		{
			name:     "silent error returns 1",
			runErr:   &SilentError{Err: errors.New("x")},
			wantCode: 1,
		},
		{
			name:     "context error wrapping usage error returns 2",
			runErr:   &ContextError{Op: "check", Err: &UsageError{Msg: "bad"}},
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{
				Use:           "test",
				SilenceUsage:  true,
				SilenceErrors: true,
				RunE: func(cmd *cobra.Command, args []string) error {
					return tt.runErr
				},
			}

			stdout := new(bytes.Buffer)
			stderr := new(bytes.Buffer)

			got := RunCLI(cmd, []string{}, stdout, stderr)
			if got != tt.wantCode {
				t.Errorf("RunCLI() exit code = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestRunCLI_ErrorsWrittenToStderr(t *testing.T) {
	cmd := &cobra.Command{
		Use:           "test",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return &ContextError{Op: "read", Path: "/foo/a.leap", Err: errors.New("permission denied")}
		},
	}

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	RunCLI(cmd, []string{}, stdout, stderr)

	if !strings.Contains(stderr.String(), "leap:") {
		t.Errorf("expected 'leap:' prefix in stderr, got: %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "permission denied") {
		t.Errorf("expected error message in stderr, got: %q", stderr.String())
	}
	if strings.Contains(stdout.String(), "permission denied") {
		t.Errorf("error should not appear in stdout, got: %q", stdout.String())
	}
}

func TestRunCLI_NoStderrOnSuccess(t *testing.T) {
	cmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	if code := RunCLI(cmd, []string{}, stdout, stderr); code != 0 {
		t.Errorf("RunCLI() = %d, want 0", code)
	}
	if stderr.Len() != 0 {
		t.Errorf("expected empty stderr, got %q", stderr.String())
	}
}
