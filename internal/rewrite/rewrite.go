// Package rewrite formats spec files in place without ever leaving a file
// truncated.
//
// An in-place rewrite moves the original to a backup path, writes the
// formatted text to the now vacant original path and then removes the
// backup. A process killed between any two steps leaves the pre-format
// content either at the original path or at the backup path.
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/eykd/leap-go/internal/backup"
	"github.com/eykd/leap-go/internal/domain"
	"github.com/eykd/leap-go/internal/source"
)

// Formatter produces the canonical text of a spec. It reports false when
// the input cannot be formatted.
type Formatter interface {
	Format(text string) (string, bool)
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(string) (string, bool)

// Format calls f.
func (f FormatterFunc) Format(text string) (string, bool) {
	return f(text)
}

// Result is the outcome of rewriting one path.
type Result struct {
	Path    string
	Outcome domain.Outcome
	Err     error
}

// Executor runs the rewrite protocol.
type Executor struct {
	fs           billy.Basic
	formatter    Formatter
	resolver     *backup.Resolver
	stdout       io.Writer
	canonicalize func(string) (string, error)
	restore      bool
	log          *slog.Logger
	maxSlots     int
}

// Option configures an Executor.
type Option func(*Executor)

// WithStdout sets the destination for --stdout output.
func WithStdout(w io.Writer) Option {
	return func(e *Executor) { e.stdout = w }
}

// WithCanonicalize sets how user paths become absolute paths on fs.
func WithCanonicalize(fn func(string) (string, error)) Option {
	return func(e *Executor) { e.canonicalize = fn }
}

// WithRestoreOnWriteError moves the backup back when the write step fails.
func WithRestoreOnWriteError(restore bool) Option {
	return func(e *Executor) { e.restore = restore }
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) { e.log = l }
}

// WithMaxSlots bounds the backup slots tried per file.
func WithMaxSlots(n int) Option {
	return func(e *Executor) { e.maxSlots = n }
}

// New returns an Executor working on fs.
func New(fs billy.Basic, f Formatter, opts ...Option) *Executor {
	e := &Executor{
		fs:           fs,
		formatter:    f,
		stdout:       os.Stdout,
		canonicalize: func(p string) (string, error) { return p, nil },
		log:          slog.New(slog.DiscardHandler),
		maxSlots:     backup.DefaultMaxSlots,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resolver = backup.New(fs, e.maxSlots)
	return e
}

// RewriteAll rewrites each path in order. A failing file does not stop the
// remaining ones. The returned error is non-nil only when ctx ends the run
// early; results then cover the files attempted so far.
func (e *Executor) RewriteAll(ctx context.Context, paths []string, toStdout bool) ([]Result, error) {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		outcome, err := e.Rewrite(ctx, p, toStdout)
		e.log.Debug("finished file", "path", p, "outcome", outcome)
		results = append(results, Result{Path: p, Outcome: outcome, Err: err})
	}
	return results, nil
}

// Rewrite formats one file. Errors are *domain.FileError values naming
// path as given by the caller.
func (e *Executor) Rewrite(ctx context.Context, path string, toStdout bool) (domain.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return domain.OutcomeNone, err
	}

	canonical, err := e.canonicalize(path)
	if err != nil {
		return domain.OutcomeNone, &domain.FileError{Kind: domain.KindPath, Path: path, Err: err}
	}

	data, err := util.ReadFile(e.fs, canonical)
	if err != nil {
		return domain.OutcomeNone, &domain.FileError{Kind: domain.KindRead, Path: path, Err: err}
	}
	text, err := source.Decode(data)
	if err != nil {
		return domain.OutcomeNone, &domain.FileError{Kind: domain.KindRead, Path: path, Err: err}
	}

	formatted, ok := e.formatter.Format(text)
	if !ok {
		return domain.OutcomeNone, &domain.FileError{Kind: domain.KindFormat, Path: path, Err: domain.ErrUnformattable}
	}

	if toStdout {
		if _, err := io.WriteString(e.stdout, formatted); err != nil {
			return domain.OutcomeNone, &domain.FileError{Kind: domain.KindWrite, Path: path, Err: err}
		}
		return domain.OutcomeStdout, nil
	}

	// The file keeps the encoding and byte order mark it was read with.
	out, err := source.Encode(formatted, source.Sniff(data))
	if err != nil {
		return domain.OutcomeNone, &domain.FileError{Kind: domain.KindWrite, Path: path, Err: err}
	}
	return e.replace(path, canonical, out)
}

func (e *Executor) replace(path, canonical string, formatted []byte) (domain.Outcome, error) {
	info, err := e.fs.Stat(canonical)
	if err != nil {
		return domain.OutcomeNone, &domain.FileError{Kind: domain.KindRead, Path: path, Err: err}
	}

	backupPath, err := e.resolver.Resolve(canonical)
	if err != nil {
		var fe *domain.FileError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return domain.OutcomeNone, err
	}

	if err := e.fs.Rename(canonical, backupPath); err != nil {
		return domain.OutcomeNone, &domain.FileError{Kind: domain.KindBackupRename, Path: path, Err: err}
	}
	e.log.Debug("moved original to backup", "path", canonical, "backup", backupPath)

	if err := e.write(canonical, formatted, info.Mode().Perm()); err != nil {
		fe := &domain.FileError{Kind: domain.KindWrite, Path: path, Backup: backupPath, Err: err}
		if e.restore {
			if rerr := e.restoreBackup(canonical, backupPath); rerr != nil {
				fe.Err = errors.Join(err, rerr)
			} else {
				fe.Restored = true
				fe.Backup = ""
			}
		}
		return domain.OutcomeNone, fe
	}
	e.log.Debug("wrote formatted content", "path", canonical, "bytes", len(formatted))

	if err := e.fs.Remove(backupPath); err != nil {
		return domain.OutcomeInPlace, &domain.FileError{Kind: domain.KindCleanup, Path: path, Backup: backupPath, Err: err}
	}
	e.log.Debug("removed backup", "backup", backupPath)
	return domain.OutcomeInPlace, nil
}

// write creates path exclusively: the rename before it must have vacated
// the name.
func (e *Executor) write(path string, content []byte, perm os.FileMode) error {
	f, err := e.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (e *Executor) restoreBackup(path, backupPath string) error {
	if err := e.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing partial %s: %w", path, err)
	}
	if err := e.fs.Rename(backupPath, path); err != nil {
		return fmt.Errorf("restoring %s from %s: %w", path, backupPath, err)
	}
	e.log.Debug("restored original from backup", "path", path, "backup", backupPath)
	return nil
}
