package cmd

import (
	"context"
	"io"

	"github.com/go-git/go-billy/v5"

	"github.com/eykd/leap-go/internal/fs"
	"github.com/eykd/leap-go/internal/leap"
	"github.com/eykd/leap-go/internal/lock"
	"github.com/eykd/leap-go/internal/rewrite"
	"github.com/eykd/leap-go/internal/verify"
)

// --- formatAdapter ---

// formatAdapter runs the rewrite executor against the real filesystem.
// In-place runs hold the format lock, waiting for any other run to finish.
type formatAdapter struct {
	st           *state
	fs           billy.Basic
	canonicalize func(string) (string, error)
}

func (a *formatAdapter) Format(ctx context.Context, paths []string, toStdout bool, stdout io.Writer) ([]rewrite.Result, error) {
	bfs := a.fs
	if bfs == nil {
		bfs = fs.NewOS()
	}
	canonicalize := a.canonicalize
	if canonicalize == nil {
		canonicalize = fs.Canonicalize
	}

	cfg := a.st.cfg
	exec := rewrite.New(bfs, rewrite.FormatterFunc(leap.Format),
		rewrite.WithStdout(stdout),
		rewrite.WithCanonicalize(canonicalize),
		rewrite.WithRestoreOnWriteError(cfg.Format.RestoreOnWriteError),
		rewrite.WithMaxSlots(cfg.Backup.MaxSlots),
		rewrite.WithLogger(a.st.log),
	)

	if toStdout || cfg.Lock.Disabled {
		return exec.RewriteAll(ctx, paths, toStdout)
	}

	lockPath := cfg.LockPath()
	notice := lock.WithWaitNotice(func() {
		a.st.log.Warn("waiting for another leap format run to finish", "lock", lockPath)
	})

	var results []rewrite.Result
	err := lock.NewFromPath(lockPath, notice).Hold(ctx, func() error {
		var rerr error
		results, rerr = exec.RewriteAll(ctx, paths, false)
		return rerr
	})
	return results, err
}

// --- verifyAdapter ---

type verifyAdapter struct {
	opts []leap.ParseOption
}

func (a *verifyAdapter) Verify(ctx context.Context, paths []string) error {
	opts := append([]leap.ParseOption{leap.WithCanonicalize(fs.Canonicalize)}, a.opts...)
	parser := verify.ParserFunc(func(ctx context.Context, paths []string) error {
		return leap.ParseMany(ctx, paths, opts...)
	})
	return verify.New(parser).Verify(ctx, paths)
}
