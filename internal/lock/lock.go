// Package lock provides the advisory file lock held while leap rewrites
// spec files in place.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrAlreadyLocked is returned when another leap process holds the lock.
var ErrAlreadyLocked = errors.New("another leap format is already running")

// RetryDelay is how often Wait polls a lock held by another process.
const RetryDelay = 100 * time.Millisecond

// Flocker abstracts the subset of flock.Flock used for advisory locking.
type Flocker interface {
	TryLock() (bool, error)
	TryLockContext(ctx context.Context, retryDelay time.Duration) (bool, error)
	Unlock() error
}

// Lock wraps a Flocker to provide advisory locking.
type Lock struct {
	flocker Flocker
	dir     string
	onWait  func()
}

// Option configures a Lock.
type Option func(*Lock)

// WithWaitNotice sets a function called once when Wait finds the lock held
// and starts polling.
func WithWaitNotice(fn func()) Option {
	return func(l *Lock) { l.onWait = fn }
}

// New creates a Lock from the given Flocker.
func New(f Flocker, opts ...Option) *Lock {
	l := &Lock{flocker: f}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewFromPath creates a Lock backed by a file at the given path. The
// parent directory is created on first use.
func NewFromPath(path string, opts ...Option) *Lock {
	l := New(flock.New(path), opts...)
	l.dir = filepath.Dir(path)
	return l
}

// TryLock attempts a non-blocking lock acquisition. It returns
// ErrAlreadyLocked if the lock is held by another process, or wraps
// any underlying error from the Flocker.
func (l *Lock) TryLock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if l.dir != "" {
		if err := os.MkdirAll(l.dir, 0o755); err != nil {
			return fmt.Errorf("creating lock directory: %w", err)
		}
	}

	ok, err := l.flocker.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	if !ok {
		return ErrAlreadyLocked
	}
	return nil
}

// Unlock releases the advisory lock.
func (l *Lock) Unlock() error {
	if err := l.flocker.Unlock(); err != nil {
		return fmt.Errorf("releasing lock: %w", err)
	}
	return nil
}

// Wait acquires the lock, polling every RetryDelay while another process
// holds it. It returns ctx's error if ctx ends first.
func (l *Lock) Wait(ctx context.Context) error {
	err := l.TryLock(ctx)
	if !errors.Is(err, ErrAlreadyLocked) {
		return err
	}
	if l.onWait != nil {
		l.onWait()
	}

	ok, err := l.flocker.TryLockContext(ctx, RetryDelay)
	switch {
	case ok && err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case err != nil:
		return fmt.Errorf("acquiring lock: %w", err)
	default:
		return ErrAlreadyLocked
	}
}

// Hold runs fn while holding the lock, waiting for it as Wait does. An
// Unlock failure is reported only when fn itself succeeded.
func (l *Lock) Hold(ctx context.Context, fn func() error) (err error) {
	if err := l.Wait(ctx); err != nil {
		return err
	}
	defer func() {
		if uerr := l.Unlock(); uerr != nil && err == nil {
			err = uerr
		}
	}()
	return fn()
}
