// Package backup picks collision-free backup paths for files that are about
// to be rewritten.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/eykd/leap-go/internal/domain"
)

// DefaultMaxSlots is the number of backup suffixes tried when no bound is
// configured.
const DefaultMaxSlots = 99

// Suffix is inserted between the file name and the slot number.
const Suffix = "_backup"

// Resolver finds the first unused backup path for a file.
type Resolver struct {
	fs       billy.Basic
	maxSlots int
}

// New returns a Resolver probing slots 1..maxSlots on fs. A maxSlots below
// one selects DefaultMaxSlots.
func New(fs billy.Basic, maxSlots int) *Resolver {
	if maxSlots < 1 {
		maxSlots = DefaultMaxSlots
	}
	return &Resolver{fs: fs, maxSlots: maxSlots}
}

// MaxSlots returns the highest slot number the resolver will try.
func (r *Resolver) MaxSlots() int {
	return r.maxSlots
}

// Name returns the backup path for path in the given slot.
func Name(path string, slot int) string {
	return fmt.Sprintf("%s%s%d", path, Suffix, slot)
}

// Resolve returns the first path <name>_backup<N>, N ascending from 1, that
// does not exist in path's directory.
func (r *Resolver) Resolve(path string) (string, error) {
	if !hasFileName(path) {
		return "", &domain.FileError{Kind: domain.KindPath, Path: path, Err: domain.ErrNoFileName}
	}

	for slot := 1; slot <= r.maxSlots; slot++ {
		candidate := Name(path, slot)
		_, err := r.fs.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", &domain.FileError{
				Kind: domain.KindBackupRename,
				Path: path,
				Err:  fmt.Errorf("probing %s: %w", candidate, err),
			}
		}
	}

	return "", &domain.FileError{Kind: domain.KindBackupExhausted, Path: path, Err: domain.ErrBackupExhausted}
}

func hasFileName(path string) bool {
	if path == "" || strings.HasSuffix(path, string(filepath.Separator)) || strings.HasSuffix(path, "/") {
		return false
	}
	switch filepath.Base(path) {
	case ".", "..", string(filepath.Separator):
		return false
	}
	return true
}
