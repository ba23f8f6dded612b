// Package fs provides the operating-system adapters used by the leap
// commands: the real filesystem, path canonicalization and config discovery.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// NewOS returns the host filesystem rooted at "/", so absolute paths pass
// through unchanged.
func NewOS() billy.Filesystem {
	return osfs.New(string(filepath.Separator))
}

// Canonicalize returns the absolute, symlink-resolved form of path. The
// path must exist.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return resolved, nil
}

// FindConfigImpl walks up from dir looking for the first of names. It
// returns "" when none exists up to the filesystem root.
func FindConfigImpl(dir string, names []string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}

	for {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// FindConfig walks up from the current working directory.
func FindConfig(names []string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return FindConfigImpl(cwd, names)
}
