package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a per-file failure.
type Kind int

const (
	// KindPath means the path could not be canonicalized or has no file name.
	KindPath Kind = iota + 1
	// KindRead means the file contents could not be read as text.
	KindRead
	// KindFormat means the formatter rejected the input.
	KindFormat
	// KindBackupExhausted means every backup slot is taken.
	KindBackupExhausted
	// KindBackupRename means the original could not be moved to its backup path.
	KindBackupRename
	// KindWrite means the formatted content could not be written. The
	// original content remains at the backup path.
	KindWrite
	// KindCleanup means the backup could not be removed after a successful write.
	KindCleanup
	// KindAggregatedParse means one or more files failed verification.
	KindAggregatedParse
)

var kindNames = map[Kind]string{
	KindPath:            "PathError",
	KindRead:            "ReadError",
	KindFormat:          "FormatError",
	KindBackupExhausted: "BackupExhausted",
	KindBackupRename:    "BackupRenameError",
	KindWrite:           "WriteError",
	KindCleanup:         "CleanupError",
	KindAggregatedParse: "AggregatedParseError",
}

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ErrBackupExhausted is returned when no backup slot is free.
var ErrBackupExhausted = errors.New("no free backup slot")

// ErrNoFileName is returned for paths without a file-name component.
var ErrNoFileName = errors.New("path has no file name")

// ErrUnformattable is returned when the formatter cannot format the input.
var ErrUnformattable = errors.New("input could not be formatted")

// FileError is a failure attributed to a single spec file.
type FileError struct {
	Kind Kind
	Path string
	// Backup is set when the failure left the original content at a
	// backup path.
	Backup string
	// Restored is set when a failed write was undone by moving the backup
	// back to Path.
	Restored bool
	Err      error
}

// Error returns a one-line description naming the file.
func (e *FileError) Error() string {
	switch e.Kind {
	case KindPath:
		return fmt.Sprintf("Path error: `%s`", e.Path)
	case KindRead:
		return fmt.Sprintf("Can't read: `%s`", e.Path)
	case KindFormat:
		return fmt.Sprintf("Error formatting: `%s`", e.Path)
	case KindBackupExhausted:
		return fmt.Sprintf("Can't find path for backup: `%s`", e.Path)
	case KindBackupRename:
		return fmt.Sprintf("Failed to backup: `%s`", e.Path)
	case KindWrite:
		if e.Restored {
			return fmt.Sprintf("Failed to write: `%s` (original content restored)", e.Path)
		}
		if e.Backup != "" {
			return fmt.Sprintf("Failed to write: `%s` (original content kept in `%s`)", e.Path, e.Backup)
		}
		return fmt.Sprintf("Failed to write: `%s`", e.Path)
	case KindCleanup:
		return fmt.Sprintf("Failed delete backup: `%s`", e.Backup)
	case KindAggregatedParse:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "verification failed"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Path
}

// Unwrap returns the underlying cause.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Detail returns the underlying cause's message, or "" when there is none.
func (e *FileError) Detail() string {
	if e.Err == nil || e.Kind == KindAggregatedParse {
		return ""
	}
	return e.Err.Error()
}

// KindOf returns the Kind of the first FileError in err's chain, or 0.
func KindOf(err error) Kind {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
