// Package lock implements the advisory exclusive lock file described
// in §4.8: create-if-absent-or-fail, one diagnostic line, released on
// every exit path.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/raoulx24/retentions/internal/apperr"
)

// FileName is the fixed lock file name, co-located with the base
// directory (§4.8).
const FileName = ".retentions.lock"

// Metadata is the diagnostic content written into the lock file. Not
// machine-parsed by the tool itself (§6): only presence matters.
type Metadata struct {
	PID   int
	Start time.Time
	RunID string
}

// Lock represents a held advisory lock. The zero value is a no-op
// lock, used when --no-lock-file disables acquisition entirely.
type Lock struct {
	path string
}

// Path returns the lock file path, or "" for a no-op lock.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Acquire creates the lock file exclusively in basePath. If it
// already exists, acquisition fails with a Concurrency error (exit 5,
// §4.8) without touching any entry.
func Acquire(basePath string, meta Metadata) (*Lock, error) {
	path := filepath.Join(basePath, FileName)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, apperr.Concurrencyf("lock", "lock file already present: %s", path)
		}
		return nil, apperr.IOf("lock", "creating lock file %s: %v", path, err)
	}

	line := fmt.Sprintf("%d %s", meta.PID, meta.Start.UTC().Format(time.RFC3339))
	if meta.RunID != "" {
		line += " " + meta.RunID
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		os.Remove(path)
		return nil, apperr.IOf("lock", "writing lock file %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, apperr.IOf("lock", "closing lock file %s: %v", path, err)
	}

	return &Lock{path: path}, nil
}

// Release unlinks the lock file. Safe to call on a nil or no-op Lock.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return apperr.IOf("lock", "releasing lock file %s: %v", l.path, err)
	}
	return nil
}
