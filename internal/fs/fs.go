// Package fs defines the filesystem abstraction used by the
// execution stage (§4.7) to delete pruned entries. Adapted from the
// teacher's snapshot-writing FS abstraction: Stat/MkdirAll/RemoveAll
// generalize directly, CopyFile/Rename (needed only for atomic
// snapshot writes, which this tool never performs) are replaced by
// Lstat (needed to re-check symlink-ness right before deletion, §4.6
// I4) and Remove (single-file deletion with the same retry idiom the
// teacher used for copy/rename).
package fs

import (
	"context"
	"time"
)

type FileInfo struct {
	Path    string
	Size    int64
	MTime   time.Time
	IsDir   bool
	IsLink  bool
	Regular bool
}

// FS abstracts the filesystem operations the execution stage needs.
type FS interface {
	Stat(path string) (FileInfo, error)
	Lstat(path string) (FileInfo, error)
	Remove(ctx context.Context, path string) error
	MkdirAll(path string) error
	RemoveAll(path string) error
}
