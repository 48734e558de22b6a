// Package lockwatch is a diagnostic helper invoked only when lock
// acquisition fails (§4.8, exit code 5) at --verbose DEBUG: it
// watches the base directory briefly for the lock file's removal,
// adapting the teacher's fsprobe capability check and debounced
// fsnotify event loop into a bounded, one-shot diagnostic rather than
// a persistent watch. It never changes the decision pipeline and
// never blocks past its timeout.
package lockwatch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WaitForRelease watches dir for lockFileName's removal or rename,
// up to timeout. It returns a human-readable outcome suitable for a
// "retry in Ns" style diagnostic line; it never returns an error, so
// a watch failure degrades to an explanatory string rather than
// aborting the caller's own exit path.
func WaitForRelease(dir, lockFileName string, timeout time.Duration) string {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Sprintf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Sprintf("cannot watch %s: %v", dir, err)
	}

	deadline := time.After(timeout)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return "watch closed unexpectedly"
			}
			if filepath.Base(ev.Name) != lockFileName {
				continue
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				return "lock file was released; safe to retry"
			}
		case err, ok := <-w.Errors:
			if !ok {
				return "watch closed unexpectedly"
			}
			return fmt.Sprintf("watch error: %v", err)
		case <-deadline:
			return fmt.Sprintf("lock still held after %s", timeout)
		}
	}
}
