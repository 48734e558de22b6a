package fs

import (
	"context"
	"os"
)

// removeWithRetry wraps os.Remove with the teacher's retry/backoff
// idiom (previously used for copy and rename during snapshot
// writing), now applied to single-file deletion during execution
// (§4.7): a deletion can hit the same transient errors a copy would.
func removeWithRetry(ctx context.Context, path string) error {
	return retry(ctx, "remove", func() error {
		err := os.Remove(path)
		if os.IsNotExist(err) {
			return nil
		}
		return err
	})
}
