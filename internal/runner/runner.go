// Package runner orchestrates one complete pipeline run: lock
// acquisition, discovery, the decision pipeline, execution, and lock
// release (spec stages 1-10 end to end). It is the single entry point
// shared by a direct `retentions` invocation and by each trigger of
// `retentions schedule`.
package runner

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/raoulx24/retentions/internal/discovery"
	"github.com/raoulx24/retentions/internal/execute"
	"github.com/raoulx24/retentions/internal/fs"
	"github.com/raoulx24/retentions/internal/lock"
	"github.com/raoulx24/retentions/internal/lockwatch"
	"github.com/raoulx24/retentions/internal/logging"
	"github.com/raoulx24/retentions/internal/pipeline"
	"github.com/raoulx24/retentions/internal/ruleset"
)

// lockWaitDiagnostic bounds how long the DEBUG-only lockwatch
// diagnostic waits before giving up. The concurrency error is returned
// after the diagnostic finishes, so at --verbose DEBUG it can arrive
// up to this long later.
const lockWaitDiagnostic = 2 * time.Second

// Run executes one full pipeline pass for rs and writes list-only
// output (if any) to stdout. The returned error, if non-nil, is an
// *apperr.Error suitable for apperr.ExitCode.
func Run(ctx context.Context, rs *ruleset.RuleSet, log logging.Logger, stdout io.Writer) error {
	now := time.Now()
	runID := uuid.New().String()
	log.Debug("run %s starting for %s (pattern %q)", runID, rs.BasePath, rs.Pattern)

	l, err := acquireLock(rs, log, runID)
	if err != nil {
		return err
	}
	defer func() {
		if relErr := l.Release(); relErr != nil {
			log.Warn("releasing lock: %v", relErr)
		}
	}()

	entries, err := discovery.Discover(rs, log)
	if err != nil {
		return err
	}
	log.Info("run %s discovered %d entries", runID, len(entries))

	result, err := pipeline.Run(entries, rs, now)
	if err != nil {
		return err
	}
	log.Info("run %s: %d retained, %d pruned, %d protected", runID, len(result.Retained), len(result.Pruned), len(result.Protected))

	if err := execute.Run(ctx, result.Entries, rs, fs.New(), stdout, log); err != nil {
		return err
	}

	if rs.Verbosity >= 3 {
		if err := logging.WriteYAMLLog(os.Stderr, runID, result.Entries); err != nil {
			log.Warn("writing decision log: %v", err)
		}
	}

	return nil
}

func acquireLock(rs *ruleset.RuleSet, log logging.Logger, runID string) (*lock.Lock, error) {
	if rs.NoLockFile {
		return nil, nil
	}

	meta := lock.Metadata{PID: os.Getpid(), Start: time.Now()}
	if rs.LockMetadata {
		meta.RunID = runID
	}
	l, err := lock.Acquire(rs.BasePath, meta)
	if err != nil {
		if rs.Verbosity >= 3 {
			log.Debug("lock acquisition failed: %v", err)
			outcome := lockwatch.WaitForRelease(rs.BasePath, lock.FileName, lockWaitDiagnostic)
			log.Debug("lockwatch: %s", outcome)
		}
		return nil, err
	}
	return l, nil
}
