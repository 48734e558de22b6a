// Package execute implements spec stage 9 (§4.7): delete, simulate,
// or list the Pruned set, and emit the decision log.
package execute

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/raoulx24/retentions/internal/apperr"
	"github.com/raoulx24/retentions/internal/entry"
	fsx "github.com/raoulx24/retentions/internal/fs"
	"github.com/raoulx24/retentions/internal/logging"
	"github.com/raoulx24/retentions/internal/ruleset"
)

// Run executes stage 9 against result entries already partitioned by
// the pipeline. stdout carries list-only output; everything else
// (decision log, warnings) goes through log (§6 "Standard streams").
func Run(ctx context.Context, entries []*entry.Entry, rs *ruleset.RuleSet, filesystem fsx.FS, stdout io.Writer, log logging.Logger) error {
	pruned := sortedPruned(entries)

	switch {
	case rs.ListOnly:
		return listOnly(pruned, rs.ListSeparator, stdout)
	case rs.DryRun:
		renderAll(entries, log)
		return nil
	default:
		renderAll(entries, log)
		return deleteAll(ctx, pruned, rs, filesystem, log)
	}
}

func sortedPruned(entries []*entry.Entry) []*entry.Entry {
	var pruned []*entry.Entry
	for _, e := range entries {
		if e.IsPruned() {
			pruned = append(pruned, e)
		}
	}
	sort.SliceStable(pruned, func(i, j int) bool {
		if !pruned[i].AgeInstant.Equal(pruned[j].AgeInstant) {
			return pruned[i].AgeInstant.After(pruned[j].AgeInstant)
		}
		return pruned[i].Path < pruned[j].Path
	})
	return pruned
}

func listOnly(pruned []*entry.Entry, sep string, stdout io.Writer) error {
	for _, e := range pruned {
		if _, err := fmt.Fprintf(stdout, "%s%s", e.Path, sep); err != nil {
			return apperr.IOf("execute", "writing list-only output: %v", err)
		}
	}
	return nil
}

func renderAll(entries []*entry.Entry, log logging.Logger) {
	if sl, ok := log.(*logging.StdLogger); ok {
		for _, e := range entries {
			sl.RenderEntry(e)
		}
		return
	}
	for _, e := range entries {
		d, reason := e.Decision()
		log.Info("%s: %s (%s)", d, e.Name, reason)
	}
}

func deleteAll(ctx context.Context, pruned []*entry.Entry, rs *ruleset.RuleSet, filesystem fsx.FS, log logging.Logger) error {
	for _, e := range pruned {
		// Re-check right before deletion: a path that has become a
		// symbolic link since discovery is never deleted (I4).
		if info, err := filesystem.Lstat(e.Path); err == nil && info.IsLink {
			log.Warn("skipping %s: it is now a symbolic link", e.Path)
			continue
		}
		if err := filesystem.Remove(ctx, e.Path); err != nil {
			if rs.FailOnDeleteError {
				return apperr.IOf("execute", "deleting %s: %v", e.Path, err)
			}
			log.Warn("failed to delete %s: %v", e.Path, err)
			continue
		}
		log.Info("deleted %s", e.Path)
	}
	return nil
}
