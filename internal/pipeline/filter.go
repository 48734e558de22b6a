package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/raoulx24/retentions/internal/entry"
	"github.com/raoulx24/retentions/internal/ruleset"
)

// applyFilters implements spec stage 6: max-age, max-files, max-size
// demote Retained entries to Pruned, in that fixed order (§4.4).
// Filters never promote and never touch Protected entries.
func applyFilters(entries []*entry.Entry, rs *ruleset.RuleSet, now time.Time) {
	if rs.MaxAge > 0 {
		applyMaxAge(entries, rs.MaxAge, now)
	}
	if rs.MaxFiles > 0 {
		applyMaxFiles(entries, rs.MaxFiles)
	}
	if rs.MaxSize > 0 {
		applyMaxSize(entries, rs.MaxSize)
	}
}

func retainedEntries(entries []*entry.Entry) []*entry.Entry {
	var out []*entry.Entry
	for _, e := range entries {
		if e.IsRetained() {
			out = append(out, e)
		}
	}
	return out
}

// applyMaxAge demotes any Retained entry older than the absolute
// cutoff now - maxAge (§4.4 step 1).
func applyMaxAge(entries []*entry.Entry, maxAge time.Duration, now time.Time) {
	cutoff := now.Add(-maxAge)
	for _, e := range retainedEntries(entries) {
		if e.AgeInstant.Before(cutoff) {
			e.Prune(entry.StageFilter, "max-age", fmt.Sprintf("pruned: max-age (older than %s)", maxAge))
		}
	}
}

// applyMaxFiles demotes the oldest Retained entries until the
// Retained set size equals maxFiles, tie-broken by
// byte-lexicographic path order (§4.4 step 2).
func applyMaxFiles(entries []*entry.Entry, maxFiles int) {
	retained := retainedEntries(entries)
	if len(retained) <= maxFiles {
		return
	}

	sorted := append([]*entry.Entry(nil), retained...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].AgeInstant.Equal(sorted[j].AgeInstant) {
			return sorted[i].AgeInstant.After(sorted[j].AgeInstant)
		}
		return sorted[i].Path < sorted[j].Path
	})

	for _, e := range sorted[maxFiles:] {
		e.Prune(entry.StageFilter, "max-files", fmt.Sprintf("pruned: max-files (limit %d exceeded)", maxFiles))
	}
}

// applyMaxSize walks Retained entries newest-first, accumulating
// size; once cumulative size strictly exceeds maxSize, the entry that
// crossed the limit and every subsequent Retained entry are demoted
// (§4.4 step 3). A cumulative size equal to maxSize demotes nothing.
func applyMaxSize(entries []*entry.Entry, maxSize int64) {
	var cumulative int64
	exceeded := false
	for _, e := range entries {
		if !e.IsRetained() {
			continue
		}
		if exceeded {
			e.Prune(entry.StageFilter, "max-size", fmt.Sprintf("pruned: max-size (exceeded %d bytes)", maxSize))
			continue
		}
		cumulative += e.Size
		if cumulative > maxSize {
			exceeded = true
			e.Prune(entry.StageFilter, "max-size", fmt.Sprintf("pruned: max-size (exceeded %d bytes)", maxSize))
		}
	}
}
