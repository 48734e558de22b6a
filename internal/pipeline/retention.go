package pipeline

import (
	"fmt"
	"sort"

	"github.com/raoulx24/retentions/internal/entry"
	"github.com/raoulx24/retentions/internal/ruleset"
)

// applyRetention implements spec stage 5: the hierarchical calendar
// rule (§4.3) followed by --last. entries must already be sorted
// newest-first (§4.1). Entries already Protected are left untouched.
func applyRetention(entries []*entry.Entry, rs *ruleset.RuleSet) {
	for _, g := range ruleset.Order {
		n, ok := rs.Counts[g]
		if !ok || n <= 0 {
			continue
		}
		selectGranularity(entries, g, n)
	}

	if rs.Last > 0 {
		applyLast(entries, rs.Last)
	}

	for _, e := range entries {
		if e.IsProtected() || e.IsRetained() {
			continue
		}
		e.Prune(entry.StageRetention, "outside-retention", fmt.Sprintf("pruned: %s outside configured retention", e.Name))
	}
}

// bucket is one calendar slot for a single granularity pass. Its
// representative is always the newest non-protected entry falling in
// it, computed over every such entry regardless of what earlier,
// finer-grained passes already decided.
type bucket struct {
	label          string
	representative *entry.Entry
}

// selectGranularity walks buckets for granularity g from newest to
// oldest, retaining the representative (newest entry) of each bucket
// until n buckets have contributed a genuinely new retention. If a
// bucket's representative was already retained by a finer-grained
// pass, the whole bucket is skipped and does not count toward n; the
// pass simply advances to the next older bucket. It never falls
// through to a bucket's second-newest entry.
func selectGranularity(entries []*entry.Entry, g ruleset.Granularity, n int) {
	buckets := bucketsByGranularity(entries, g)

	claimed := 0
	for _, b := range buckets {
		if claimed >= n {
			break
		}
		if b.representative.IsRetained() {
			continue
		}
		reason := fmt.Sprintf("%s[%s]", g, b.label)
		b.representative.Retain(entry.StageRetention, reason, fmt.Sprintf("retained: %s %s", g, b.label))
		claimed++
	}
}

// bucketsByGranularity groups every non-protected entry into calendar
// slots for g and returns the buckets ordered newest-slot-first, each
// carrying only its newest member. entries is already sorted
// newest-first, so the first entry seen for a slot is its
// representative.
func bucketsByGranularity(entries []*entry.Entry, g ruleset.Granularity) []*bucket {
	seen := map[int64]*bucket{}
	var starts []int64

	for _, e := range entries {
		if e.IsProtected() {
			continue
		}
		label, start, _ := bucketKey(g, e.AgeInstant)
		key := start.UnixNano()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = &bucket{label: label, representative: e}
		starts = append(starts, key)
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i] > starts[j] })

	buckets := make([]*bucket, len(starts))
	for i, key := range starts {
		buckets[i] = seen[key]
	}
	return buckets
}

// applyLast marks the globally newest n non-protected entries as
// Retained with reason "last" (§4.3): orthogonal to the calendar
// rule, never demotes, only adds.
func applyLast(entries []*entry.Entry, n int) {
	count := 0
	for _, e := range entries {
		if count >= n {
			return
		}
		if e.IsProtected() {
			continue
		}
		e.Retain(entry.StageRetention, "last", fmt.Sprintf("retained: last %d", count+1))
		count++
	}
}
