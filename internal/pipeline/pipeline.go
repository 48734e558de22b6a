// Package pipeline implements spec stages 4-8: the deterministic,
// side-effect-free decision core that maps a discovered entry list
// and a validated rule set to a fully justified keep/prune partition.
package pipeline

import (
	"time"

	"github.com/raoulx24/retentions/internal/entry"
	"github.com/raoulx24/retentions/internal/ruleset"
)

// Result is the outcome of running the decision pipeline.
type Result struct {
	Entries   []*entry.Entry
	Retained  []*entry.Entry
	Pruned    []*entry.Entry
	Protected []*entry.Entry
}

// Run executes stages 4 through 8 against the discovered entries.
// now is the pipeline start instant captured once by the caller
// (§5 "Ordering"): replaying the same entries and now reproduces
// byte-identical decision logs.
func Run(entries []*entry.Entry, rs *ruleset.RuleSet, now time.Time) (*Result, error) {
	applyProtection(entries, rs)
	applyRetention(entries, rs)
	applyFilters(entries, rs, now)

	if err := verifyIntegrity(entries); err != nil {
		return nil, err
	}

	if err := applyCompanions(&entries, rs); err != nil {
		return nil, err
	}

	return partition(entries), nil
}

func partition(entries []*entry.Entry) *Result {
	r := &Result{Entries: entries}
	for _, e := range entries {
		switch d, _ := e.Decision(); d {
		case entry.Protected:
			r.Protected = append(r.Protected, e)
		case entry.Retained:
			r.Retained = append(r.Retained, e)
		case entry.Pruned:
			r.Pruned = append(r.Pruned, e)
		}
	}
	return r
}
