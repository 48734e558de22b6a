package pipeline

import (
	"github.com/raoulx24/retentions/internal/apperr"
	"github.com/raoulx24/retentions/internal/entry"
)

// verifyIntegrity implements spec stage 7 (§4.5): the partition must
// be total and disjoint. Every entry must have left the earlier
// stages with a decided state; anything else is a programming fault.
func verifyIntegrity(entries []*entry.Entry) error {
	for _, e := range entries {
		d, _ := e.Decision()
		if d == entry.Undecided {
			return apperr.Integrityf("integrity", "entry %s has no decision after stage 6", e.Path)
		}
	}
	return nil
}
