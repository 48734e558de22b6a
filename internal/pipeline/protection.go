package pipeline

import (
	"path/filepath"

	"github.com/raoulx24/retentions/internal/entry"
	"github.com/raoulx24/retentions/internal/ruleset"
)

// applyProtection implements spec stage 4: any entry whose basename
// matches the protection pattern is marked Protected and removed
// from all further consideration (§4.2). Protection uses the same
// glob semantics as pattern matching, always case-sensitive (the
// protection pattern has no case-insensitive variant in §6).
func applyProtection(entries []*entry.Entry, rs *ruleset.RuleSet) {
	if rs.ProtectPattern == "" {
		return
	}
	for _, e := range entries {
		ok, err := filepath.Match(rs.ProtectPattern, e.Name)
		if err == nil && ok {
			e.Protect("protected: matches " + rs.ProtectPattern)
		}
	}
}
