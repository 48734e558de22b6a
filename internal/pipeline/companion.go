package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/raoulx24/retentions/internal/apperr"
	"github.com/raoulx24/retentions/internal/entry"
	"github.com/raoulx24/retentions/internal/ruleset"
)

// applyCompanions implements spec stage 8 (§4.6). It may append newly
// discovered companion entries to entries. It is fatal (I5) if any
// resolved companion candidate is already Protected or Retained.
func applyCompanions(entries *[]*entry.Entry, rs *ruleset.RuleSet) error {
	if len(rs.Companions) == 0 {
		return nil
	}

	byPath := map[string]*entry.Entry{}
	for _, e := range *entries {
		byPath[e.Path] = e
	}

	// Snapshot: companion expansion considers the Pruned set as it
	// stood at the start of stage 8, not entries added during this
	// stage (§4.6 "each entry in Pruned").
	var initialPruned []*entry.Entry
	for _, e := range *entries {
		if e.IsPruned() {
			initialPruned = append(initialPruned, e)
		}
	}

	for _, pruned := range initialPruned {
		dir := filepath.Dir(pruned.Path)
		for _, rule := range rs.Companions {
			if !rule.Matches(pruned.Name) {
				continue
			}
			for _, candidateName := range rule.Candidates(pruned.Name) {
				if err := resolveCompanion(entries, byPath, dir, candidateName, pruned.Name); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func resolveCompanion(entries *[]*entry.Entry, byPath map[string]*entry.Entry, dir, candidateName, sourceName string) error {
	candidatePath := filepath.Join(dir, candidateName)

	if existing, ok := byPath[candidatePath]; ok {
		if existing.IsProtected() {
			return apperr.Integrityf("companion", "companion %s of %s is protected", candidatePath, sourceName)
		}
		if existing.IsRetained() {
			return apperr.Integrityf("companion", "companion %s of %s is already retained", candidatePath, sourceName)
		}
		// Already Pruned (possibly by an earlier rule/source): nothing to do.
		return nil
	}

	linfo, err := os.Lstat(candidatePath)
	if err != nil {
		return nil // does not exist: skip
	}
	if linfo.Mode()&os.ModeSymlink != 0 {
		return nil // skip symlinks
	}
	if !linfo.Mode().IsRegular() {
		return nil // skip anything but a regular file
	}

	e := &entry.Entry{
		Path:       candidatePath,
		Kind:       entry.File,
		Size:       linfo.Size(),
		AgeInstant: linfo.ModTime(),
		Name:       candidateName,
	}
	e.Prune(entry.StageCompanion, "companion", fmt.Sprintf("pruned: companion of %s", sourceName))

	byPath[candidatePath] = e
	*entries = append(*entries, e)
	return nil
}
