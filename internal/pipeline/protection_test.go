package pipeline

import (
	"testing"
	"time"

	"github.com/raoulx24/retentions/internal/entry"
	"github.com/raoulx24/retentions/internal/ruleset"
)

func TestApplyProtectionMatchesGlob(t *testing.T) {
	now := time.Now()
	keep := mkEntry("important.keep", now)
	other := mkEntry("backup.tar", now)
	rs := &ruleset.RuleSet{ProtectPattern: "*.keep"}

	applyProtection([]*entry.Entry{keep, other}, rs)

	if !keep.IsProtected() {
		t.Fatal("important.keep should be protected")
	}
	if other.IsProtected() {
		t.Fatal("backup.tar should not be protected")
	}
}

func TestApplyProtectionNoopWithoutPattern(t *testing.T) {
	now := time.Now()
	e := mkEntry("anything", now)
	rs := &ruleset.RuleSet{}
	applyProtection([]*entry.Entry{e}, rs)
	if e.IsProtected() {
		t.Fatal("no protect pattern configured: nothing should be protected")
	}
}
