package pipeline

import (
	"testing"
	"time"

	"github.com/raoulx24/retentions/internal/entry"
	"github.com/raoulx24/retentions/internal/ruleset"
)

func TestRunEndToEndDaysRetentionWithMaxFilesDemotion(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local)
	entries := []*entry.Entry{
		mkEntry("day0", now),
		mkEntry("day1", now.AddDate(0, 0, -1)),
		mkEntry("day2", now.AddDate(0, 0, -2)),
		mkEntry("day3", now.AddDate(0, 0, -3)),
	}
	rs := &ruleset.RuleSet{
		Counts:   map[ruleset.Granularity]int{ruleset.Days: 4},
		MaxFiles: 2,
	}

	result, err := Run(entries, rs, now)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Retained) != 2 {
		t.Fatalf("len(Retained) = %d, want 2 (max-files demotes the rest)", len(result.Retained))
	}
	if len(result.Pruned) != 2 {
		t.Fatalf("len(Pruned) = %d, want 2", len(result.Pruned))
	}
	// newest two survive max-files.
	names := map[string]bool{}
	for _, e := range result.Retained {
		names[e.Name] = true
	}
	if !names["day0"] || !names["day1"] {
		t.Fatalf("expected day0 and day1 retained, got %v", names)
	}
}

func TestRunEndToEndProtectionOverridesEverything(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local)
	entries := []*entry.Entry{
		mkEntry("ancient.keep", now.AddDate(-5, 0, 0)),
		mkEntry("recent.tar", now),
	}
	rs := &ruleset.RuleSet{
		ProtectPattern: "*.keep",
		Counts:         map[ruleset.Granularity]int{ruleset.Days: 1},
	}

	result, err := Run(entries, rs, now)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Protected) != 1 || result.Protected[0].Name != "ancient.keep" {
		t.Fatalf("Protected = %v, want ancient.keep", result.Protected)
	}
	if len(result.Retained) != 1 || result.Retained[0].Name != "recent.tar" {
		t.Fatalf("Retained = %v, want recent.tar", result.Retained)
	}
}

func TestRunEndToEndCompanionExpansionOfPrunedEntry(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local)

	writeSibling(t, dir, "old.md5")
	writeSibling(t, dir, "old.info")

	pruneCandidate := &entry.Entry{Path: dir + "/old.tar", Name: "old.tar", Kind: entry.File, AgeInstant: now.AddDate(0, 0, -10)}
	survivor := &entry.Entry{Path: dir + "/new.tar", Name: "new.tar", Kind: entry.File, AgeInstant: now}

	entries := []*entry.Entry{survivor, pruneCandidate}
	rs := &ruleset.RuleSet{
		Counts: map[ruleset.Granularity]int{ruleset.Days: 1},
		Companions: []ruleset.CompanionRule{
			{Suffix: true, Match: ".tar", Companions: []string{".md5", ".info"}},
		},
	}

	result, err := Run(entries, rs, now)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Retained) != 1 || result.Retained[0].Name != "new.tar" {
		t.Fatalf("Retained = %v, want only new.tar", result.Retained)
	}
	// old.tar + its 2 companions, all pruned.
	if len(result.Pruned) != 3 {
		t.Fatalf("len(Pruned) = %d, want 3 (old.tar, old.md5, old.info)", len(result.Pruned))
	}
}

func TestRunEndToEndHierarchicalGranularitiesSkipClaimedBuckets(t *testing.T) {
	loc := time.Local
	now := time.Date(2026, 1, 31, 12, 0, 0, 0, loc)
	entries := []*entry.Entry{
		mkEntry("a", time.Date(2026, 1, 31, 12, 0, 0, 0, loc)),
		mkEntry("b", time.Date(2026, 1, 30, 12, 0, 0, 0, loc)),
		mkEntry("c", time.Date(2026, 1, 24, 12, 0, 0, 0, loc)),
		mkEntry("d", time.Date(2025, 12, 20, 12, 0, 0, 0, loc)),
	}
	rs := &ruleset.RuleSet{Counts: map[ruleset.Granularity]int{
		ruleset.Days:  1,
		ruleset.Weeks: 1,
		ruleset.Month: 1,
	}}

	result, err := Run(entries, rs, now)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	retained := map[string]string{}
	for _, e := range result.Retained {
		_, reason := e.Decision()
		retained[e.Name] = reason
	}
	if retained["a"] != "days[2026-01-31]" {
		t.Fatalf("a reason = %q, want days[2026-01-31]", retained["a"])
	}
	if _, ok := retained["b"]; ok {
		t.Fatal("b shares a's day and week bucket, must not be retained")
	}
	if retained["c"] != "weeks[W04]" {
		t.Fatalf("c reason = %q, want weeks[W04] (the weeks pass must skip the already-claimed W05 bucket)", retained["c"])
	}
	if retained["d"] != "months[2025-12]" {
		t.Fatalf("d reason = %q, want months[2025-12] (the months pass must skip the already-claimed 2026-01 bucket)", retained["d"])
	}
	if len(result.Pruned) != 1 || result.Pruned[0].Name != "b" {
		t.Fatalf("Pruned = %v, want only b", result.Pruned)
	}
}

func TestRunIsDeterministicAcrossReplays(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local)
	build := func() []*entry.Entry {
		return []*entry.Entry{
			mkEntry("a", now),
			mkEntry("b", now.AddDate(0, 0, -1)),
		}
	}
	rs := &ruleset.RuleSet{Counts: map[ruleset.Granularity]int{ruleset.Days: 1}}

	r1, err := Run(build(), rs, now)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	r2, err := Run(build(), rs, now)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(r1.Retained) != len(r2.Retained) || len(r1.Pruned) != len(r2.Pruned) {
		t.Fatal("replaying the same entries and now must reproduce the same partition")
	}
}
