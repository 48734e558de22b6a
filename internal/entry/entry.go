// Package entry defines the immutable Entry record produced by
// discovery and the Decision/DecisionLog types the pipeline attaches
// to it. Nothing in this package touches the filesystem.
package entry

import "time"

// Kind classifies a discovered filesystem child.
type Kind uint8

const (
	File Kind = iota
	Folder
)

func (k Kind) String() string {
	if k == Folder {
		return "folder"
	}
	return "file"
}

// Entry is an immutable record produced by discovery (spec stage 3).
// The pipeline never mutates Path, Kind, Size, AgeInstant or Name
// after discovery; Log accumulates decision events as later stages
// run.
type Entry struct {
	Path       string
	Kind       Kind
	Size       int64
	AgeInstant time.Time
	Name       string

	Log DecisionLog

	decision Decision
	reason   string
}

// Decision is the final classification of an entry.
type Decision uint8

const (
	// Undecided is the zero value; every entry must leave the
	// pipeline in one of the three decided states.
	Undecided Decision = iota
	Protected
	Retained
	Pruned
)

func (d Decision) String() string {
	switch d {
	case Protected:
		return "protected"
	case Retained:
		return "retained"
	case Pruned:
		return "pruned"
	default:
		return "undecided"
	}
}

// Decision reports the entry's current decision and reason token.
func (e *Entry) Decision() (Decision, string) { return e.decision, e.reason }

// Protect marks the entry Protected. Protection is terminal: no later
// stage may change it (I1, §4.2).
func (e *Entry) Protect(reason string) {
	e.decision = Protected
	e.reason = reason
	e.Log.Append(StageProtection, reason, "protected: "+reason)
}

// Retain marks the entry Retained with the given reason token. Retain
// is idempotent: a second call from a coarser granularity or from
// --last is a no-op against the decision, but still logs the
// attempt so the trace shows every rule that would have claimed the
// entry.
func (e *Entry) Retain(stage Stage, reason, message string) {
	if e.decision == Retained {
		e.Log.Append(stage, reason, message+" (already retained: "+e.reason+")")
		return
	}
	e.decision = Retained
	e.reason = reason
	e.Log.Append(stage, reason, message)
}

// Prune marks the entry Pruned with the given reason token,
// overwriting any prior decision (e.g. the filter pass demoting a
// Retained entry). The prior reason remains in the log.
func (e *Entry) Prune(stage Stage, reason, message string) {
	e.decision = Pruned
	e.reason = reason
	e.Log.Append(stage, reason, message)
}

// IsRetained reports whether the entry's current decision is Retained.
func (e *Entry) IsRetained() bool { return e.decision == Retained }

// IsProtected reports whether the entry's current decision is Protected.
func (e *Entry) IsProtected() bool { return e.decision == Protected }

// IsPruned reports whether the entry's current decision is Pruned.
func (e *Entry) IsPruned() bool { return e.decision == Pruned }
