package entry

// Stage identifies which pipeline stage produced a decision event,
// used to filter and order rendering at different verbosity levels.
type Stage uint8

const (
	StageDiscovery Stage = iota
	StageProtection
	StageRetention
	StageFilter
	StageIntegrity
	StageCompanion
	StageExecution
)

func (s Stage) String() string {
	switch s {
	case StageDiscovery:
		return "discovery"
	case StageProtection:
		return "protection"
	case StageRetention:
		return "retention"
	case StageFilter:
		return "filter"
	case StageIntegrity:
		return "integrity"
	case StageCompanion:
		return "companion"
	case StageExecution:
		return "execution"
	default:
		return "unknown"
	}
}

// Event is one entry in an Entry's decision log. Reason is the
// machine-stable token (e.g. "days[2026-01-31]", "max-size(exceeded
// 50GB)"); Message is the human-rendered sentence for the given
// verbosity. Reason carries enough data on its own to regenerate the
// message; Message is precomputed rather than templated at render
// time because the teacher's logging idiom favors printf-style
// one-shot formatting over a templating layer.
type Event struct {
	Stage   Stage
	Reason  string
	Message string
}

// DecisionLog is the ordered record of events attached to an Entry.
type DecisionLog []Event

// Append records a new event. Nothing is ever removed from a log:
// demotions keep the prior reason visible (§3 "Decision").
func (l *DecisionLog) Append(stage Stage, reason, message string) {
	*l = append(*l, Event{Stage: stage, Reason: reason, Message: message})
}
