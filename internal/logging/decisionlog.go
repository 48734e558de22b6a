package logging

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/raoulx24/retentions/internal/entry"
)

// RenderEntry writes one line per log event for e at the configured
// level, in the teacher's printf style. Used for the human-readable
// trace emitted by dry-run and --verbose >= INFO.
func (l *StdLogger) RenderEntry(e *entry.Entry) {
	if l.level < LevelInfo {
		return
	}
	decision, _ := e.Decision()
	for _, ev := range e.Log {
		l.Info("%s: %s (%s)", decision, e.Name, ev.Message)
	}
}

// yamlEvent and yamlEntry are the wire shapes for the --verbose DEBUG
// YAML replay dump: a stable, machine-parseable rendering of the same
// decision log StdLogger prints as text.
type yamlEvent struct {
	Stage   string `yaml:"stage"`
	Reason  string `yaml:"reason"`
	Message string `yaml:"message"`
}

type yamlEntry struct {
	Path     string      `yaml:"path"`
	Kind     string      `yaml:"kind"`
	Decision string      `yaml:"decision"`
	Reason   string      `yaml:"reason"`
	Events   []yamlEvent `yaml:"events"`
}

// yamlRun is the top-level document written for one pipeline run.
type yamlRun struct {
	RunID   string      `yaml:"run_id"`
	Entries []yamlEntry `yaml:"entries"`
}

// WriteYAMLLog marshals the decision log of every entry in entries to
// w as a single YAML document, only at --verbose DEBUG (§9 "decision
// log" design note: a tagged variant carries enough to regenerate the
// message at any verbosity; this is the machine-readable regeneration
// target).
func WriteYAMLLog(w io.Writer, runID string, entries []*entry.Entry) error {
	run := yamlRun{RunID: runID}
	for _, e := range entries {
		decision, reason := e.Decision()
		ye := yamlEntry{
			Path:     e.Path,
			Kind:     e.Kind.String(),
			Decision: decision.String(),
			Reason:   reason,
		}
		for _, ev := range e.Log {
			ye.Events = append(ye.Events, yamlEvent{
				Stage:   ev.Stage.String(),
				Reason:  ev.Reason,
				Message: ev.Message,
			})
		}
		run.Entries = append(run.Entries, ye)
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(run); err != nil {
		return fmt.Errorf("encoding decision log: %w", err)
	}
	return nil
}
