// Package physics composes the lower layers into the analysis entry point:
// diagnostics gate, coherence curves, decay and asymmetry, information
// metrics, structural heuristics, and the threshold gate.
package physics

// EventKind labels a diagnostic event.
type EventKind string

const (
	EventStage    EventKind = "stage"
	EventDecision EventKind = "decision"
	EventWarning  EventKind = "warning"
)

// Event is one typed diagnostic emission. The engine never prints;
// formatting is the caller's concern.
type Event struct {
	Kind    EventKind
	Stage   string
	Message string
}

// Observer receives diagnostic events during a run.
type Observer func(Event)

func (e *Engine) emit(kind EventKind, stage, message string) {
	if e.observer != nil {
		e.observer(Event{Kind: kind, Stage: stage, Message: message})
	}
}
