package dino

import "fmt"

// Notifier receives the clock's notifications. Calls are synchronous and
// happen on the goroutine that drives the clock.
type Notifier interface {
	OnTrigger(present bool)
	OnJump(active bool)
	OnSpeedChange(speed float64)
	OnScoreChange(score uint32)
	OnGameEnd(sessionID string)
}

type nopNotifier struct{}

func (nopNotifier) OnTrigger(bool)        {}
func (nopNotifier) OnJump(bool)           {}
func (nopNotifier) OnSpeedChange(float64) {}
func (nopNotifier) OnScoreChange(uint32)  {}
func (nopNotifier) OnGameEnd(string)      {}

// Notifiers fans every notification out to each notifier in order.
type Notifiers []Notifier

// OnTrigger forwards an obstacle change to every notifier.
func (ns Notifiers) OnTrigger(present bool) {
	for _, n := range ns {
		n.OnTrigger(present)
	}
}

// OnJump forwards a jump change to every notifier.
func (ns Notifiers) OnJump(active bool) {
	for _, n := range ns {
		n.OnJump(active)
	}
}

// OnSpeedChange forwards a new speed to every notifier.
func (ns Notifiers) OnSpeedChange(speed float64) {
	for _, n := range ns {
		n.OnSpeedChange(speed)
	}
}

// OnScoreChange forwards a new score to every notifier.
func (ns Notifiers) OnScoreChange(score uint32) {
	for _, n := range ns {
		n.OnScoreChange(score)
	}
}

// OnGameEnd forwards the end of a session to every notifier.
func (ns Notifiers) OnGameEnd(sessionID string) {
	for _, n := range ns {
		n.OnGameEnd(sessionID)
	}
}

// EventKind identifies which notification an Event records.
type EventKind int

const (
	EventTrigger EventKind = iota
	EventJump
	EventSpeedChange
	EventScoreChange
	EventGameEnd
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventTrigger:
		return "trigger"
	case EventJump:
		return "jump"
	case EventSpeedChange:
		return "speed"
	case EventScoreChange:
		return "score"
	case EventGameEnd:
		return "game_end"
	default:
		return "unknown"
	}
}

// MarshalYAML encodes the kind by name.
func (k EventKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Event is one recorded notification. Only the field matching Kind is set.
type Event struct {
	At        Timestamp `yaml:"at"`
	Kind      EventKind `yaml:"event"`
	Present   bool      `yaml:"present,omitempty"` // Trigger shown or jump active
	Speed     float64   `yaml:"speed,omitempty"`
	Score     uint32    `yaml:"score,omitempty"`
	SessionID string    `yaml:"session_id,omitempty"`
}

// Detail returns the event's payload formatted for display.
func (e Event) Detail() string {
	switch e.Kind {
	case EventTrigger, EventJump:
		return fmt.Sprintf("%t", e.Present)
	case EventSpeedChange:
		return fmt.Sprintf("%.1f", e.Speed)
	case EventScoreChange:
		return fmt.Sprintf("%d", e.Score)
	case EventGameEnd:
		return e.SessionID
	default:
		return ""
	}
}

// Recorder is a Notifier that keeps every notification it receives.
type Recorder struct {
	// Now stamps each event. Events are stamped 0 when nil.
	Now    func() Timestamp
	Events []Event
}

func (r *Recorder) record(e Event) {
	if r.Now != nil {
		e.At = r.Now()
	}
	r.Events = append(r.Events, e)
}

// OnTrigger records an obstacle change.
func (r *Recorder) OnTrigger(present bool) {
	r.record(Event{Kind: EventTrigger, Present: present})
}

// OnJump records a jump change.
func (r *Recorder) OnJump(active bool) {
	r.record(Event{Kind: EventJump, Present: active})
}

// OnSpeedChange records a new speed.
func (r *Recorder) OnSpeedChange(speed float64) {
	r.record(Event{Kind: EventSpeedChange, Speed: speed})
}

// OnScoreChange records a new score.
func (r *Recorder) OnScoreChange(score uint32) {
	r.record(Event{Kind: EventScoreChange, Score: score})
}

// OnGameEnd records the end of a session.
func (r *Recorder) OnGameEnd(sessionID string) {
	r.record(Event{Kind: EventGameEnd, SessionID: sessionID})
}

// Kinds returns the kinds of all recorded events in order.
func (r *Recorder) Kinds() []EventKind {
	kinds := make([]EventKind, len(r.Events))
	for i, e := range r.Events {
		kinds[i] = e.Kind
	}
	return kinds
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}
