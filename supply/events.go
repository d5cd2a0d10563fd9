package supply

import (
	"log"
	"sync"
)

// =============================================================================
// EVENTS - Notifications emitted by Store and Quartermaster
// =============================================================================

type EventType string

const (
	EventCreated EventType = "created"
	EventChanged EventType = "changed"
	EventRemoved EventType = "removed"
	EventArrived EventType = "arrived"
)

// Event reports a change to a record. RecordID is captured when the event is
// emitted; a removed record's own ID is reset afterwards.
type Event struct {
	Type     EventType
	RecordID RecordID
	Record   *Record
}

// Sink consumes events. Publish must not call back into the Store.
type Sink interface {
	Publish(e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(e Event)

func (f SinkFunc) Publish(e Event) { f(e) }

type discardSink struct{}

func (discardSink) Publish(Event) {}

// MultiSink fans events out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) Publish(e Event) {
	for _, s := range m {
		s.Publish(e)
	}
}

// LogSink writes one line per event.
type LogSink struct {
	Logger *log.Logger
}

func (s LogSink) Publish(e Event) {
	l := s.Logger
	if l == nil {
		l = log.Default()
	}
	l.Printf("[Warehouse] %s #%d %s x%d", e.Type, e.RecordID, e.Record.Identity(), e.Record.Amount)
}

// Recorder keeps every event it receives. Used in tests and for reports.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of type t concern the record with id.
func (r *Recorder) Count(t EventType, id RecordID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == t && e.RecordID == id {
			n++
		}
	}
	return n
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
