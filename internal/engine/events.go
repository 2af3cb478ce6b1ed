package engine

import "fmt"

// Event is one life or financial event worth reporting (a retirement, a
// marriage-year filing change, an insolvent year).
type Event struct {
	Year    int    `json:"year"`
	Message string `json:"message"`
}

// EventLog collects events across a run in occurrence order.
type EventLog struct {
	events []Event
}

// Addf records a formatted event for the given year.
func (l *EventLog) Addf(year int, format string, args ...any) {
	l.events = append(l.events, Event{Year: year, Message: fmt.Sprintf(format, args...)})
}

// Events returns a copy of all recorded events.
func (l *EventLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// forYear returns the messages recorded for one year.
func (l *EventLog) forYear(year int) []string {
	var msgs []string
	for _, e := range l.events {
		if e.Year == year {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}
