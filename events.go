package canopy

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventParse EventType = "parse"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ParseEvent describes one completed Root.Parse call.
type ParseEvent struct {
	EventBase
	Schema   string        `json:"schema"`
	Errors   int           `json:"errors"`
	Duration time.Duration `json:"duration"`
}

// Hooks defines callbacks for observability.
// They run synchronously on the parsing goroutine, so they must be cheap and
// safe for concurrent use when a Root is shared.
type Hooks struct {
	OnParse func(*ParseEvent)
}
