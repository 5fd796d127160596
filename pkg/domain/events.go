package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSessionStart EventType = "session_start"
	EventStep         EventType = "step"
	EventSessionEnd   EventType = "session_end"
)

// StepEvent describes one engine transition for observers.
type StepEvent struct {
	Timestamp     time.Time   `json:"timestamp"`
	Type          EventType   `json:"type"`
	SessionID     string      `json:"session_id"`
	ApplicationID string      `json:"application_id"`
	NodeID        string      `json:"node_id"`
	Outcome       OutcomeKind `json:"outcome,omitempty"`
	Input         string      `json:"input,omitempty"`

	// StepCount is the session's recorded step total at emission time.
	StepCount int `json:"step_count"`
}

// LifecycleHooks defines callbacks for engine observability. Any hook
// may be nil. Hooks run synchronously on the stepping goroutine and
// must not block.
type LifecycleHooks struct {
	OnSessionStart func(context.Context, *StepEvent)
	OnStep         func(context.Context, *StepEvent)
	OnSessionEnd   func(context.Context, *StepEvent)
}
