package domain

import "time"

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	StatusNotStarted SessionStatus = "not_started"
	StatusActive     SessionStatus = "active"
	// StatusStalled means the last input was valid but routing found no
	// destination. The session still accepts input; the flag exists so
	// the UI and logs can distinguish an authoring defect from caller
	// error.
	StatusStalled SessionStatus = "stalled"
	StatusEnded   SessionStatus = "ended"
)

// StepKind classifies one frame of session history.
type StepKind string

const (
	// StepStart is the frame recorded when a session enters the root node.
	StepStart StepKind = "start"
	// StepAdvance is a resolved transition to another node.
	StepAdvance StepKind = "advance"
	// StepReject is a keystroke outside the valid option range.
	StepReject StepKind = "reject"
	// StepStall is a valid keystroke the resolver could not route.
	StepStall StepKind = "stall"
)

// SessionStep is one frame of the session's append-only history. The
// step log is the single source of truth: both the persisted summary
// fields (input history, navigation path) and the simulator's back
// support are derived from it.
type SessionStep struct {
	Kind   StepKind  `json:"kind"`
	NodeID string    `json:"node_id"`
	Input  string    `json:"input,omitempty"`
	At     time.Time `json:"at"`
}

// InputRecord is one received keystroke, tagged when it was rejected,
// kept for audit.
type InputRecord struct {
	Value   string `json:"value"`
	Invalid bool   `json:"invalid,omitempty"`
}

// Session is one caller's traversal of a MenuGraph.
type Session struct {
	SessionID     string        `json:"session_id"`
	ApplicationID string        `json:"application_id"`
	SubscriberID  string        `json:"subscriber_id"`
	CurrentNodeID string        `json:"current_node_id"`
	Status        SessionStatus `json:"status"`
	Steps         []SessionStep `json:"steps"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewSession creates an unstarted session.
func NewSession(sessionID, applicationID, subscriberID string, now time.Time) *Session {
	return &Session{
		SessionID:     sessionID,
		ApplicationID: applicationID,
		SubscriberID:  subscriberID,
		Status:        StatusNotStarted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// InputHistory projects the raw keystrokes out of the step log, in
// order, including rejected ones.
func (s *Session) InputHistory() []InputRecord {
	var out []InputRecord
	for _, step := range s.Steps {
		if step.Kind == StepStart {
			continue
		}
		out = append(out, InputRecord{
			Value:   step.Input,
			Invalid: step.Kind == StepReject,
		})
	}
	return out
}

// NavigationPath projects the node ids actually visited: one entry per
// resolved transition, not per keystroke.
func (s *Session) NavigationPath() []string {
	var out []string
	for _, step := range s.Steps {
		if step.Kind == StepStart || step.Kind == StepAdvance {
			out = append(out, step.NodeID)
		}
	}
	return out
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	out := *s
	if s.Steps != nil {
		out.Steps = make([]SessionStep, len(s.Steps))
		copy(out.Steps, s.Steps)
	}
	return &out
}
