package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sautiflow/sauti/internal/logging"
	"github.com/sautiflow/sauti/pkg/domain"
	"github.com/sautiflow/sauti/pkg/ports"
)

// Engine is the session state machine. It operates on caller-supplied
// Session values and returns new snapshots; it holds no per-session
// state of its own, which is what lets a gateway handler and the
// offline simulator share it, and lets many sessions resolve in
// parallel against the same (read-only) graph.
type Engine struct {
	graph    *domain.MenuGraph
	resolver ports.Resolver
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	now      func() time.Time
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithResolver swaps the navigation resolver.
func WithResolver(r ports.Resolver) EngineOption {
	return func(e *Engine) {
		e.resolver = r
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock overrides the time source. Used by tests and replays.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine bound to one graph.
func NewEngine(graph *domain.MenuGraph, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:    graph,
		resolver: NewLabelResolver(),
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the graph the engine routes against.
func (e *Engine) Graph() *domain.MenuGraph {
	return e.graph
}

// Start moves a NotStarted session onto the root node and returns the
// new snapshot. It refuses to start against a graph with no usable
// entry node.
func (e *Engine) Start(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
	if sess.Status != domain.StatusNotStarted {
		return sess, nil
	}
	root := e.graph.Root()
	if root == nil {
		return nil, fmt.Errorf("start session %s: %w", sess.SessionID, domain.ErrEmptyGraph)
	}

	next := sess.Clone()
	now := e.now()
	next.CurrentNodeID = root.ID
	next.Status = domain.StatusActive
	next.Steps = append(next.Steps, domain.SessionStep{
		Kind:   domain.StepStart,
		NodeID: root.ID,
		At:     now,
	})
	next.UpdatedAt = now

	// A terminal root ends the session before any input arrives.
	if root.Terminal {
		next.Status = domain.StatusEnded
	}

	e.logger.Debug("session started", "session_id", next.SessionID, "node", root.ID)
	e.emit(ctx, domain.EventSessionStart, next, domain.Outcome{}, "")
	if next.Status == domain.StatusEnded {
		e.emit(ctx, domain.EventSessionEnd, next, domain.Outcome{Kind: domain.OutcomeEnded}, "")
	}
	return next, nil
}

// Step resolves one keystroke and returns the new snapshot plus the
// resolver's outcome. Valid from Active or Stalled; a Step on an Ended
// session is a defensive no-op.
func (e *Engine) Step(ctx context.Context, sess *domain.Session, rawInput string) (*domain.Session, domain.Outcome, error) {
	switch sess.Status {
	case domain.StatusNotStarted:
		return nil, domain.Outcome{}, fmt.Errorf("step session %s: %w", sess.SessionID, domain.ErrNotStarted)
	case domain.StatusEnded:
		return sess, domain.Outcome{Kind: domain.OutcomeEnded}, nil
	}

	outcome, err := e.resolver.Resolve(e.graph, sess.CurrentNodeID, rawInput)
	if err != nil {
		return nil, domain.Outcome{}, err
	}

	next := sess.Clone()
	now := e.now()
	next.UpdatedAt = now

	switch outcome.Kind {
	case domain.OutcomeRejected:
		next.Status = domain.StatusActive
		next.Steps = append(next.Steps, domain.SessionStep{
			Kind:   domain.StepReject,
			NodeID: next.CurrentNodeID,
			Input:  rawInput,
			At:     now,
		})
		e.logger.Debug("input rejected", "session_id", next.SessionID, "node", next.CurrentNodeID, "input", rawInput)

	case domain.OutcomeStalled:
		// Valid input, no destination. Stays put, flagged for display;
		// this indicates an authoring defect, not caller error.
		next.Status = domain.StatusStalled
		next.Steps = append(next.Steps, domain.SessionStep{
			Kind:   domain.StepStall,
			NodeID: next.CurrentNodeID,
			Input:  rawInput,
			At:     now,
		})
		e.logger.Warn("navigation stalled", "session_id", next.SessionID, "node", next.CurrentNodeID, "input", rawInput)

	case domain.OutcomeAdvanced:
		next.CurrentNodeID = outcome.NextNodeID
		next.Status = domain.StatusActive
		next.Steps = append(next.Steps, domain.SessionStep{
			Kind:   domain.StepAdvance,
			NodeID: outcome.NextNodeID,
			Input:  rawInput,
			At:     now,
		})
		if dest := e.graph.Node(outcome.NextNodeID); dest != nil && dest.Terminal {
			next.Status = domain.StatusEnded
		}

	case domain.OutcomeEnded:
		// Already terminal; nothing to record.
	}

	e.emit(ctx, domain.EventStep, next, outcome, rawInput)
	if next.Status == domain.StatusEnded && sess.Status != domain.StatusEnded {
		e.emit(ctx, domain.EventSessionEnd, next, outcome, rawInput)
	}
	return next, outcome, nil
}

// Back pops the last step and restores the session to the prior step's
// node, returning it to Active. A no-op while only the root step
// remains.
func (e *Engine) Back(ctx context.Context, sess *domain.Session) *domain.Session {
	if len(sess.Steps) <= 1 {
		return sess
	}
	next := sess.Clone()
	next.Steps = next.Steps[:len(next.Steps)-1]
	next.CurrentNodeID = next.Steps[len(next.Steps)-1].NodeID
	next.Status = domain.StatusActive
	next.UpdatedAt = e.now()
	return next
}

// Reset clears all traversal state, returning the session to
// NotStarted. Identity and creation time are kept.
func (e *Engine) Reset(sess *domain.Session) *domain.Session {
	next := sess.Clone()
	next.CurrentNodeID = ""
	next.Status = domain.StatusNotStarted
	next.Steps = nil
	next.UpdatedAt = e.now()
	return next
}

func (e *Engine) emit(ctx context.Context, typ domain.EventType, sess *domain.Session, outcome domain.Outcome, input string) {
	var fn func(context.Context, *domain.StepEvent)
	switch typ {
	case domain.EventSessionStart:
		fn = e.hooks.OnSessionStart
	case domain.EventStep:
		fn = e.hooks.OnStep
	case domain.EventSessionEnd:
		fn = e.hooks.OnSessionEnd
	}
	if fn == nil {
		return
	}
	fn(ctx, &domain.StepEvent{
		Timestamp:     e.now(),
		Type:          typ,
		SessionID:     sess.SessionID,
		ApplicationID: sess.ApplicationID,
		NodeID:        sess.CurrentNodeID,
		Outcome:       outcome.Kind,
		Input:         input,
		StepCount:     len(sess.Steps),
	})
}
