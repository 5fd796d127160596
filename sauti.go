package sauti

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sautiflow/sauti/internal/logging"
	"github.com/sautiflow/sauti/internal/runtime"
	"github.com/sautiflow/sauti/pkg/analytics"
	"github.com/sautiflow/sauti/pkg/domain"
	"github.com/sautiflow/sauti/pkg/ports"
	"github.com/sautiflow/sauti/pkg/session"
)

// Engine is the high-level entry point for the sauti library. It wires
// the menu runtime to the persistence collaborators and exposes the
// decision call a gateway webhook handler invokes.
type Engine struct {
	graphs   ports.GraphStore
	sessions *session.Manager
	resolver ports.Resolver
	locker   ports.DistributedLocker
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	now      func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithResolver swaps the navigation resolver. The default routes by
// option-label text similarity.
func WithResolver(r ports.Resolver) Option {
	return func(e *Engine) {
		e.resolver = r
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLocker enables distributed locking on the session manager.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Reply is what the gateway relays to the handset: the next screen and
// whether the dialog has ended.
type Reply struct {
	Prompt string `json:"prompt"`
	Final  bool   `json:"isFinal"`
}

// New creates an Engine over the given stores.
func New(graphs ports.GraphStore, sessions ports.SessionStore, opts ...Option) *Engine {
	e := &Engine{
		graphs:   graphs,
		resolver: runtime.NewLabelResolver(),
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	mgrOpts := []session.Option{session.WithLogger(e.logger)}
	if e.locker != nil {
		mgrOpts = append(mgrOpts, session.WithLocker(e.locker))
	}
	e.sessions = session.NewManager(sessions, mgrOpts...)
	return e
}

// Handle is the inbound decision call: given an existing or newly
// created session and a raw keystroke, it returns the text to display
// next and whether the session has ended. All work for one sessionID is
// serialized by the session manager.
func (e *Engine) Handle(ctx context.Context, applicationID, sessionID, subscriberID, input string) (Reply, error) {
	var reply Reply
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		graph, err := e.graphs.Get(ctx, applicationID)
		if err != nil {
			return fmt.Errorf("load application %s: %w", applicationID, err)
		}

		eng := runtime.NewEngine(graph,
			runtime.WithResolver(e.resolver),
			runtime.WithHooks(e.hooks),
			runtime.WithLogger(e.logger),
			runtime.WithClock(e.now),
		)

		store := e.sessions.Store()
		sess, err := store.Get(ctx, sessionID)
		started := false
		if err != nil {
			if !errors.Is(err, domain.ErrSessionNotFound) {
				return err
			}
			sess = domain.NewSession(sessionID, applicationID, subscriberID, e.now())
		}

		if sess.Status == domain.StatusNotStarted {
			sess, err = eng.Start(ctx, sess)
			if err != nil {
				return err
			}
			started = true
		}

		if !started && input != "" {
			sess, _, err = eng.Step(ctx, sess, input)
			if err != nil {
				return err
			}
		}

		if err := store.Upsert(ctx, sess); err != nil {
			return fmt.Errorf("persist session %s: %w", sessionID, err)
		}

		prompt, err := runtime.Screen(graph, sess.CurrentNodeID)
		if err != nil {
			return err
		}
		reply = Reply{
			Prompt: prompt,
			Final:  sess.Status == domain.StatusEnded,
		}
		return nil
	})
	return reply, err
}

// Report aggregates the application's sessions inside the window.
func (e *Engine) Report(ctx context.Context, applicationID string, win analytics.Window) (analytics.Report, error) {
	graph, err := e.graphs.Get(ctx, applicationID)
	if err != nil {
		return analytics.Report{}, fmt.Errorf("load application %s: %w", applicationID, err)
	}
	sessions, err := e.sessions.Store().ListByApplication(ctx, applicationID, win.Since, win.Until)
	if err != nil {
		return analytics.Report{}, fmt.Errorf("list sessions for %s: %w", applicationID, err)
	}
	return analytics.Aggregate(graph, sessions, win), nil
}

// Graphs returns the graph store the engine routes against.
func (e *Engine) Graphs() ports.GraphStore {
	return e.graphs
}

// Sessions returns the session manager.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}
