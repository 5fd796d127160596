package http

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sautiflow/sauti/pkg/domain"
)

// Metrics bundles the engine's prometheus instruments. Register it as
// lifecycle hooks on the engine; the /metrics endpoint serves the
// default registry.
type Metrics struct {
	sessionsStarted prometheus.Counter
	steps           *prometheus.CounterVec
	sessionSteps    prometheus.Histogram
}

// NewMetrics registers the instruments with the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		sessionsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sauti_sessions_started_total",
			Help: "Sessions that entered the root node.",
		}),
		steps: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sauti_steps_total",
			Help: "Resolved keystrokes by outcome.",
		}, []string{"outcome"}),
		sessionSteps: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sauti_session_steps",
			Help:    "Recorded steps per session at close.",
			Buckets: prometheus.LinearBuckets(1, 2, 10),
		}),
	}
}

// Hooks adapts the metrics to engine lifecycle hooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSessionStart: func(ctx context.Context, ev *domain.StepEvent) {
			m.sessionsStarted.Inc()
		},
		OnStep: func(ctx context.Context, ev *domain.StepEvent) {
			m.steps.WithLabelValues(string(ev.Outcome)).Inc()
		},
		OnSessionEnd: func(ctx context.Context, ev *domain.StepEvent) {
			m.sessionSteps.Observe(float64(ev.StepCount))
		},
	}
}
