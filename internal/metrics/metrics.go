// Package metrics exposes Prometheus instrumentation for the onboarding
// engine via the engine's lifecycle hooks.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lingokit/onboard/pkg/domain"
)

// Collector holds the onboarding metric families.
type Collector struct {
	sessionsStarted   prometheus.Counter
	sessionsCompleted prometheus.Counter
	questionsAnswered prometheus.Counter
	saveFailures      *prometheus.CounterVec
}

// NewCollector creates and registers the onboarding metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "onboard_sessions_started_total",
			Help: "Total number of onboarding sessions started",
		}),
		sessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "onboard_sessions_completed_total",
			Help: "Total number of onboarding sessions completed and persisted",
		}),
		questionsAnswered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "onboard_questions_answered_total",
			Help: "Total number of question responses recorded",
		}),
		saveFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_save_failures_total",
			Help: "Total number of completion protocol failures by category",
		}, []string{"category"}),
	}
	reg.MustRegister(c.sessionsStarted, c.sessionsCompleted, c.questionsAnswered, c.saveFailures)
	return c
}

// Hooks returns engine hooks that feed these metrics.
func (c *Collector) Hooks() domain.Hooks {
	return domain.Hooks{
		OnSessionStart: c.sessionsStarted.Inc,
		OnComplete:     c.sessionsCompleted.Inc,
		OnAnswer: func(string) {
			c.questionsAnswered.Inc()
		},
		OnSaveFailure: func(category domain.Category) {
			c.saveFailures.WithLabelValues(string(category)).Inc()
		},
	}
}
