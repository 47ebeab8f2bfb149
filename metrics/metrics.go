// Package metrics provides Prometheus-based metrics recording for
// evaluation sessions and tool executions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder instruments sessions and tool calls. A nil *Recorder is valid and
// records nothing, so call sites never need to branch.
type Recorder struct {
	sessionsTotal   *prometheus.CounterVec
	sessionTurns    *prometheus.HistogramVec
	sessionDuration *prometheus.HistogramVec
	toolCallsTotal  *prometheus.CounterVec
}

// NewRecorder creates a metrics recorder registered with the given
// registerer. Pass prometheus.DefaultRegisterer for the process-wide
// registry, or a private one in tests.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		sessionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greenagent_sessions_total",
				Help: "Total number of evaluation sessions by domain and final status",
			},
			[]string{"domain", "status"},
		),
		sessionTurns: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "greenagent_session_turns",
				Help:    "Turns consumed per evaluation session",
				Buckets: prometheus.LinearBuckets(1, 2, 12),
			},
			[]string{"domain"},
		),
		sessionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "greenagent_session_duration_seconds",
				Help:    "Wall time per evaluation session in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"domain"},
		),
		toolCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greenagent_tool_calls_total",
				Help: "Total number of tool executions by domain, tool and status",
			},
			[]string{"domain", "tool", "status"},
		),
	}
}

// ObserveSession records the outcome of a completed session.
func (r *Recorder) ObserveSession(domain, status string, turns int, duration time.Duration) {
	if r == nil {
		return
	}
	r.sessionsTotal.WithLabelValues(domain, status).Inc()
	r.sessionTurns.WithLabelValues(domain).Observe(float64(turns))
	r.sessionDuration.WithLabelValues(domain).Observe(duration.Seconds())
}

// ObserveToolCall records a single tool execution.
func (r *Recorder) ObserveToolCall(domain, tool string, success bool) {
	if r == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	r.toolCallsTotal.WithLabelValues(domain, tool, status).Inc()
}
