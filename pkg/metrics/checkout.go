package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records cart transitions and sales submissions.
type CheckoutMetrics struct {
	transitions        *prometheus.CounterVec
	submissions        *prometheus.CounterVec
	submissionDuration *prometheus.HistogramVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_transitions_total",
		Help: "Cart state transitions by action and outcome.",
	}, []string{"action", "outcome"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sale_submissions_total",
		Help: "Sale submissions by result.",
	}, []string{"result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sale_submission_duration_seconds",
		Help:    "Duration of sale submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	reg.MustRegister(transitions, submissions, duration)
	return &CheckoutMetrics{
		transitions:        transitions,
		submissions:        submissions,
		submissionDuration: duration,
	}
}

// IncTransition counts an applied or rejected cart transition.
func (m *CheckoutMetrics) IncTransition(action, outcome string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(action), normalizeLabel(outcome)).Inc()
}

// ObserveSubmission records the result and duration of one sale submission.
func (m *CheckoutMetrics) ObserveSubmission(result string, duration time.Duration) {
	if m == nil || m.submissions == nil {
		return
	}
	result = normalizeLabel(result)
	m.submissions.WithLabelValues(result).Inc()
	m.submissionDuration.WithLabelValues(result).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
