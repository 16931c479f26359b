package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	mintertypes "github.com/skip-mev/minter/types"
)

var (
	PromNamespace              = "minter"
	SubmissionMetricsNamespace = "submissions"
)

type Metrics struct {
	SubmissionSuccess *prometheus.CounterVec
	SubmissionFailure *prometheus.CounterVec
	GasLimit          prometheus.Histogram
}

// NewMetrics creates the submission metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	submissionSuccess := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: PromNamespace,
		Subsystem: SubmissionMetricsNamespace,
		Name:      "success",
		Help:      "Number of broadcast submissions, by action.",
	}, []string{"action"})
	submissionFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: PromNamespace,
		Subsystem: SubmissionMetricsNamespace,
		Name:      "failure",
		Help:      "Number of submissions that failed before or during broadcast, by action.",
	}, []string{"action"})
	gasLimit := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: PromNamespace,
		Subsystem: SubmissionMetricsNamespace,
		Name:      "gas_limit",
		Help:      "Histogram of gas limits of broadcast transactions.",
		Buckets:   prometheus.ExponentialBuckets(21_000, 2, 10),
	})
	reg.MustRegister(submissionSuccess, submissionFailure, gasLimit)
	return &Metrics{
		SubmissionSuccess: submissionSuccess,
		SubmissionFailure: submissionFailure,
		GasLimit:          gasLimit,
	}
}

// Observe records a finished submission.
func (m *Metrics) Observe(s mintertypes.Submission) {
	if !s.Succeeded() {
		m.SubmissionFailure.WithLabelValues(s.Action).Inc()
		return
	}
	m.SubmissionSuccess.WithLabelValues(s.Action).Inc()
	m.GasLimit.Observe(float64(s.GasLimit))
}
