// Package metrics holds the Prometheus instruments for reconciliation runs
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for RunsTotal
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics provides observability for the reconciliation pipeline.
// A nil *Metrics is valid and records nothing
type Metrics struct {
	// Runs by outcome ("ok" or the perr code label)
	RunsTotal *prometheus.CounterVec

	// Whole run latency
	RunDuration prometheus.Histogram

	// Per-stage latency: decode, load, normalize, extract, match, merge
	StageDuration *prometheus.HistogramVec

	// Candidates extracted across runs
	CandidatesTotal prometheus.Counter

	// Match results by accepted=true|false
	MatchesTotal *prometheus.CounterVec
}

// New registers all pipeline metrics on reg. Pass prometheus.DefaultRegisterer in
// binaries and a fresh prometheus.NewRegistry() in tests
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "namematch_pipeline_runs_total",
			Help: "Total reconciliation runs by outcome",
		}, []string{"outcome"}),

		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "namematch_pipeline_duration_seconds",
			Help:    "Duration of a full reconciliation run including document decoding",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "namematch_pipeline_stage_duration_seconds",
			Help:    "Duration of individual pipeline stages",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"stage"}),

		CandidatesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "namematch_candidates_total",
			Help: "Total candidate names extracted from documents",
		}),

		MatchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "namematch_matches_total",
			Help: "Total match results by acceptance",
		}, []string{"accepted"}),
	}
}

// ObserveRun records the outcome and duration of one run
func (m *Metrics) ObserveRun(outcome string, d time.Duration) {
	if m != nil {
		m.RunsTotal.WithLabelValues(outcome).Inc()
		m.RunDuration.Observe(d.Seconds())
	}
}

// ObserveStage records the duration of a single stage
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m != nil {
		m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// AddCandidates counts extracted candidates
func (m *Metrics) AddCandidates(n int) {
	if m != nil && n > 0 {
		m.CandidatesTotal.Add(float64(n))
	}
}

// AddMatches counts accepted and rejected match results
func (m *Metrics) AddMatches(accepted, rejected int) {
	if m == nil {
		return
	}
	if accepted > 0 {
		m.MatchesTotal.WithLabelValues("true").Add(float64(accepted))
	}
	if rejected > 0 {
		m.MatchesTotal.WithLabelValues("false").Add(float64(rejected))
	}
}
