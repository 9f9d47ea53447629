// Package metrics declares the BMC core's Prometheus instrumentation
// (A4): clauses emitted, solve calls (labeled by outcome), solve
// latency, and the deepest k reached by a run. Grounded on the
// teacher's pkg/metrics package-level gauge/counter vars plus a single
// RegisterOLM-style registration function, re-scoped from CSV/
// InstallPlan/Subscription counts to BMC's own concerns.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ClausesEmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bmc",
			Name:      "clauses_emitted_total",
			Help:      "Total number of CNF clauses taught to a SAT solver across all runs.",
		},
	)

	SolveCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bmc",
			Name:      "solve_calls_total",
			Help:      "Total number of SolveAllGroups/SolveWithoutGroups calls, labeled by outcome.",
		},
		[]string{"outcome"},
	)

	SolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bmc",
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock time spent inside a single solver call.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	DepthReached = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bmc",
			Name:      "depth_reached",
			Help:      "The k of the most recently completed iteration of the active algorithm.",
		},
	)
)

var registerOnce sync.Once

// Register registers every BMC collector with reg. Safe to call more
// than once per process (e.g. from repeated test setup); only the
// first call actually registers.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(ClausesEmitted, SolveCalls, SolveDuration, DepthReached)
	})
}

// ObserveSolve records one solver call's outcome and latency.
func ObserveSolve(outcome string, d time.Duration) {
	SolveCalls.WithLabelValues(outcome).Inc()
	SolveDuration.Observe(d.Seconds())
}

// AddClauses records n freshly taught clauses.
func AddClauses(n int) {
	if n > 0 {
		ClausesEmitted.Add(float64(n))
	}
}

// SetDepth records the current algorithm's latest completed k.
func SetDepth(k int) {
	DepthReached.Set(float64(k))
}
