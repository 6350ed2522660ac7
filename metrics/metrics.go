// Package metrics provides Prometheus observability metrics for the
// roster scheduler: allocation outcomes for capacity planning and
// parser health for input quality.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// ALLOCATION METRICS - Capacity Planning Visibility
// =============================================================================

// SlotsRequested tracks the slot target of the last run.
var SlotsRequested = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allocator",
	Name:      "slots_requested",
	Help:      "Total interview slots requested for the shift",
})

// SlotsAssigned tracks slots actually placed with interviewers.
var SlotsAssigned = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allocator",
	Name:      "slots_assigned",
	Help:      "Total interview slots assigned to interviewers",
})

// SlotsShortfall tracks requested slots that exceeded total capacity.
// Non-zero values indicate the interviewer pool is too small.
var SlotsShortfall = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allocator",
	Name:      "slots_shortfall",
	Help:      "Requested slots that could not be assigned due to capacity limits",
})

// InterviewersEligible tracks the size of the eligible pool.
var InterviewersEligible = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allocator",
	Name:      "interviewers_eligible",
	Help:      "Number of interviewers available for the selected shift",
})

// CapacityAvailable tracks the summed capacity of the eligible pool.
var CapacityAvailable = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allocator",
	Name:      "capacity_available",
	Help:      "Total slot capacity across eligible interviewers",
})

// =============================================================================
// PARSER METRICS - Input Health
// =============================================================================

// ParserRecordsTotal tracks records successfully loaded.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total CSV records successfully parsed",
})

// ParserSkippedTotal tracks malformed records by failure reason.
var ParserSkippedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "skipped_total",
	Help:      "Total malformed CSV records skipped, by reason",
}, []string{"reason"})

// ParserDurationSeconds tracks time to parse input files.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse the roster CSV",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// AllocationDurationSeconds tracks time to build a roster.
var AllocationDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "allocator",
	Name:      "duration_seconds",
	Help:      "Time taken to allocate slots for a shift",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// InterviewersPerRun tracks pool sizes seen per allocation run.
var InterviewersPerRun = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "allocator",
	Name:      "interviewers_per_run",
	Help:      "Number of eligible interviewers processed per allocation run",
	Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetRunGauges resets all allocation gauges before a new run.
// Call this at the start of BuildRoster.
func ResetRunGauges() {
	SlotsRequested.Set(0)
	SlotsAssigned.Set(0)
	SlotsShortfall.Set(0)
	InterviewersEligible.Set(0)
	CapacityAvailable.Set(0)
}
