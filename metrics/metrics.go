// Package metrics exposes prometheus counters for check and run
// outcomes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const MetricsNamespace = "envgate"

var (
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	checksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "checks_total",
		Help:      "Count of evaluated checks by result",
	}, []string{
		"run_id",
		"name",
		"result",
	})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "runs_total",
		Help:      "Count of completed runs by result",
	}, []string{
		"run_id",
		"result",
	})

	runDurationSeconds = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of the last run",
	}, []string{
		"run_id",
	})

	runCheckCounts = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_check_counts",
		Help:      "Per-run check totals by bucket",
	}, []string{
		"run_id",
		"bucket",
	})
)

// RecordError increments the error counter for a named error class.
func RecordError(errorLabel string) {
	errorsTotal.WithLabelValues(errorLabel).Inc()
}

// RecordCheck records the terminal result of one check.
func RecordCheck(runID, name, result string) {
	checksTotal.WithLabelValues(runID, name, result).Inc()
}

// RecordRun records the aggregate outcome of a run.
func RecordRun(runID, result string, total, passed, failed, skipped int, duration time.Duration) {
	runsTotal.WithLabelValues(runID, result).Inc()
	runDurationSeconds.WithLabelValues(runID).Set(duration.Seconds())
	runCheckCounts.WithLabelValues(runID, "total").Set(float64(total))
	runCheckCounts.WithLabelValues(runID, "passed").Set(float64(passed))
	runCheckCounts.WithLabelValues(runID, "failed").Set(float64(failed))
	runCheckCounts.WithLabelValues(runID, "skipped").Set(float64(skipped))
}
