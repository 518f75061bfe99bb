package harness

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteMetrics writes the run as Prometheus text format to path, for the node
// exporter textfile collector.
func WriteMetrics(path string, summary TestRunSummary) error {
	reg := prometheus.NewRegistry()

	units := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hadesctl",
		Subsystem: "test",
		Name:      "units",
		Help:      "Number of test units in the last run by result.",
	}, []string{"result"})
	passed := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hadesctl",
		Subsystem: "test",
		Name:      "unit_passed",
		Help:      "Whether the unit passed in the last run (1) or failed (0).",
	}, []string{"unit"})
	duration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hadesctl",
		Subsystem: "test",
		Name:      "unit_duration_seconds",
		Help:      "Wall time of the unit in the last run.",
	}, []string{"unit"})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hadesctl",
		Subsystem: "test",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the last run finished.",
	})

	reg.MustRegister(units, passed, duration, lastRun)

	units.WithLabelValues("passed").Set(float64(summary.Passed))
	units.WithLabelValues("failed").Set(float64(summary.Failed))
	for _, res := range summary.Results {
		v := 0.0
		if res.Passed {
			v = 1
		}
		passed.WithLabelValues(res.Name).Set(v)
		duration.WithLabelValues(res.Name).Set(res.Duration.Seconds())
	}
	lastRun.Set(float64(summary.EndTime.Unix()))

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
