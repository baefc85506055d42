package bench

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors updated by a Harness.
type Metrics struct {
	Runs         prometheus.Counter
	Records      *prometheus.CounterVec
	Failures     *prometheus.CounterVec
	SolveSeconds *prometheus.HistogramVec
	ErrorPercent *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
// It panics on duplicate registration, like prometheus.MustRegister.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tspbench_runs_total",
			Help: "Harness runs started.",
		}),
		Records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tspbench_records_total",
			Help: "Result records produced.",
		}, []string{"algorithm"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tspbench_failures_total",
			Help: "Records without a tour.",
		}, []string{"algorithm"}),
		SolveSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tspbench_solve_seconds",
			Help:    "Solver wall-clock time.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"algorithm"}),
		ErrorPercent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tspbench_error_percent",
			Help: "Percentage above the reference tour of the latest run.",
		}, []string{"algorithm", "instance"}),
	}
	reg.MustRegister(m.Runs, m.Records, m.Failures, m.SolveSeconds, m.ErrorPercent)

	return m
}

func (m *Metrics) observe(r ResultRecord) {
	if m == nil {
		return
	}
	algo := r.Algorithm.String()
	m.Records.WithLabelValues(algo).Inc()
	if r.Failed() {
		m.Failures.WithLabelValues(algo).Inc()
		return
	}
	m.SolveSeconds.WithLabelValues(algo).Observe(r.Elapsed.Seconds())
	if r.ErrorPct != nil {
		m.ErrorPercent.With(prometheus.Labels{"algorithm": algo, "instance": r.Instance}).Set(*r.ErrorPct)
	}
}
