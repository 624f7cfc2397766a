package api

import (
	"time"

	"queuecalc/internal/queueing"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	solves   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "queuecalc_solve_total",
			Help: "Solve requests by model and outcome (ok or the error kind).",
		}, []string{"model", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "queuecalc_solve_duration_seconds",
			Help:    "Time spent solving a single request.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"model"}),
	}
	reg.MustRegister(m.solves, m.duration)
	return m
}

// observe records one solve. Unknown model tags are folded into "unknown" to
// keep label cardinality bounded.
func (m *metrics) observe(model queueing.Model, err error, elapsed time.Duration) {
	label := "unknown"
	if parsed, perr := queueing.ParseModel(string(model)); perr == nil {
		label = string(parsed)
	}
	outcome := "ok"
	if err != nil {
		outcome = string(queueing.KindOf(err))
	}
	m.solves.WithLabelValues(label, outcome).Inc()
	m.duration.WithLabelValues(label).Observe(elapsed.Seconds())
}
