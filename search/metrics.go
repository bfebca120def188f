package search

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/beaverkit/beaver/enumerate"
)

// Metrics exposes sweep progress to a Prometheus registry. All updates
// happen on the collector goroutine, once per finished batch.
type Metrics struct {
	scanned       prometheus.Counter
	batches       prometheus.Counter
	pruned        *prometheus.CounterVec
	decided       *prometheus.CounterVec
	championSteps prometheus.Gauge
}

// NewMetrics builds and registers the sweep collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		scanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "beaver_machines_scanned_total",
			Help: "Machines enumerated and inspected",
		}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "beaver_batches_completed_total",
			Help: "Batches fully processed",
		}),
		pruned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beaver_machines_pruned_total",
			Help: "Machines eliminated by static screening",
		}, []string{"reason"}),
		decided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beaver_machines_decided_total",
			Help: "Machines settled by the decider chain",
		}, []string{"outcome"}),
		championSteps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "beaver_champion_steps",
			Help: "Step count of the best halting machine so far",
		}),
	}
	reg.MustRegister(m.scanned, m.batches, m.pruned, m.decided, m.championSteps)
	return m
}

// observe folds one finished batch and the running champion into the
// collectors.
func (m *Metrics) observe(b BatchSummary, champion Champion) {
	if m == nil {
		return
	}
	m.scanned.Add(float64(b.Scanned))
	m.batches.Inc()
	for _, r := range enumerate.Reasons() {
		if n := b.Pruned.Get(r); n > 0 {
			m.pruned.WithLabelValues(r.String()).Add(float64(n))
		}
	}
	m.decided.WithLabelValues("halted").Add(float64(b.Halted))
	m.decided.WithLabelValues("cycler").Add(float64(b.Cyclers))
	m.decided.WithLabelValues("bouncer").Add(float64(b.Bouncers))
	m.decided.WithLabelValues("undecided").Add(float64(b.Undecided))
	m.championSteps.Set(float64(champion.Steps))
}
