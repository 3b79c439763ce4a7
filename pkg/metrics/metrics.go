// Package metrics exposes additive Prometheus instrumentation for a
// container: per-slave step duration, per-slave last status, and a
// cumulative sub-step counter. None of it is required for correctness —
// every method is nil-receiver safe, matching how tests and non-serving
// call sites construct a container without a registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the composite's Prometheus collectors. A nil *Metrics is
// valid and every method on it is a no-op.
type Metrics struct {
	stepSeconds   *prometheus.HistogramVec
	lastStatus    *prometheus.GaugeVec
	substepsTotal prometheus.Counter
}

// New registers the composite's collectors on reg and returns a Metrics
// wired to them. Pass a nil reg to get a no-op Metrics (useful in tests).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	m := &Metrics{
		stepSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cosim_slave_step_seconds",
			Help:    "Wall-clock duration of a single slave DoStep call.",
			Buckets: prometheus.DefBuckets,
		}, []string{"slave"}),
		lastStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cosim_slave_last_status",
			Help: "Last FMI status reported by a slave (0=OK .. 4=Fatal).",
		}, []string{"slave"}),
		substepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cosim_substeps_total",
			Help: "Total number of internal sub-steps executed by the composite.",
		}),
	}
	reg.MustRegister(m.stepSeconds, m.lastStatus, m.substepsTotal)
	return m
}

// ObserveStep records slave identifier's most recent step duration.
func (m *Metrics) ObserveStep(identifier string, seconds float64) {
	if m == nil {
		return
	}
	m.stepSeconds.WithLabelValues(identifier).Observe(seconds)
}

// SetLastStatus records slave identifier's last status as its numeric
// level (0..4, mirroring abi.Status's own ordering).
func (m *Metrics) SetLastStatus(identifier string, level int) {
	if m == nil {
		return
	}
	m.lastStatus.WithLabelValues(identifier).Set(float64(level))
}

// AddSubsteps increments the cumulative sub-step counter by n.
func (m *Metrics) AddSubsteps(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.substepsTotal.Add(float64(n))
}
