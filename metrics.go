package morphic

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors a World updates every cycle.
type Metrics struct {
	Cycles           prometheus.Counter
	CycleDuration    prometheus.Histogram
	DamageRects      *prometheus.HistogramVec // stage: raw, condensed
	ActiveAnimations prometheus.Gauge
	WidgetFailures   *prometheus.CounterVec // phase: step, render, animation
	Drops            prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "morphic_cycles_total",
			Help: "Total number of completed world cycles",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "morphic_cycle_duration_seconds",
			Help:    "Duration of one world cycle",
			Buckets: []float64{.0005, .001, .002, .004, .008, .016, .033, .066, .1},
		}),
		DamageRects: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "morphic_damage_rects",
			Help:    "Damage rectangles per cycle before and after condensing",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 64, 256, 1024},
		}, []string{"stage"}),
		ActiveAnimations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "morphic_active_animations",
			Help: "Animations still running after the last cycle",
		}),
		WidgetFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "morphic_widget_failures_total",
			Help: "Recovered widget panics",
		}, []string{"phase"}),
		Drops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "morphic_drops_total",
			Help: "Morphs dropped by the hand",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Cycles, m.CycleDuration, m.DamageRects,
			m.ActiveAnimations, m.WidgetFailures, m.Drops)
	}
	return m
}
