package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PlacementMetrics records order placement outcomes.
type PlacementMetrics struct {
	duration *prometheus.HistogramVec
	placed   prometheus.Counter
	failed   *prometheus.CounterVec
}

// NewPlacementMetrics registers the placement metrics on the provided registerer.
func NewPlacementMetrics(reg prometheus.Registerer) *PlacementMetrics {
	if reg == nil {
		return &PlacementMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_placement_duration_seconds",
		Help:    "Duration of order placement attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	placed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders successfully committed.",
	})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_placement_failures_total",
		Help: "Failed placement attempts by error code.",
	}, []string{"code"})
	reg.MustRegister(duration, placed, failed)
	return &PlacementMetrics{
		duration: duration,
		placed:   placed,
		failed:   failed,
	}
}

// ObserveDuration records the duration for the given outcome.
func (p *PlacementMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncPlaced increments the successful placement counter.
func (p *PlacementMetrics) IncPlaced() {
	if p == nil || p.placed == nil {
		return
	}
	p.placed.Inc()
}

// IncFailed increments the failure counter for the given error code.
func (p *PlacementMetrics) IncFailed(code string) {
	if p == nil || p.failed == nil {
		return
	}
	p.failed.WithLabelValues(normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
