package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/canopy"
)

// Metrics holds the collectors fed by Root parse events.
type Metrics struct {
	Parses   *prometheus.CounterVec
	Errors   *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Parses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "canopy_parses_total",
				Help: "Total number of parses, by schema and result",
			},
			[]string{"schema", "result"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "canopy_parse_errors_total",
				Help: "Total number of validation errors reported",
			},
			[]string{"schema"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "canopy_parse_duration_seconds",
				Help:    "Duration of parses",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"schema"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Parses, m.Errors, m.Duration)
	}
	return m
}

// Observe records one parse event.
func (m *Metrics) Observe(e *canopy.ParseEvent) {
	result := "valid"
	if e.Errors > 0 {
		result = "invalid"
	}
	m.Parses.WithLabelValues(e.Schema, result).Inc()
	m.Errors.WithLabelValues(e.Schema).Add(float64(e.Errors))
	m.Duration.WithLabelValues(e.Schema).Observe(e.Duration.Seconds())
}

// Hooks returns lifecycle hooks that record every parse.
func (m *Metrics) Hooks() canopy.Hooks {
	return canopy.Hooks{OnParse: m.Observe}
}
