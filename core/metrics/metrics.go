package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics of the engine.
type Collector struct {
	registry *prometheus.Registry

	Statements    *prometheus.CounterVec
	RowsAffected  *prometheus.CounterVec
	Cycles        *prometheus.CounterVec
	CycleDuration prometheus.Histogram
	Loaded        *prometheus.GaugeVec
}

// New creates a collector whose metrics live under namespace.
func New(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	statements := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "statements_total",
			Help:      "Total number of reconciliation statements issued",
		},
		[]string{"operation", "table", "status"},
	)

	rows := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_affected_total",
			Help:      "Total number of rows reported affected by the store",
		},
		[]string{"operation", "table"},
	)

	cycles := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "save_cycles_total",
			Help:      "Total number of save cycles by outcome",
		},
		[]string{"outcome"},
	)

	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "save_cycle_duration_seconds",
			Help:      "Save cycle duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	loaded := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loaded_entities",
			Help:      "Entities held by each set after the last load or commit",
		},
		[]string{"table"},
	)

	registry.MustRegister(statements, rows, cycles, duration, loaded)

	return &Collector{
		registry:      registry,
		Statements:    statements,
		RowsAffected:  rows,
		Cycles:        cycles,
		CycleDuration: duration,
		Loaded:        loaded,
	}
}

// ObserveStatement records one statement and the rows it touched.
func (c *Collector) ObserveStatement(op, table string, affected int64, err error) {
	if c == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.Statements.WithLabelValues(op, table, status).Inc()
	if affected > 0 {
		c.RowsAffected.WithLabelValues(op, table).Add(float64(affected))
	}
}

// ObserveCycle records the outcome and duration of one save cycle.
func (c *Collector) ObserveCycle(outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.Cycles.WithLabelValues(outcome).Inc()
	c.CycleDuration.Observe(d.Seconds())
}

// SetLoaded records how many entities a set holds.
func (c *Collector) SetLoaded(table string, n int) {
	if c == nil {
		return
	}
	c.Loaded.WithLabelValues(table).Set(float64(n))
}

// Registry returns the Prometheus registry of this collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
