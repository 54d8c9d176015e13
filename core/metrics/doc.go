// Package metrics exposes Prometheus instrumentation for the reconciliation
// engine: issued statements, affected rows, save cycles and loaded entities.
//
// Every Collector owns its registry so several engines (and tests) can
// coexist in one process. All methods are safe on a nil *Collector.
package metrics
