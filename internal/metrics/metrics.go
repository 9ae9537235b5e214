// Package metrics provides Prometheus metrics for note storage.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chroninotes/internal/domain"
)

// Metrics holds the collectors of one registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	scanDuration      prometheus.Histogram
	scanSkippedTotal  prometheus.Counter
	treeSize          *prometheus.GaugeVec
}

// New registers the storage collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chroninotes_operations_total",
				Help: "Total number of storage operations",
			},
			[]string{"operation", "result"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chroninotes_operation_duration_seconds",
				Help:    "Storage operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		scanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chroninotes_scan_duration_seconds",
				Help:    "Time to walk the notes root",
				Buckets: prometheus.DefBuckets,
			},
		),
		scanSkippedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chroninotes_scan_skipped_total",
				Help: "Notes left out of a listing because they could not be read",
			},
		),
		treeSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chroninotes_tree_size",
				Help: "Number of entries seen by the last scan",
			},
			[]string{"kind"},
		),
	}
}

// ObserveOperation records one storage operation and its outcome
func (m *Metrics) ObserveOperation(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(op, Result(err)).Inc()
	m.operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// ObserveScan records the outcome of a tree scan
func (m *Metrics) ObserveScan(stats *domain.ScanStats) {
	if m == nil || stats == nil {
		return
	}
	m.scanDuration.Observe(stats.Duration.Seconds())
	m.scanSkippedTotal.Add(float64(stats.Skipped))
	m.treeSize.WithLabelValues("folder").Set(float64(stats.Folders))
	m.treeSize.WithLabelValues("note").Set(float64(stats.Notes))
}

// Result maps an error to the result label
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidPath):
		return "invalid_path"
	case errors.Is(err, domain.ErrCorruptMetadata):
		return "corrupt"
	case errors.Is(err, domain.ErrAllocationExhausted):
		return "exhausted"
	default:
		return "error"
	}
}

// Handler returns the HTTP handler that exposes the registry
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
