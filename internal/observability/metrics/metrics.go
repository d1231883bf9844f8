package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "banque_"

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	importRows   *prometheus.CounterVec
	exportsTotal *prometheus.CounterVec
	emailsTotal  *prometheus.CounterVec
	notesTotal   prometheus.Counter

	inventoryTotals *prometheus.GaugeVec
)

// Init registers the service metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method and status",
			},
			[]string{"method", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		)
		importRows = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "import_rows_total",
				Help: "Import preview rows by validation status",
			},
			[]string{"status"},
		)
		exportsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Export downloads by kind and result",
			},
			[]string{"kind", "result"},
		)
		emailsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "emails_total",
				Help: "Device-ready emails by result",
			},
			[]string{"result"},
		)
		notesTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "delivery_notes_total",
				Help: "Delivery notes generated",
			},
		)
		inventoryTotals = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "inventory_devices",
				Help: "Devices currently in the store by type",
			},
			[]string{"type"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			importRows,
			exportsTotal,
			emailsTotal,
			notesTotal,
			inventoryTotals,
		)
	})
}

// ObserveRequest records one handled HTTP request.
func ObserveRequest(method string, status int, duration time.Duration) {
	if httpRequests == nil {
		return
	}
	httpRequests.WithLabelValues(method, statusClass(status)).Inc()
	httpLatency.WithLabelValues(method).Observe(duration.Seconds())
}

// CountImportRow records one classified import row.
func CountImportRow(status string) {
	if importRows != nil {
		importRows.WithLabelValues(status).Inc()
	}
}

// CountExport records one export download.
func CountExport(kind, result string) {
	if exportsTotal != nil {
		exportsTotal.WithLabelValues(kind, result).Inc()
	}
}

// CountEmail records one mail dispatch attempt.
func CountEmail(result string) {
	if emailsTotal != nil {
		emailsTotal.WithLabelValues(result).Inc()
	}
}

// CountDeliveryNote records one generated delivery note.
func CountDeliveryNote() {
	if notesTotal != nil {
		notesTotal.Inc()
	}
}

// SetInventoryTotals publishes the current device counts.
func SetInventoryTotals(pcs, smartphones int) {
	if inventoryTotals != nil {
		inventoryTotals.WithLabelValues("PC").Set(float64(pcs))
		inventoryTotals.WithLabelValues("Smartphone").Set(float64(smartphones))
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
