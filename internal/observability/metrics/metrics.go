package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "meterbill_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	readingsParsed prometheus.Counter
	rowsDropped    *prometheus.CounterVec

	billComputeTotal   *prometheus.CounterVec
	billComputeLatency *prometheus.HistogramVec

	statementExportTotal   *prometheus.CounterVec
	statementExportLatency *prometheus.HistogramVec
)

// Init registers the billing metrics once.
func Init() {
	registerOnce.Do(func() {
		readingsParsed = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "readings_parsed_total",
				Help: "Total meter readings accepted by the parser",
			},
		)
		rowsDropped = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "rows_dropped_total",
				Help: "Total input rows dropped by reason",
			},
			[]string{"reason"},
		)

		billComputeTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "bill_compute_total",
				Help: "Total bill computations by plan and result",
			},
			[]string{"plan", "result"},
		)
		billComputeLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "bill_compute_latency_seconds",
				Help:    "Bill computation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"plan"},
		)

		statementExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_export_total",
				Help: "Total statement exports by format and result",
			},
			[]string{"format", "result"},
		)
		statementExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "statement_export_latency_seconds",
				Help:    "Statement export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			readingsParsed,
			rowsDropped,
			billComputeTotal,
			billComputeLatency,
			statementExportTotal,
			statementExportLatency,
		)
	})
}

// AddReadingsParsed adds accepted reading count.
func AddReadingsParsed(count int) {
	if count <= 0 {
		return
	}
	if readingsParsed != nil {
		readingsParsed.Add(float64(count))
	}
}

// AddRowsDropped adds dropped row count for a reason.
func AddRowsDropped(reason string, count int) {
	if count <= 0 {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	if rowsDropped != nil {
		rowsDropped.WithLabelValues(reason).Add(float64(count))
	}
}

// ObserveBillCompute records bill computation latency and result.
func ObserveBillCompute(plan, result string, duration time.Duration) {
	if plan == "" {
		plan = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if billComputeTotal != nil {
		billComputeTotal.WithLabelValues(plan, result).Inc()
	}
	if billComputeLatency != nil {
		billComputeLatency.WithLabelValues(plan).Observe(duration.Seconds())
	}
}

// ObserveStatementExport records export latency and result.
func ObserveStatementExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if statementExportTotal != nil {
		statementExportTotal.WithLabelValues(format, result).Inc()
	}
	if statementExportLatency != nil {
		statementExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
