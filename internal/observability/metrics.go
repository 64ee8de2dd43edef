package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type moduleMetrics struct {
	activeSessions        prometheus.Gauge
	messagesAppendedTotal *prometheus.CounterVec
	sessionExportTotal    *prometheus.CounterVec
	sessionImportTotal    *prometheus.CounterVec

	providerRunTotal    *prometheus.CounterVec
	providerRunDuration *prometheus.HistogramVec
}

var (
	metricsOnce sync.Once
	metricsInst *moduleMetrics
)

func getMetrics() *moduleMetrics {
	metricsOnce.Do(func() {
		m := &moduleMetrics{
			activeSessions: prometheus.NewGauge(
				prometheus.GaugeOpts{
					Name: "active_sessions",
					Help: "Current active session count.",
				},
			),
			messagesAppendedTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "messages_appended_total",
					Help: "Total messages appended by role.",
				},
				[]string{"role"},
			),
			sessionExportTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "session_export_total",
					Help: "Total session exports by format and status.",
				},
				[]string{"format", "status"},
			),
			sessionImportTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "session_import_total",
					Help: "Total session imports by format and status.",
				},
				[]string{"format", "status"},
			),
			providerRunTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "provider_run_total",
					Help: "Total model provider calls by provider and status.",
				},
				[]string{"provider", "status"},
			),
			providerRunDuration: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "provider_run_duration_seconds",
					Help:    "Model provider call duration in seconds by provider.",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"provider"},
			),
		}

		prometheus.MustRegister(
			m.activeSessions,
			m.messagesAppendedTotal,
			m.sessionExportTotal,
			m.sessionImportTotal,
			m.providerRunTotal,
			m.providerRunDuration,
		)

		metricsInst = m
	})

	return metricsInst
}

// EnsureRegistered initializes and registers metrics the first time it is called.
func EnsureRegistered() {
	_ = getMetrics()
}

// MetricsHandler returns the HTTP handler serving the Prometheus exposition.
func MetricsHandler() http.Handler {
	EnsureRegistered()
	return promhttp.Handler()
}

// SetActiveSessions sets the active session gauge.
func SetActiveSessions(count int) {
	getMetrics().activeSessions.Set(float64(count))
}

// RecordMessageAppend counts one appended message by role.
func RecordMessageAppend(role string) {
	getMetrics().messagesAppendedTotal.WithLabelValues(role).Inc()
}

// RecordExport counts one session export by format and outcome.
func RecordExport(format string, success bool) {
	getMetrics().sessionExportTotal.WithLabelValues(format, statusLabel(success)).Inc()
}

// RecordImport counts one session import by format and outcome.
func RecordImport(format string, success bool) {
	getMetrics().sessionImportTotal.WithLabelValues(format, statusLabel(success)).Inc()
}

// RecordProviderRun tracks one model provider call.
func RecordProviderRun(provider string, duration time.Duration, success bool) {
	m := getMetrics()
	m.providerRunTotal.WithLabelValues(provider, statusLabel(success)).Inc()
	m.providerRunDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
