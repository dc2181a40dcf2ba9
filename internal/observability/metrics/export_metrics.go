package metrics

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ExportFormatPDF   = "pdf"
	ExportFormatPrint = "print"
)

const (
	ExportOutcomeSucceeded = "succeeded"
	ExportOutcomeFailed    = "failed"
)

const (
	ExportReasonRender   = "render"
	ExportReasonFS       = "filesystem"
	ExportReasonCanceled = "canceled"
	ExportReasonUnknown  = "unknown"
)

// ExportErrorRender marks failures raised while producing the document bytes.
var ExportErrorRender = errors.New("export_render_failed")

// ExportMetrics tracks export jobs handed to the document generator.
type ExportMetrics struct {
	jobs     *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

var (
	exportMetricsOnce sync.Once
	exportMetrics     *ExportMetrics
)

// Export returns the singleton export metrics registered on the default registerer.
func Export() *ExportMetrics {
	return ExportWithConfig(Config{})
}

// ExportWithConfig returns the singleton export metrics using config labels.
func ExportWithConfig(cfg Config) *ExportMetrics {
	exportMetricsOnce.Do(func() {
		exportMetrics = newExportMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return exportMetrics
}

func newExportMetrics(registerer prometheus.Registerer, cfg Config) *ExportMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "fatura"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	jobs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "fatura_export_jobs_total",
		Help:        "Export jobs by format and outcome.",
		ConstLabels: constLabels,
	}, []string{"format", "outcome"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "fatura_export_failures_total",
		Help:        "Export failures by low-cardinality reason.",
		ConstLabels: constLabels,
	}, []string{"format", "reason"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "fatura_export_duration_seconds",
		Help:        "Time from export start until the document is written.",
		Buckets:     []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		ConstLabels: constLabels,
	}, []string{"format"})
	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "fatura_export_in_flight",
		Help:        "Export jobs started but not yet finished.",
		ConstLabels: constLabels,
	})

	registerer.MustRegister(jobs, failures, duration, inFlight)

	return &ExportMetrics{
		jobs:     jobs,
		failures: failures,
		duration: duration,
		inFlight: inFlight,
	}
}

// Started marks a job as in flight.
func (m *ExportMetrics) Started() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

// Finished records the outcome of a job started with Started.
func (m *ExportMetrics) Finished(format string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.inFlight.Dec()
	m.duration.WithLabelValues(format).Observe(elapsed.Seconds())
	if err != nil {
		m.jobs.WithLabelValues(format, ExportOutcomeFailed).Inc()
		m.failures.WithLabelValues(format, ClassifyExportReason(err)).Inc()
		return
	}
	m.jobs.WithLabelValues(format, ExportOutcomeSucceeded).Inc()
}

// ClassifyExportReason maps an export error to a metric label.
func ClassifyExportReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExportReasonCanceled
	case errors.Is(err, ExportErrorRender):
		return ExportReasonRender
	case errors.Is(err, fs.ErrPermission), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrExist):
		return ExportReasonFS
	default:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return ExportReasonFS
		}
		return ExportReasonUnknown
	}
}
