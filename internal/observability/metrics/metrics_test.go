package metrics

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("operation", "save"),
		attribute.String("invoice_number", "42"),
		attribute.String("outcome", "replaced"),
	)
	require.Len(t, attrs, 2)
	assert.Equal(t, attribute.Key("operation"), attrs[0].Key)
	assert.Equal(t, attribute.Key("outcome"), attrs[1].Key)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordDraftEdit(ctx, "set_field")
	m.RecordHistorySave(ctx, true)
	m.RecordTemplateOp(ctx, "apply")
	m.RecordDefaultsOp(ctx, "save")
	m.RecordLoadFailure(ctx, "templates")

	var e *ExportMetrics
	e.Started()
	e.Finished(ExportFormatPDF, time.Second, nil)
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{}, noop.NewMeterProvider())
	require.NoError(t, err)
	m.RecordHistorySave(context.Background(), false)
}

func TestClassifyExportReason(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "canceled", err: context.Canceled, want: ExportReasonCanceled},
		{name: "render", err: fmt.Errorf("generate: %w", ExportErrorRender), want: ExportReasonRender},
		{name: "permission", err: &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}, want: ExportReasonFS},
		{name: "path", err: &fs.PathError{Op: "rename", Path: "/x", Err: errors.New("busy")}, want: ExportReasonFS},
		{name: "unknown", err: errors.New("boom"), want: ExportReasonUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyExportReason(tc.err))
		})
	}
}

func TestExportFinished(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newExportMetrics(registry, Config{ServiceName: "fatura", Environment: "test"})

	m.Started()
	m.Started()
	m.Finished(ExportFormatPDF, 20*time.Millisecond, nil)
	m.Finished(ExportFormatPDF, 5*time.Millisecond, fmt.Errorf("maroto: %w", ExportErrorRender))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobs.WithLabelValues(ExportFormatPDF, ExportOutcomeSucceeded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobs.WithLabelValues(ExportFormatPDF, ExportOutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues(ExportFormatPDF, ExportReasonRender)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}
