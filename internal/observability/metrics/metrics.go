package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	draftEdits   metric.Int64Counter
	historySaves metric.Int64Counter
	templateOps  metric.Int64Counter
	defaultsOps  metric.Int64Counter
	loadFailures metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "fatura"
	}
	meter := provider.Meter(name)

	draftEdits, err := meter.Int64Counter("fatura_draft_edits_total")
	if err != nil {
		return nil, err
	}
	historySaves, err := meter.Int64Counter("fatura_history_saves_total")
	if err != nil {
		return nil, err
	}
	templateOps, err := meter.Int64Counter("fatura_template_operations_total")
	if err != nil {
		return nil, err
	}
	defaultsOps, err := meter.Int64Counter("fatura_defaults_operations_total")
	if err != nil {
		return nil, err
	}
	loadFailures, err := meter.Int64Counter("fatura_load_failures_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		draftEdits:   draftEdits,
		historySaves: historySaves,
		templateOps:  templateOps,
		defaultsOps:  defaultsOps,
		loadFailures: loadFailures,
	}, nil
}

// RecordDraftEdit counts a mutation applied to the working draft.
func (m *Metrics) RecordDraftEdit(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("operation", strings.TrimSpace(operation)))
	m.draftEdits.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordHistorySave counts history saves, split by whether an entry was replaced.
func (m *Metrics) RecordHistorySave(ctx context.Context, replaced bool) {
	if m == nil {
		return
	}
	outcome := "appended"
	if replaced {
		outcome = "replaced"
	}
	attrs := FilterAttributes(attribute.String("outcome", outcome))
	m.historySaves.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordTemplateOp counts template saves, applies and deletes.
func (m *Metrics) RecordTemplateOp(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("operation", strings.TrimSpace(operation)))
	m.templateOps.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordDefaultsOp counts defaults saves and loads.
func (m *Metrics) RecordDefaultsOp(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("operation", strings.TrimSpace(operation)))
	m.defaultsOps.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordLoadFailure counts persisted records that could not be read.
func (m *Metrics) RecordLoadFailure(ctx context.Context, source string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("source", strings.TrimSpace(source)))
	m.loadFailures.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"operation":   {},
	"outcome":     {},
	"source":      {},
	"endpoint":    {},
	"status_code": {},
	"reason":      {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
