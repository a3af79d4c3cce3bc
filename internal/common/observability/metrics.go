package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	runCounter      otelmetric.Int64Counter
	platformCounter otelmetric.Int64Counter
	requestDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	runCounter, _ := meter.Int64Counter(
		"discovery.runs",
		otelmetric.WithDescription("Number of discovery runs started"),
	)

	platformCounter, _ := meter.Int64Counter(
		"discovery.platform.results",
		otelmetric.WithDescription("Per-platform discovery outcomes by status"),
	)

	requestDuration, _ := meter.Float64Histogram(
		"discovery.request.duration",
		otelmetric.WithDescription("Strategy request duration per platform"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:   provider,
		meter:           meter,
		runCounter:      runCounter,
		platformCounter: platformCounter,
		requestDuration: requestDuration,
	}
}

func (o *Observability) RecordRun(ctx context.Context) {
	if o == nil || o.runCounter == nil {
		return
	}
	o.runCounter.Add(ctx, 1)
}

func (o *Observability) RecordPlatformResult(ctx context.Context, platform, status string) {
	if o == nil || o.platformCounter == nil {
		return
	}
	o.platformCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("platform", platform),
		attribute.String("status", status),
	))
}

func (o *Observability) RecordRequestDuration(ctx context.Context, platform string, duration time.Duration) {
	if o == nil || o.requestDuration == nil {
		return
	}
	o.requestDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("platform", platform),
	))
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	o.meterProvider.Shutdown(ctx)
}
