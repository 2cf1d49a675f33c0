// Package telemetry installs the OpenTelemetry tracer provider used by the
// build pipeline.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// EnvEndpoint enables span export when set.
const EnvEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(ctx context.Context) error

// Options configures [Setup].
type Options struct {
	// Exporter overrides the OTLP exporter. Used by tests.
	Exporter sdktrace.SpanExporter
	// ServiceName and ServiceVersion are attached to every span.
	ServiceName    string
	ServiceVersion string
	// Sync exports each span as it ends instead of batching.
	Sync bool
}

// Enabled reports whether an OTLP endpoint is configured.
func Enabled() bool {
	return os.Getenv(EnvEndpoint) != ""
}

// Setup installs a global tracer provider. Without an exporter in opts and
// without [EnvEndpoint] it does nothing and the global no-op provider stays
// in place.
func Setup(ctx context.Context, opts Options) (ShutdownFunc, error) {
	exporter := opts.Exporter
	if exporter == nil {
		if !Enabled() {
			return func(context.Context) error { return nil }, nil
		}

		// The endpoint, headers and TLS settings are read from the standard
		// OTEL_EXPORTER_OTLP_* variables.
		exp, err := otlptracegrpc.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}

		exporter = exp
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", opts.ServiceName),
			attribute.String("service.version", opts.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	export := sdktrace.WithBatcher(exporter)
	if opts.Sync {
		export = sdktrace.WithSyncer(exporter)
	}

	provider := sdktrace.NewTracerProvider(
		export,
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return provider.Shutdown, nil
}
