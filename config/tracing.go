package config

import (
	"context"
	"fmt"

	"github.com/Govind-619/BooksWishlist/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ShutdownFunc flushes and stops the tracer provider
type ShutdownFunc func(context.Context) error

// NewTracerProvider batches spans into exporter and tags them with the
// service name
func NewTracerProvider(config *Config, exporter sdktrace.SpanExporter) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(
		attribute.String("service.name", utils.AppName),
		attribute.String("deployment.environment", config.Env),
	)
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
}

// InitTracing installs the global tracer provider when traces are enabled.
// With traces off the global no-op provider stays in place.
func InitTracing(ctx context.Context, config *Config) (ShutdownFunc, error) {
	if !config.Traces {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	provider := NewTracerProvider(config, exporter)
	otel.SetTracerProvider(provider)
	utils.LogInfo("Tracing enabled, exporting spans over OTLP/HTTP")

	return provider.Shutdown, nil
}
