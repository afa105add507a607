package config

import (
	"context"
	"testing"

	"github.com/Govind-619/BooksWishlist/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewTracerProviderExportsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := NewTracerProvider(&Config{Env: "test"}, exporter)

	_, span := provider.Tracer("test").Start(context.Background(), "repository.get_user")
	span.End()
	require.NoError(t, provider.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "repository.get_user", spans[0].Name)

	attrs := spans[0].Resource.Attributes()
	assert.Contains(t, attrs, attribute.String("service.name", utils.AppName))
	assert.Contains(t, attrs, attribute.String("deployment.environment", "test"))

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), &Config{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestLoadConfigTraces(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv("OTEL_TRACES", "true")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.Traces)

	t.Setenv("OTEL_TRACES", "sometimes")
	_, err = LoadConfig("")
	assert.ErrorContains(t, err, "OTEL_TRACES")
}
