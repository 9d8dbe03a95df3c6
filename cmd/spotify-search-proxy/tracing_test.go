package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func TestNewTracerProvider(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	env := &Env{
		ServiceName:           "search-proxy-test",
		DeploymentEnvironment: "staging",
		TraceSampleRatio:      1,
	}

	tp, err := newTracerProvider(context.Background(), env, exporter)
	require.NoError(t, err)
	t.Cleanup(func() { tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "SpotifySearchService.Search")
	span.End()
	require.NoError(t, tp.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	attrs := spans[0].Resource.Attributes()
	assert.Contains(t, attrs, semconv.ServiceName("search-proxy-test"))
	assert.Contains(t, attrs, semconv.DeploymentEnvironment("staging"))
}

func TestNewTracerProvider_NeverSample(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()

	tp, err := newTracerProvider(context.Background(), &Env{ServiceName: "x", TraceSampleRatio: 0}, exporter)
	require.NoError(t, err)
	t.Cleanup(func() { tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "ignored")
	span.End()
	require.NoError(t, tp.ForceFlush(context.Background()))

	assert.Empty(t, exporter.GetSpans())
}

func TestNewSampler(t *testing.T) {
	assert.Equal(t, trace.ParentBased(trace.AlwaysSample()).Description(), newSampler(1.5).Description())
	assert.Equal(t, trace.ParentBased(trace.NeverSample()).Description(), newSampler(-1).Description())
	assert.Equal(t, trace.ParentBased(trace.TraceIDRatioBased(0.25)).Description(), newSampler(0.25).Description())
}
