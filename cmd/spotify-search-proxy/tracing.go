package main

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func newSpanExporter(ctx context.Context, env *Env) (trace.SpanExporter, error) {
	return otlptracehttp.New(ctx,
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpoint(env.OTLPEndpoint),
	)
}

// newSampler samples every root span at ratio 1 and none at ratio 0.
// Child spans follow their parent.
func newSampler(ratio float64) trace.Sampler {
	switch {
	case ratio >= 1:
		return trace.ParentBased(trace.AlwaysSample())
	case ratio <= 0:
		return trace.ParentBased(trace.NeverSample())
	default:
		return trace.ParentBased(trace.TraceIDRatioBased(ratio))
	}
}

func newTracerProvider(ctx context.Context, env *Env, spanExporter trace.SpanExporter) (*trace.TracerProvider, error) {
	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceName(env.ServiceName),
			semconv.DeploymentEnvironment(env.DeploymentEnvironment),
		),
	)
	// Detectors that fail still leave a usable resource.
	if err != nil && !errors.Is(err, resource.ErrPartialResource) {
		return nil, err
	}

	return trace.NewTracerProvider(
		trace.WithBatcher(spanExporter),
		trace.WithResource(res),
		trace.WithSampler(newSampler(env.TraceSampleRatio)),
	), nil
}
