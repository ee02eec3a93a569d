package otel

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Settings describes where a command exports its spans and how its run is
// labelled on the trace resource.
type Settings struct {
	ServiceName string
	// Endpoint is the OTLP/HTTP collector URL. Empty keeps tracing off.
	Endpoint string
	Disabled bool
	// Attributes are added to the resource next to the service name, so
	// every span of the run carries them.
	Attributes []attribute.KeyValue
}

// Enabled reports whether Setup would install an exporting provider.
func (s Settings) Enabled() bool {
	return !s.Disabled && strings.TrimSpace(s.Endpoint) != ""
}

// ResourceAttributes returns the attributes Setup places on the trace
// resource: the service name first, then the run attributes in order.
func (s Settings) ResourceAttributes() []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(s.Attributes)+1)
	attrs = append(attrs, semconv.ServiceName(s.ServiceName))
	return append(attrs, s.Attributes...)
}

// Setup installs a batching OTLP tracer provider described by s and returns
// its shutdown function. When tracing is not enabled the global provider is
// left alone and the returned shutdown is a no-op.
func Setup(ctx context.Context, s Settings) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if !s.Enabled() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(strings.TrimSpace(s.Endpoint)),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(s.ResourceAttributes()...))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
