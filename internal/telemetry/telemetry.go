// Package telemetry configures the global OpenTelemetry tracer provider,
// which the gRPC server's otelgrpc stats handler (internal/node/server)
// uses to record inbound peer RPCs; no other spans are created and
// outbound calls are not instrumented. Grounded on the teacher's
// telemetry.InitTracer(cfg.Telemetry, serviceName, id) call in
// cmd/node/main.go. The teacher's package wasn't present in the retrieval
// pack; this reconstructs it from that call-site using the otel SDK
// already pulled in by go.mod (sdk, otlptracegrpc, stdouttrace).
package telemetry

import (
	"context"
	"fmt"

	"chorddht/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ShutdownFunc flushes and tears down the tracer provider.
type ShutdownFunc func(context.Context) error

// InitTracer configures the global tracer provider. When tracing is
// disabled it installs a no-op shutdown and leaves the default (no-op)
// global provider in place, so span creation elsewhere in the node is
// always safe to call unconditionally.
func InitTracer(cfg config.Telemetry, nodeID string) ShutdownFunc {
	if !cfg.TracingEnabled {
		return func(context.Context) error { return nil }
	}

	exporter, err := newExporter(cfg)
	if err != nil {
		return func(context.Context) error { return err }
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.instance.id", nodeID),
		),
	)
	if err != nil {
		res = resource.Default()
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return tp.Shutdown
}

func newExporter(cfg config.Telemetry) (sdktrace.SpanExporter, error) {
	if cfg.OTLPEndpoint == "" {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: otlp exporter: %w", err)
	}
	return exp, nil
}
