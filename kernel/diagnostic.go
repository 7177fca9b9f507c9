package kernel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type AppDiagnostic struct {
	Tracer trace.Tracer
	Meter  metric.Meter

	RequestCounter metric.Int64Counter
	ErrorCounter   metric.Int64Counter
}

func NewDiagnostic(serviceName string) *AppDiagnostic {
	return &AppDiagnostic{
		Tracer: otel.Tracer(serviceName + "-tracer"),
		Meter:  otel.Meter(serviceName + "-meter"),
	}
}

func (diag *AppDiagnostic) BeginTracing(ctx context.Context, spanName string) (trace.Span, context.Context) {
	ctx, span := diag.Tracer.Start(ctx, spanName)
	return span, ctx
}
