package kernel

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type spanCtxPair struct {
	span trace.Span
	ctx  context.Context
}

// RequestRuntime carries everything a handler needs for one request:
// the database handle, the gin context and a stack of open spans.
// Span is always the top of the stack.
type RequestRuntime struct {
	AppRuntime *AppRuntime
	DB         *gorm.DB

	RequestContext *gin.Context
	Span           trace.Span
	SpanContext    context.Context

	Error error

	pairs []*spanCtxPair
}

func InitRequest(art *AppRuntime, rctx *gin.Context) *RequestRuntime {
	ctx := rctx.Request.Context()
	span, ctx := art.Diagnostic.BeginTracing(ctx, rctx.FullPath())

	rt := &RequestRuntime{
		AppRuntime: art,
		DB:         art.DatabaseClient,

		RequestContext: rctx,
		Span:           span,
		SpanContext:    ctx,
	}
	rt.pairs = append(rt.pairs, &spanCtxPair{span: span, ctx: ctx})

	return rt
}

// StepInto opens a child span and makes it the current one.
func (rt *RequestRuntime) StepInto(spanName string) *RequestRuntime {
	ctx, span := rt.AppRuntime.Diagnostic.Tracer.Start(rt.SpanContext, spanName)
	rt.pairs = append(rt.pairs, &spanCtxPair{span: span, ctx: ctx})
	rt.Span = span
	rt.SpanContext = ctx
	return rt
}

// StepBack ends the current span and restores its parent. The root
// span stays open until Finish.
func (rt *RequestRuntime) StepBack() {
	if len(rt.pairs) <= 1 {
		return
	}
	if rt.Span.IsRecording() {
		rt.Span.End()
	}
	rt.pairs = rt.pairs[:len(rt.pairs)-1]
	top := rt.pairs[len(rt.pairs)-1]
	rt.Span = top.span
	rt.SpanContext = top.ctx
}

// Finish ends every span still open, root included. Called by the
// tracer middleware once the handler chain returns.
func (rt *RequestRuntime) Finish() {
	for i := len(rt.pairs) - 1; i >= 0; i-- {
		if rt.pairs[i].span.IsRecording() {
			rt.pairs[i].span.End()
		}
	}
	rt.pairs = rt.pairs[:1]
	rt.Span = rt.pairs[0].span
	rt.SpanContext = rt.pairs[0].ctx
}
