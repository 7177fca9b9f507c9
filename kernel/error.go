package kernel

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
)

func (rt *RequestRuntime) MakeError(err error) error {
	s := rt.Span
	s.RecordError(err)
	s.SetStatus(codes.Error, err.Error())
	rt.Error = err
	rt.StepBack()

	return err
}

func (rt *RequestRuntime) MakeErrorf(format string, args ...interface{}) error {
	return rt.MakeError(fmt.Errorf(format, args...))
}

// E aborts the request with a JSON error body. Every failure a
// handler can hit goes through here; nothing propagates past gin.
func (rt *RequestRuntime) E(code int, err error) *RequestRuntime {
	rt.RequestContext.AbortWithStatusJSON(code, &gin.H{
		"message": rt.MakeError(err).Error(),
		"traceId": rt.Span.SpanContext().TraceID().String(),
	})
	return rt
}

func (rt *RequestRuntime) Ef(code int, format string, args ...interface{}) *RequestRuntime {
	return rt.E(code, fmt.Errorf(format, args...))
}
