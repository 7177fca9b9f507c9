package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"git.sr.ht/~jkovac/booking-api/kernel"
)

type responseWriter struct {
	gin.ResponseWriter
	ctx  context.Context
	span trace.Span
	body []byte
}

// TracerMiddleware opens the request span, captures the body for the
// span attributes and parks the RequestRuntime in the gin context
// under "rt". A body that trips the MaxBytesReader installed by
// LimitMiddleware is answered with 413 right here.
func TracerMiddleware(art *kernel.AppRuntime) gin.HandlerFunc {
	return func(c *gin.Context) {
		rt := kernel.InitRequest(art, c)

		rt.Span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.url", c.Request.URL.String()),
			attribute.String("http.host", c.Request.Host),
		)

		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			bodyBytes, err = c.GetRawData()
			if err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					rt.Ef(http.StatusRequestEntityTooLarge, "Payload too large. Please upload a smaller file.")
					rt.Finish()
					return
				}
				rt.Ef(http.StatusBadRequest, "could not read body: %v", err)
				rt.Finish()
				return
			}
			rt.Span.SetAttributes(attribute.String("http.request_body", string(bodyBytes)))
			c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		if counter := art.Diagnostic.RequestCounter; counter != nil {
			counter.Add(rt.SpanContext, 1,
				metric.WithAttributes(attribute.String("http.method", c.Request.Method)),
			)
		}

		c.Writer = &responseWriter{
			ResponseWriter: c.Writer,
			ctx:            rt.SpanContext,
			span:           rt.Span,
		}

		c.Set("rt", rt)
		c.Next()
		rt.Finish()
	}
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body = b

	w.span.SetAttributes(attribute.String("http.response_body", string(b)))

	return w.ResponseWriter.Write(b)
}
