package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with an id, honouring one supplied by an
// upstream proxy so log lines can be joined across services.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx.Set(CtxRequestID, id)
		ctx.Writer.Header().Set(requestIDHeader, id)

		ctx.Next()
	}
}

// RequestLogger emits one structured line per request once the handler
// chain has finished.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			// unmatched paths never resolve to a route template
			route = ctx.Request.URL.Path
		}

		attrs := []slog.Attr{
			slog.String("method", ctx.Request.Method),
			slog.String("route", route),
			slog.Int("status", ctx.Writer.Status()),
			slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			slog.String("request_id", ctx.GetString(CtxRequestID)),
		}
		if len(ctx.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", ctx.Errors.String()))
		}

		log.LogAttrs(ctx.Request.Context(), slog.LevelInfo, "http_request", attrs...)
	}
}
