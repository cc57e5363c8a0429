package middleware

import (
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/homeplanner/pkg/httpcontext"
)

// AccessLog logs one line per request once the handler returns.
func AccessLog(logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			reqID := httpcontext.RequestID(ctx)

			next(ctx)

			fields := []zap.Field{
				zap.String("request_id", reqID),
				zap.ByteString("method", ctx.Method()),
				zap.ByteString("path", ctx.Path()),
				zap.Int("status", ctx.Response.StatusCode()),
				zap.Duration("latency", time.Since(start)),
			}
			if owner := httpcontext.Owner(ctx); owner != "" {
				fields = append(fields, zap.String("owner", owner))
			}

			if ctx.Response.StatusCode() >= fasthttp.StatusInternalServerError {
				logger.Warn("request served", fields...)
				return
			}
			logger.Info("request served", fields...)
		}
	}
}
