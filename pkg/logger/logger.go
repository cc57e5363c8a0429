package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	ownerKey     ctxKey = "owner"
	remoteKey    ctxKey = "remote_addr"
	agentKey     ctxKey = "user_agent"
)

// Config mirrors config.LoggerConfig but avoids importing the config package here.
type Config struct {
	Level    string
	Encoding string
}

// New builds a zap.Logger writing to stdout.
func New(cfg Config) (*zap.Logger, error) {
	return build(cfg, zapcore.Lock(os.Stdout)), nil
}

func build(cfg Config, sink zapcore.WriteSyncer) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		// fall back to info level if parsing fails
		level = zapcore.InfoLevel
	}

	var encoder zapcore.Encoder
	switch cfg.Encoding {
	case "console":
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(sink), level)
	return zap.New(core, zap.AddCaller())
}

// ContextWithRequestID attaches a request ID to the provided context.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ContextWithOwner attaches the authenticated owner to the provided context.
func ContextWithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

// ContextWithClient attaches the caller's address and user agent. Empty values are skipped.
func ContextWithClient(ctx context.Context, remoteAddr, userAgent string) context.Context {
	if remoteAddr != "" {
		ctx = context.WithValue(ctx, remoteKey, remoteAddr)
	}
	if userAgent != "" {
		ctx = context.WithValue(ctx, agentKey, userAgent)
	}
	return ctx
}

// WithRequestID enriches the logger with the request ID stored in the context.
func WithRequestID(ctx context.Context, base *zap.Logger) *zap.Logger {
	if ctx == nil || base == nil {
		return base
	}
	if reqID, ok := ctx.Value(requestIDKey).(string); ok && reqID != "" {
		return base.With(zap.String("request_id", reqID))
	}
	return base
}

// FromContext enriches the logger with every request field found in ctx.
func FromContext(ctx context.Context, base *zap.Logger) *zap.Logger {
	logger := WithRequestID(ctx, base)
	if ctx == nil || logger == nil {
		return logger
	}
	for _, key := range []ctxKey{ownerKey, remoteKey, agentKey} {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			logger = logger.With(zap.String(string(key), v))
		}
	}
	return logger
}
