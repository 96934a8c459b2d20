package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EchoKey is the echo context key the request-scoped logger is stored
// under. The request-ID and logging middleware both write it; handlers
// read it through FromEcho.
const EchoKey = "logger"

type contextKey string

const loggerKey contextKey = "logger"

// FromContext returns the logger attached to ctx, falling back to the
// process logger when the context carries none.
func FromContext(ctx context.Context) *zap.Logger {
	logger, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok {
		return GetLogger()
	}
	return logger
}

// WithContext derives a context carrying the given logger.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromEcho returns the request-scoped logger set by the middleware,
// falling back to the process logger for requests that skipped it.
func FromEcho(c echo.Context) *zap.Logger {
	logger, ok := c.Get(EchoKey).(*zap.Logger)
	if !ok {
		return GetLogger()
	}
	return logger
}
