package middleware

import (
	"log/slog"

	"walkies/config"
	deliverycontext "walkies/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware assigns each request an ID and stores a request-scoped
// logger on the context so every log line downstream carries the ID.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware creates the logger middleware.
func NewLoggerMiddleware(logger *slog.Logger, cfg *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

// Handle wires the request ID and scoped logger into both the echo context
// and the request's context.Context.
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" {
			requestID = deliverycontext.GetRequestID(c)
		}
		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		scoped := m.logger.With(slog.String("request_id", requestID))

		ctx := c.Request().Context()
		ctx = deliverycontext.WithRequestID(ctx, requestID)
		ctx = deliverycontext.WithLogger(ctx, scoped)
		c.SetRequest(c.Request().WithContext(ctx))

		if m.debug {
			scoped.Debug("Request received",
				slog.String("method", c.Request().Method),
				slog.String("uri", c.Request().URL.Path))
		}

		return next(c)
	}
}
