package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Logger puts a request-scoped logger carrying the request id on the request
// context and writes one access line per request.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			reqLogger := logger.With().Str("request_id", requestID).Logger()
			ctx := reqLogger.WithContext(c.Request().Context())
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			reqLogger.Info().
				Str("method", req.Method).
				Str("endpoint", req.URL.Path).
				Int("status", res.Status).
				Int64("latency", time.Since(start).Milliseconds()).
				Str("remote_ip", c.RealIP()).
				Msg("Request processed")

			return nil
		}
	}
}

// LoggerFrom returns the request-scoped logger, or fallback when the request
// did not pass through Logger.
func LoggerFrom(c echo.Context, fallback zerolog.Logger) zerolog.Logger {
	l := zerolog.Ctx(c.Request().Context())
	if l.GetLevel() == zerolog.Disabled {
		return fallback
	}

	return *l
}
