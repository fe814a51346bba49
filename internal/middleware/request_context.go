package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const (
	loggerKey       = "logger"
	maxRequestIDLen = 64
)

// RequestContext tags every request with an id, taken from the incoming
// header when present, and stores a logger carrying that id for handlers.
func RequestContext(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.Locals(loggerKey, log.With("request_id", id))
		return c.Next()
	}
}

// Logger returns the request logger set by RequestContext, or fallback.
func Logger(c *fiber.Ctx, fallback *slog.Logger) *slog.Logger {
	if l, ok := c.Locals(loggerKey).(*slog.Logger); ok {
		return l
	}
	return fallback
}
