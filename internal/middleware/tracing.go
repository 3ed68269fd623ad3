package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	traceHeader = "X-Trace-Id"
	traceLocal  = "trace_id"
)

// Tracing stamps every request with a trace ID and echoes it on the response.
// A well-formed inbound X-Trace-Id is reused so frontend and backend log lines
// correlate; anything else is replaced with a fresh ID.
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(traceHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}
		c.Locals(traceLocal, traceID)
		c.Set(traceHeader, traceID)
		return c.Next()
	}
}

// GetTraceID returns the request's trace ID, empty outside the middleware.
func GetTraceID(c *fiber.Ctx) string {
	id, _ := c.Locals(traceLocal).(string)
	return id
}
