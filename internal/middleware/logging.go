package middleware

import (
	"PoultryScan/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// NewLoggingMiddleware logs one line per request. Upload bodies are binary so
// only their size and content type are recorded.
func (m *middleware) NewLoggingMiddleware(c *fiber.Ctx) error {
	start := time.Now()

	err := c.Next()

	latency := time.Since(start)
	status := c.Response().StatusCode()

	logFields := log.Fields{
		log.RequestIDKey: m.GetRequestID(c),
		"method":         c.Method(),
		"path":           c.Path(),
		"status":         status,
		"latency_ms":     latency.Milliseconds(),
		"ip":             c.IP(),
		"host":           c.Hostname(),
		"user_agent":     c.Get(fiber.HeaderUserAgent),
		"content_type":   c.Get(fiber.HeaderContentType),
		"request_size":   len(c.Request().Body()),
		"response_size":  len(c.Response().Body()),
	}
	if err != nil {
		logFields["error"] = err.Error()
	}

	entry := m.log.WithFields(logFields)
	switch {
	case status >= 500:
		entry.Error("Server error")
	case status >= 400:
		entry.Warn("Client error")
	default:
		entry.Info("Success")
	}

	return err
}
