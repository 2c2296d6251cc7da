package server

import (
	"strings"
	"time"

	"textile-backend/internal/auth"
	"textile-backend/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger writes one line per request. Errors returned by the chain
// are rendered here so the logged status is the one the client sees.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		path := c.Route().Path
		if path == "" || path == "/" {
			path = c.Path()
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Method()),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if userID, ok := c.Locals(auth.CtxUserIDKey).(string); ok && userID != "" {
			fields = append(fields, "user_id", userID)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
		return nil
	}
}
