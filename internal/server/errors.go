package server

import (
	"errors"

	"textile-backend/internal/apperr"
	"textile-backend/internal/logger"
	"textile-backend/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error as {"message": ...}. Internal causes are
// logged and only echoed as "detail" outside production.
func ErrorHandler(log *logger.Logger, production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal server error"
		var cause error

		var appErr *apperr.Error
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			status = appErr.Kind.Status()
			cause = appErr.Err
			if status < fiber.StatusInternalServerError {
				message = appErr.Message
			}
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		default:
			cause = err
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"error", err,
			)
		}

		body := fiber.Map{"message": message}
		if appErr != nil && appErr.Kind == apperr.KindValidation {
			if fields := validate.Fields(err); len(fields) > 0 {
				body["fields"] = fields
			}
		}
		if !production && cause != nil {
			body["detail"] = cause.Error()
		}
		return c.Status(status).JSON(body)
	}
}
