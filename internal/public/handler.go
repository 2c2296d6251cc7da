// Package public serves the unauthenticated marketing-site endpoints.
package public

import (
	"strings"

	"textile-backend/internal/apperr"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"
	"textile-backend/internal/repository"
	"textile-backend/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"max=32"`
	Message string `json:"message" validate:"required,max=4000"`
}

// GET /api/public/products lists active products only.
func ListProductsHandler(products repository.ProductRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := products.List(c.UserContext(), true)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func CompanyInfoHandler(company repository.CompanyRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := company.Get(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(info)
	}
}

// POST /api/public/contact
//
// The phone number, when given, is stored in E.164 form; numbers without a
// country code are read in phoneRegion.
func ContactHandler(contacts repository.ContactRepo, phoneRegion string, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ContactRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		body.Email = strings.TrimSpace(body.Email)
		body.Phone = strings.TrimSpace(body.Phone)
		body.Message = strings.TrimSpace(body.Message)
		if err := validate.Struct(body); err != nil {
			return err
		}

		submission := models.ContactSubmission{
			Name:    body.Name,
			Email:   strings.ToLower(body.Email),
			Message: body.Message,
		}
		if body.Phone != "" {
			phone, err := validate.Phone(body.Phone, phoneRegion)
			if err != nil {
				return err
			}
			submission.Phone = &phone
		}

		if err := contacts.Create(c.UserContext(), &submission); err != nil {
			return err
		}
		log.Info("contact submission received", "id", submission.ID)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Thank you for your message. We will get back to you soon!",
			"id":      submission.ID,
		})
	}
}
