package admin

import (
	"strings"

	"textile-backend/internal/apperr"
	"textile-backend/internal/repository"
	"textile-backend/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CompanyInfoRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Mission     *string `json:"mission" validate:"omitempty,max=2000"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
	Phone       *string `json:"phone" validate:"omitempty,max=50"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	Website     *string `json:"website" validate:"omitempty,max=255"`
}

func GetCompanyInfoHandler(company repository.CompanyRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := company.Get(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(info)
	}
}

// PUT /api/admin/company-info merges the given fields into the stored row.
func UpdateCompanyInfoHandler(company repository.CompanyRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CompanyInfoRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return err
		}

		ctx := c.UserContext()
		info, err := company.Get(ctx)
		if err != nil {
			return err
		}
		set := func(dst *string, v *string) {
			if v != nil {
				*dst = strings.TrimSpace(*v)
			}
		}
		set(&info.Name, body.Name)
		set(&info.Description, body.Description)
		set(&info.Mission, body.Mission)
		set(&info.Address, body.Address)
		set(&info.Phone, body.Phone)
		set(&info.Email, body.Email)
		set(&info.Website, body.Website)

		if err := company.Save(ctx, info); err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message":     "Company info updated successfully",
			"companyInfo": info,
		})
	}
}
