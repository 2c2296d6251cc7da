package admin

import (
	"fmt"
	"strings"

	"textile-backend/internal/apperr"
	"textile-backend/internal/audit"
	"textile-backend/internal/models"
	"textile-backend/internal/repository"
	"textile-backend/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type ProductRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description  *string  `json:"description" validate:"omitempty,max=1000"`
	ImageURL     *string  `json:"imageUrl" validate:"omitempty,max=500"`
	Qualities    *int     `json:"qualities"`
	QualityNames []string `json:"qualityNames" validate:"omitempty,dive,max=50"`
	Active       *bool    `json:"active"`
}

// NormalizeQualities resolves the grade count and names of a product.
// A missing count falls back to the number of names, then to current.
// Missing names default to "Quality 1".."Quality n".
func NormalizeQualities(count *int, names []string, current int) (int, []string, error) {
	n := current
	switch {
	case count != nil:
		n = *count
	case len(names) > 0:
		n = len(names)
	case n == 0:
		n = models.DefaultQualityGrades
	}
	if n < models.MinQualityGrades || n > models.MaxQualityGrades {
		return 0, nil, apperr.Validation(fmt.Sprintf("qualities must be between %d and %d", models.MinQualityGrades, models.MaxQualityGrades))
	}

	if len(names) == 0 {
		return n, models.DefaultQualityNames(n), nil
	}
	if len(names) != n {
		return 0, nil, apperr.Validation(fmt.Sprintf("qualityNames must contain exactly %d names", n))
	}
	trimmed := lo.Map(names, func(s string, _ int) string { return strings.TrimSpace(s) })
	if lo.Contains(trimmed, "") {
		return 0, nil, apperr.Validation("qualityNames must not be blank")
	}
	if len(lo.Uniq(trimmed)) != len(trimmed) {
		return 0, nil, apperr.Validation("qualityNames must be unique")
	}
	return n, trimmed, nil
}

func ListProductsHandler(products repository.ProductRepo, activeOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := products.List(c.UserContext(), activeOnly)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func CreateProductHandler(products repository.ProductRepo, auditor *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return err
		}
		if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
			return apperr.Validation("name is required")
		}

		n, names, err := NormalizeQualities(body.Qualities, body.QualityNames, 0)
		if err != nil {
			return err
		}
		p := models.Product{
			Name:         strings.TrimSpace(*body.Name),
			Description:  strings.TrimSpace(lo.FromPtr(body.Description)),
			ImageURL:     strings.TrimSpace(lo.FromPtr(body.ImageURL)),
			Qualities:    n,
			QualityNames: names,
			Active:       lo.FromPtrOr(body.Active, true),
		}

		ctx := c.UserContext()
		if err := products.Create(ctx, &p); err != nil {
			return err
		}

		auditor.RecordFor(c, audit.LogOptions{
			EntityType:  audit.EntityProduct,
			EntityID:    p.ID,
			Action:      models.AuditActionCreate,
			Description: "Product " + p.Name + " created",
			After:       p,
		})
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

func UpdateProductHandler(products repository.ProductRepo, auditor *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return err
		}

		ctx := c.UserContext()
		p, err := products.Get(ctx, c.Params("id"))
		if err != nil {
			return err
		}
		before := *p

		if body.Name != nil {
			p.Name = strings.TrimSpace(*body.Name)
		}
		if body.Description != nil {
			p.Description = strings.TrimSpace(*body.Description)
		}
		if body.ImageURL != nil {
			p.ImageURL = strings.TrimSpace(*body.ImageURL)
		}
		if body.Active != nil {
			p.Active = *body.Active
		}
		if body.Qualities != nil || len(body.QualityNames) > 0 {
			names := body.QualityNames
			// Keep the current names when only the count is unchanged.
			if len(names) == 0 && body.Qualities != nil && *body.Qualities == p.Qualities {
				names = p.QualityNames
			}
			if p.Qualities, p.QualityNames, err = NormalizeQualities(body.Qualities, names, p.Qualities); err != nil {
				return err
			}
		}

		if err := products.Save(ctx, p); err != nil {
			return err
		}

		auditor.RecordFor(c, audit.LogOptions{
			EntityType:  audit.EntityProduct,
			EntityID:    p.ID,
			Action:      models.AuditActionUpdate,
			Description: "Product " + p.Name + " updated",
			Before:      before,
			After:       p,
		})
		return c.JSON(p)
	}
}

func DeleteProductHandler(products repository.ProductRepo, auditor *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		p, err := products.Get(ctx, c.Params("id"))
		if err != nil {
			return err
		}
		if err := products.Delete(ctx, p.ID); err != nil {
			return err
		}

		auditor.RecordFor(c, audit.LogOptions{
			EntityType:  audit.EntityProduct,
			EntityID:    p.ID,
			Action:      models.AuditActionDelete,
			Description: "Product " + p.Name + " deleted",
			Before:      p,
		})
		return c.JSON(fiber.Map{"message": "Product deleted successfully"})
	}
}
