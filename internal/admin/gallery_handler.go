package admin

import (
	"strings"

	"textile-backend/internal/apperr"
	"textile-backend/internal/models"
	"textile-backend/internal/repository"
	"textile-backend/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type GalleryItemRequest struct {
	Filename     string `json:"filename" validate:"required,max=255"`
	OriginalName string `json:"originalName" validate:"max=255"`
	FilePath     string `json:"filePath" validate:"required,max=500"`
	FileSize     *int64 `json:"fileSize" validate:"omitempty,min=0"`
}

type GalleryStats struct {
	TotalItems  int     `json:"totalItems"`
	TotalSize   int64   `json:"totalSize"`
	TotalSizeMB float64 `json:"totalSizeMB"`
}

func SummarizeGallery(items []models.GalleryItem) GalleryStats {
	s := GalleryStats{TotalItems: len(items)}
	for _, it := range items {
		if it.FileSize != nil {
			s.TotalSize += *it.FileSize
		}
	}
	s.TotalSizeMB = decimal.NewFromInt(s.TotalSize).
		DivRound(decimal.NewFromInt(1024*1024), 2).InexactFloat64()
	return s
}

func ListGalleryHandler(gallery repository.GalleryRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := gallery.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

// POST /api/admin/gallery registers an image hosted elsewhere.
func CreateGalleryItemHandler(gallery repository.GalleryRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GalleryItemRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		body.Filename = strings.TrimSpace(body.Filename)
		body.FilePath = strings.TrimSpace(body.FilePath)
		if err := validate.Struct(body); err != nil {
			return err
		}

		item := models.GalleryItem{
			Filename:     body.Filename,
			OriginalName: strings.TrimSpace(body.OriginalName),
			FilePath:     body.FilePath,
			FileSize:     body.FileSize,
		}
		if item.OriginalName == "" {
			item.OriginalName = item.Filename
		}
		if err := gallery.Create(c.UserContext(), &item); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

func DeleteGalleryItemHandler(gallery repository.GalleryRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := gallery.Delete(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Gallery item deleted successfully"})
	}
}

func GalleryStatsHandler(gallery repository.GalleryRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := gallery.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(SummarizeGallery(items))
	}
}
