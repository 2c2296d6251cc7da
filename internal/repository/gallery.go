package repository

import (
	"context"

	"textile-backend/internal/apperr"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"

	"gorm.io/gorm"
)

type GalleryRepo interface {
	Create(ctx context.Context, g *models.GalleryItem) error
	List(ctx context.Context) ([]models.GalleryItem, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type galleryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGalleryRepo(db *gorm.DB, baseLog *logger.Logger) GalleryRepo {
	return &galleryRepo{db: db, log: baseLog.With("repo", "GalleryRepo")}
}

func (r *galleryRepo) Create(ctx context.Context, g *models.GalleryItem) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		if apperr.Is(translate(err, "Gallery item"), apperr.KindDuplicate) {
			return apperr.Duplicate("Gallery filename already exists")
		}
		return translate(err, "Gallery item")
	}
	return nil
}

func (r *galleryRepo) List(ctx context.Context) ([]models.GalleryItem, error) {
	var out []models.GalleryItem
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, translate(err, "Gallery item")
	}
	return out, nil
}

func (r *galleryRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.GalleryItem{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "Gallery item")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Gallery item not found")
	}
	return nil
}

func (r *galleryRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.GalleryItem{}).Count(&n).Error; err != nil {
		return 0, translate(err, "Gallery item")
	}
	return n, nil
}
