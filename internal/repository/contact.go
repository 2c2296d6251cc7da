package repository

import (
	"context"

	"textile-backend/internal/apperr"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"

	"gorm.io/gorm"
)

type ContactRepo interface {
	Create(ctx context.Context, c *models.ContactSubmission) error
	List(ctx context.Context) ([]models.ContactSubmission, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type contactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	return &contactRepo{db: db, log: baseLog.With("repo", "ContactRepo")}
}

func (r *contactRepo) Create(ctx context.Context, c *models.ContactSubmission) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "Contact submission")
}

func (r *contactRepo) List(ctx context.Context) ([]models.ContactSubmission, error) {
	var out []models.ContactSubmission
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, translate(err, "Contact submission")
	}
	return out, nil
}

func (r *contactRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.ContactSubmission{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "Contact submission")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Contact submission not found")
	}
	return nil
}

func (r *contactRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.ContactSubmission{}).Count(&n).Error; err != nil {
		return 0, translate(err, "Contact submission")
	}
	return n, nil
}
