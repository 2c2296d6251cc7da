package repository

import (
	"context"

	"textile-backend/internal/apperr"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"

	"gorm.io/gorm"
)

type CompanyRepo interface {
	// Get falls back to models.DefaultCompanyInfo when nothing is stored yet.
	Get(ctx context.Context) (*models.CompanyInfo, error)
	Save(ctx context.Context, info *models.CompanyInfo) error
}

type companyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompanyRepo(db *gorm.DB, baseLog *logger.Logger) CompanyRepo {
	return &companyRepo{db: db, log: baseLog.With("repo", "CompanyRepo")}
}

func (r *companyRepo) Get(ctx context.Context) (*models.CompanyInfo, error) {
	var info models.CompanyInfo
	err := r.db.WithContext(ctx).First(&info, "id = ?", models.CompanyInfoID).Error
	if err != nil {
		err = translate(err, "Company info")
		if apperr.Is(err, apperr.KindNotFound) {
			def := models.DefaultCompanyInfo()
			return &def, nil
		}
		return nil, err
	}
	return &info, nil
}

func (r *companyRepo) Save(ctx context.Context, info *models.CompanyInfo) error {
	info.ID = models.CompanyInfoID
	return translate(r.db.WithContext(ctx).Save(info).Error, "Company info")
}
