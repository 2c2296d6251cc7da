package repository

import (
	"context"

	"textile-backend/internal/apperr"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"

	"gorm.io/gorm"
)

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	Get(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, activeOnly bool) ([]models.Product, error)
	Save(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, activeOnly bool) (int64, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if apperr.Is(translate(err, "Product"), apperr.KindDuplicate) {
			return apperr.Duplicate("Product name already exists")
		}
		return translate(err, "Product")
	}
	return nil
}

func (r *productRepo) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Product")
	}
	return &p, nil
}

func (r *productRepo) scope(ctx context.Context, activeOnly bool) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Product{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	return q
}

func (r *productRepo) List(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	var out []models.Product
	if err := r.scope(ctx, activeOnly).Order("name ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "Product")
	}
	return out, nil
}

func (r *productRepo) Save(ctx context.Context, p *models.Product) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		if apperr.Is(translate(err, "Product"), apperr.KindDuplicate) {
			return apperr.Duplicate("Product name already exists")
		}
		return translate(err, "Product")
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "Product")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Product not found")
	}
	return nil
}

func (r *productRepo) Count(ctx context.Context, activeOnly bool) (int64, error) {
	var n int64
	if err := r.scope(ctx, activeOnly).Count(&n).Error; err != nil {
		return 0, translate(err, "Product")
	}
	return n, nil
}
