package repository

import (
	"context"

	"textile-backend/internal/apperr"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"
	"textile-backend/internal/quality"

	"gorm.io/gorm"
)

// QualityEntryRepo pushes quality.Criteria down to SQL. Deleted entries are
// only reachable through Get.
type QualityEntryRepo interface {
	quality.EntryStore
}

type qualityEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQualityEntryRepo(db *gorm.DB, baseLog *logger.Logger) QualityEntryRepo {
	return &qualityEntryRepo{db: db, log: baseLog.With("repo", "QualityEntryRepo")}
}

func (r *qualityEntryRepo) Create(ctx context.Context, e *models.QualityEntry) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if apperr.Is(translate(err, "Quality entry"), apperr.KindDuplicate) {
			return apperr.Duplicate("Receipt number already exists")
		}
		return translate(err, "Quality entry")
	}
	return nil
}

func (r *qualityEntryRepo) Get(ctx context.Context, id string) (*models.QualityEntry, error) {
	var e models.QualityEntry
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Quality entry")
	}
	return &e, nil
}

func (r *qualityEntryRepo) Save(ctx context.Context, e *models.QualityEntry) error {
	if err := r.db.WithContext(ctx).Save(e).Error; err != nil {
		if apperr.Is(translate(err, "Quality entry"), apperr.KindDuplicate) {
			return apperr.Duplicate("Receipt number already exists")
		}
		return translate(err, "Quality entry")
	}
	return nil
}

func (r *qualityEntryRepo) where(ctx context.Context, c quality.Criteria) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.QualityEntry{}).
		Where("status <> ?", models.EntryDeleted)
	if c.EmployeeID != "" {
		q = q.Where("employee_id = ?", c.EmployeeID)
	}
	if c.ProductID != "" {
		q = q.Where("product_id = ?", c.ProductID)
	}
	if c.SupervisorID != "" {
		q = q.Where("supervisor_id = ?", c.SupervisorID)
	}
	if c.Status != "" {
		q = q.Where("status = ?", c.Status)
	}
	if c.From != nil {
		q = q.Where("date >= ?", quality.StartOfDay(*c.From))
	}
	if c.To != nil {
		q = q.Where("date < ?", quality.NextDay(*c.To))
	}
	return q
}

// Find returns matching entries, newest first.
func (r *qualityEntryRepo) Find(ctx context.Context, c quality.Criteria) ([]models.QualityEntry, error) {
	var out []models.QualityEntry
	if err := r.where(ctx, c).Order("date DESC").Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, translate(err, "Quality entry")
	}
	return out, nil
}

func (r *qualityEntryRepo) Count(ctx context.Context, c quality.Criteria) (int64, error) {
	var n int64
	if err := r.where(ctx, c).Count(&n).Error; err != nil {
		return 0, translate(err, "Quality entry")
	}
	return n, nil
}

func (r *qualityEntryRepo) ReceiptExists(ctx context.Context, receiptNo, exceptID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.QualityEntry{}).Where("receipt_no = ?", receiptNo)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, translate(err, "Quality entry")
	}
	return n > 0, nil
}
