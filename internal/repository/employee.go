package repository

import (
	"context"

	"textile-backend/internal/apperr"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"

	"gorm.io/gorm"
)

type EmployeeFilter struct {
	SupervisorID string
	Status       models.EmployeeStatus
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *models.Employee) error
	Get(ctx context.Context, employeeID string) (*models.Employee, error)
	List(ctx context.Context, f EmployeeFilter) ([]models.Employee, error)
	Save(ctx context.Context, e *models.Employee) error
	Delete(ctx context.Context, employeeID string) error
	Count(ctx context.Context, f EmployeeFilter) (int64, error)
}

type employeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
	return &employeeRepo{db: db, log: baseLog.With("repo", "EmployeeRepo")}
}

func (r *employeeRepo) Create(ctx context.Context, e *models.Employee) error {
	if e.Status == "" {
		e.Status = models.EmployeeActive
	}
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if apperr.Is(translate(err, "Employee"), apperr.KindDuplicate) {
			return apperr.Duplicate("Employee ID already exists")
		}
		return translate(err, "Employee")
	}
	return nil
}

func (r *employeeRepo) Get(ctx context.Context, employeeID string) (*models.Employee, error) {
	var e models.Employee
	if err := r.db.WithContext(ctx).First(&e, "employee_id = ?", employeeID).Error; err != nil {
		return nil, translate(err, "Employee")
	}
	return &e, nil
}

func (r *employeeRepo) scope(ctx context.Context, f EmployeeFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Employee{})
	if f.SupervisorID != "" {
		q = q.Where("supervisor_id = ?", f.SupervisorID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *employeeRepo) List(ctx context.Context, f EmployeeFilter) ([]models.Employee, error) {
	var out []models.Employee
	if err := r.scope(ctx, f).Order("name ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "Employee")
	}
	return out, nil
}

func (r *employeeRepo) Save(ctx context.Context, e *models.Employee) error {
	if err := r.db.WithContext(ctx).Save(e).Error; err != nil {
		return translate(err, "Employee")
	}
	return nil
}

func (r *employeeRepo) Delete(ctx context.Context, employeeID string) error {
	res := r.db.WithContext(ctx).Delete(&models.Employee{}, "employee_id = ?", employeeID)
	if res.Error != nil {
		return translate(res.Error, "Employee")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Employee not found")
	}
	return nil
}

func (r *employeeRepo) Count(ctx context.Context, f EmployeeFilter) (int64, error) {
	var n int64
	if err := r.scope(ctx, f).Count(&n).Error; err != nil {
		return 0, translate(err, "Employee")
	}
	return n, nil
}
