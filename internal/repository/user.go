package repository

import (
	"context"
	"time"

	"textile-backend/internal/apperr"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"

	"gorm.io/gorm"
)

type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, role models.UserRole, userID string) (*models.User, error)
	FindByUserID(ctx context.Context, userID string) (*models.User, error)
	List(ctx context.Context, role models.UserRole) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, role models.UserRole, userID string) error
	Count(ctx context.Context, role models.UserRole) (int64, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) table(ctx context.Context, role models.UserRole) (*gorm.DB, error) {
	if !role.Valid() {
		return nil, apperr.Validation("Invalid role")
	}
	return r.db.WithContext(ctx).Table(role.Table()), nil
}

// Create inserts u into its role's table. UserID must be unused in every table.
func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	if _, err := r.FindByUserID(ctx, u.UserID); err == nil {
		return apperr.Duplicate("User ID already exists")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return err
	}

	q, err := r.table(ctx, u.Role)
	if err != nil {
		return err
	}
	if err := q.Create(u).Error; err != nil {
		return translate(err, "User")
	}
	return nil
}

func (r *userRepo) Get(ctx context.Context, role models.UserRole, userID string) (*models.User, error) {
	q, err := r.table(ctx, role)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := q.Where("user_id = ?", userID).First(&u).Error; err != nil {
		return nil, translate(err, "User")
	}
	u.Role = role
	return &u, nil
}

// FindByUserID searches each role's table in models.Roles order.
func (r *userRepo) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	for _, role := range models.Roles {
		u, err := r.Get(ctx, role, userID)
		if err == nil {
			return u, nil
		}
		if !apperr.Is(err, apperr.KindNotFound) {
			return nil, err
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (r *userRepo) List(ctx context.Context, role models.UserRole) ([]models.User, error) {
	q, err := r.table(ctx, role)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, translate(err, "User")
	}
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	q, err := r.table(ctx, u.Role)
	if err != nil {
		return err
	}
	u.UpdatedAt = time.Now()
	res := q.Where("user_id = ?", u.UserID).Updates(map[string]any{
		"name":          u.Name,
		"password_hash": u.PasswordHash,
		"updated_at":    u.UpdatedAt,
	})
	if res.Error != nil {
		return translate(res.Error, "User")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, role models.UserRole, userID string) error {
	q, err := r.table(ctx, role)
	if err != nil {
		return err
	}
	res := q.Where("user_id = ?", userID).Delete(&models.User{})
	if res.Error != nil {
		return translate(res.Error, "User")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("User not found")
	}
	r.log.Info("user deleted", "role", role, "user_id", userID)
	return nil
}

func (r *userRepo) Count(ctx context.Context, role models.UserRole) (int64, error) {
	q, err := r.table(ctx, role)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, translate(err, "User")
	}
	return n, nil
}
