// Package seed fills an empty database with the default admin account,
// the starter product catalog and the company profile. Running it again
// leaves existing rows alone.
package seed

import (
	"context"

	"textile-backend/internal/apperr"
	"textile-backend/internal/auth"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"
	"textile-backend/internal/repository"

	"github.com/samber/lo"
)

const (
	AdminUserID          = "admin"
	DefaultAdminPassword = "admin123"
)

var Products = []string{"Cotton Fabric", "Silk Fabric", "Wool Fabric", "Synthetic Fabric"}

type Result struct {
	AdminCreated    bool
	ProductsCreated int
	CompanyCreated  bool
}

func Run(ctx context.Context, users repository.UserRepo, products repository.ProductRepo, company repository.CompanyRepo, adminPassword string, log *logger.Logger) (Result, error) {
	var res Result

	_, err := users.FindByUserID(ctx, AdminUserID)
	switch {
	case apperr.Is(err, apperr.KindNotFound):
		if adminPassword == "" {
			adminPassword = DefaultAdminPassword
			log.Warn("SEED_ADMIN_PASSWORD not set, using the default admin password")
		}
		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return res, err
		}
		admin := models.User{UserID: AdminUserID, Name: "Administrator", PasswordHash: hash, Role: models.RoleAdmin}
		if err := users.Create(ctx, &admin); err != nil {
			return res, err
		}
		res.AdminCreated = true
		log.Info("admin user created", "user_id", AdminUserID)
	case err != nil:
		return res, err
	default:
		log.Info("admin user already exists", "user_id", AdminUserID)
	}

	existing, err := products.List(ctx, false)
	if err != nil {
		return res, err
	}
	names := lo.Map(existing, func(p models.Product, _ int) string { return p.Name })
	for _, name := range Products {
		if lo.Contains(names, name) {
			continue
		}
		p := models.Product{
			Name:         name,
			Qualities:    models.DefaultQualityGrades,
			QualityNames: models.DefaultQualityNames(models.DefaultQualityGrades),
			Active:       true,
		}
		if err := products.Create(ctx, &p); err != nil {
			return res, err
		}
		res.ProductsCreated++
		log.Info("product created", "name", name)
	}

	info, err := company.Get(ctx)
	if err != nil {
		return res, err
	}
	// Get falls back to an unsaved default when no row exists.
	if info.UpdatedAt.IsZero() {
		if err := company.Save(ctx, info); err != nil {
			return res, err
		}
		res.CompanyCreated = true
		log.Info("company info created")
	}
	return res, nil
}
