package database

import (
	"fmt"

	"textile-backend/internal/logger"
	"textile-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to Postgres. Driver errors are translated so that unique
// violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string, production bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if production {
		level = gormlogger.Error
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table. Users get one table per role.
func Migrate(db *gorm.DB, log *logger.Logger) error {
	for _, role := range models.Roles {
		if err := db.Table(role.Table()).AutoMigrate(&models.User{}); err != nil {
			return fmt.Errorf("migrate %s: %w", role.Table(), err)
		}
	}

	err := db.AutoMigrate(
		&models.Employee{},
		&models.Product{},
		&models.QualityEntry{},
		&models.ContactSubmission{},
		&models.CompanyInfo{},
		&models.GalleryItem{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if log != nil {
		log.Info("database migrated")
	}
	return nil
}
