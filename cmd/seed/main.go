package main

import (
	"context"
	"fmt"
	"os"

	"textile-backend/internal/config"
	"textile-backend/internal/database"
	"textile-backend/internal/logger"
	"textile-backend/internal/repository"
	"textile-backend/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Open(cfg.DatabaseDSN, cfg.IsProduction())
	if err != nil {
		log.Fatal("database connection failed", "error", err)
	}
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("database migration failed", "error", err)
	}

	res, err := seed.Run(context.Background(),
		repository.NewUserRepo(db, log),
		repository.NewProductRepo(db, log),
		repository.NewCompanyRepo(db, log),
		cfg.SeedAdminPassword,
		log,
	)
	if err != nil {
		log.Fatal("seed failed", "error", err)
	}
	log.Info("seed finished",
		"admin_created", res.AdminCreated,
		"products_created", res.ProductsCreated,
		"company_created", res.CompanyCreated,
	)
}
