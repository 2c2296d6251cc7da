package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"textile-backend/internal/auth"
	"textile-backend/internal/config"
	"textile-backend/internal/database"
	"textile-backend/internal/logger"
	"textile-backend/internal/ratelimit"
	"textile-backend/internal/server"
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

	for _, w := range cfg.Warnings {
		log.Warn(w)
	}

	db, err := database.Open(cfg.DatabaseDSN, cfg.IsProduction())
	if err != nil {
		log.Fatal("database connection failed", "error", err)
	}
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("database migration failed", "error", err)
	}

	var limiter *ratelimit.Limiter
	if cfg.RedisAddress != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := ratelimit.NewClient(ctx, cfg.RedisAddress)
		cancel()
		if err != nil {
			log.Fatal("redis connection failed", "address", cfg.RedisAddress, "error", err)
		}
		defer client.Close()
		limiter = ratelimit.New(client, cfg.LoginRateLimit, cfg.LoginRateWindow)
		log.Info("login rate limiting enabled", "limit", cfg.LoginRateLimit, "window", cfg.LoginRateWindow.String())
	}

	verifiers := auth.Chain{}
	if cfg.IdentityPublicKeyFile != "" {
		identity, err := auth.LoadIdentityVerifier(cfg.IdentityPublicKeyFile, cfg.IdentityIssuer, cfg.IdentityAudience)
		if err != nil {
			log.Fatal("identity key could not be loaded", "file", cfg.IdentityPublicKeyFile, "error", err)
		}
		verifiers = append(verifiers, identity)
	}
	verifiers = append(verifiers, auth.NewLocalVerifier(cfg.JWTSecret))

	app := server.New(server.NewDeps(cfg, db, log, verifiers, limiter))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("server listening", "port", cfg.HTTPPort, "env", cfg.AppEnv)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
