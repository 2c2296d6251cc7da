package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=textile port=5432 sslmode=disable"

type Config struct {
	AppEnv      string
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Third-party identity tokens are accepted only when a public key is configured.
	IdentityPublicKeyFile string
	IdentityIssuer        string
	IdentityAudience      string

	// Login throttling is disabled when RedisAddress is empty.
	RedisAddress       string
	LoginRateLimit     int64
	LoginRateWindow    time.Duration
	ContactPhoneRegion string

	SeedAdminPassword string

	// Warnings collected while loading; logged by main once the logger exists.
	Warnings []string
}

func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.AppEnv) {
	case "prod", "production":
		return true
	}
	return false
}

// Load reads the environment (and a .env file when present) and validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:           getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		CORSOrigins:           getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		IdentityPublicKeyFile: getEnv("IDENTITY_PUBLIC_KEY_FILE", ""),
		IdentityIssuer:        getEnv("IDENTITY_ISSUER", ""),
		IdentityAudience:      getEnv("IDENTITY_AUDIENCE", ""),
		RedisAddress:          getEnv("REDIS_ADDRESS", ""),
		ContactPhoneRegion:    strings.ToUpper(getEnv("CONTACT_PHONE_REGION", "IN")),
		SeedAdminPassword:     getEnv("SEED_ADMIN_PASSWORD", ""),
	}

	limit, err := getInt("LOGIN_RATE_LIMIT", 10)
	if err != nil {
		return nil, err
	}
	windowSec, err := getInt("LOGIN_RATE_WINDOW_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	cfg.LoginRateLimit = int64(limit)
	cfg.LoginRateWindow = time.Duration(windowSec) * time.Second

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if cfg.IdentityPublicKeyFile != "" && cfg.IdentityIssuer == "" {
		return nil, fmt.Errorf("IDENTITY_ISSUER is required when IDENTITY_PUBLIC_KEY_FILE is set")
	}

	if cfg.DatabaseDSN == defaultDSN {
		cfg.Warnings = append(cfg.Warnings, "DATABASE_DSN uses the local default")
	}
	if cfg.CORSOrigins == "http://localhost:3000" {
		cfg.Warnings = append(cfg.Warnings, "CORS_ALLOWED_ORIGINS uses the local default")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, nil
}
