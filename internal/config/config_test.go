package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_RequiresLongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "short")
	_, err = Load()
	require.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("LOGIN_RATE_LIMIT", "")
	t.Setenv("LOGIN_RATE_WINDOW_SECONDS", "")
	t.Setenv("CONTACT_PHONE_REGION", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.HTTPPort)
	require.Equal(t, int64(10), cfg.LoginRateLimit)
	require.Equal(t, time.Minute, cfg.LoginRateWindow)
	require.Equal(t, "IN", cfg.ContactPhoneRegion)
	require.False(t, cfg.IsProduction())
	require.NotEmpty(t, cfg.Warnings)
}

func TestLoad_RejectsBadRateLimit(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("LOGIN_RATE_LIMIT", "zero")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_IdentityKeyNeedsIssuer(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("IDENTITY_PUBLIC_KEY_FILE", "/tmp/key.pem")
	t.Setenv("IDENTITY_ISSUER", "")
	_, err := Load()
	require.Error(t, err)
}

func TestIsProduction(t *testing.T) {
	require.True(t, (&Config{AppEnv: "production"}).IsProduction())
	require.True(t, (&Config{AppEnv: "PROD"}).IsProduction())
	require.False(t, (&Config{AppEnv: "staging"}).IsProduction())
}
