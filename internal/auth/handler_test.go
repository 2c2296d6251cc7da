package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"textile-backend/internal/apperr"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"
	"textile-backend/internal/ratelimit"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeUsers map[string]*models.User

func (f fakeUsers) FindByUserID(_ context.Context, userID string) (*models.User, error) {
	if u, ok := f[userID]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User not found")
}

func (f fakeUsers) Get(ctx context.Context, role models.UserRole, userID string) (*models.User, error) {
	u, err := f.FindByUserID(ctx, userID)
	if err != nil || u.Role != role {
		return nil, apperr.NotFound("User not found")
	}
	return u, nil
}

type counterStore map[string]int64

func (s counterStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	s[key]++
	cmd := redis.NewIntCmd(ctx, "incr", key)
	cmd.SetVal(s[key])
	return cmd
}

func (s counterStore) Expire(ctx context.Context, key string, _ time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx, "expire", key)
	cmd.SetVal(true)
	return cmd
}

func (s counterStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(s, k)
	}
	cmd := redis.NewIntCmd(ctx, "del")
	cmd.SetVal(int64(len(keys)))
	return cmd
}

// stubVerifier accepts any token as the given identity.
type stubVerifier Identity

func (v stubVerifier) Verify(string) (*Identity, error) {
	id := Identity(v)
	return &id, nil
}

func newApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(apperr.KindOf(err).Status()).JSON(fiber.Map{"message": err.Error()})
		},
	})
}

func TestLoginRateLimitedSetsRetryAfter(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	users := fakeUsers{"sup1": {UserID: "sup1", Name: "Ravi", Role: models.RoleSupervisor, PasswordHash: hash}}
	limiter := ratelimit.New(counterStore{}, 1, 90*time.Second)

	app := newApp()
	app.Post("/login", LoginHandler(users, testSecret, limiter, logger.Nop()))

	login := func(password string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"userId":"sup1","password":"`+password+`"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := login("wrong")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = login("secret1")
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, "90", resp.Header.Get(fiber.HeaderRetryAfter))
}

func TestMeFallsBackOnlyForIdentityUsers(t *testing.T) {
	users := fakeUsers{}

	local := newApp()
	local.Get("/me", JWTMiddleware(stubVerifier{UserID: "gone", Name: "Gone", Role: models.RoleSupervisor, Source: SourceLocal}), MeHandler(users))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer any")
	resp, err := local.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	external := newApp()
	external.Get("/me", JWTMiddleware(stubVerifier{UserID: "ext-1", Name: "Priya", Role: models.RoleAdmin, Source: SourceIdentity}), MeHandler(users))
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer any")
	resp, err = external.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
