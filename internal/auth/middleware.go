package auth

import (
	"strings"

	"textile-backend/internal/apperr"
	"textile-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey     = "user_id"
	CtxUserRoleKey   = "user_role"
	CtxUserNameKey   = "user_name"
	CtxUserSourceKey = "user_source"
)

func JWTMiddleware(verifier Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperr.Unauthorized("Authorization header missing")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
			return apperr.Unauthorized("Authorization header must be 'Bearer <token>'")
		}

		id, err := verifier.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}

		c.Locals(CtxUserIDKey, id.UserID)
		c.Locals(CtxUserRoleKey, id.Role)
		c.Locals(CtxUserNameKey, id.Name)
		c.Locals(CtxUserSourceKey, id.Source)

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
		if !ok {
			return apperr.Unauthorized("Not authenticated")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return apperr.Forbidden("Access denied")
	}
}

// Current returns the identity JWTMiddleware stored on the request.
func Current(c *fiber.Ctx) (*Identity, error) {
	userID, ok := c.Locals(CtxUserIDKey).(string)
	if !ok || userID == "" {
		return nil, apperr.Unauthorized("Not authenticated")
	}
	role, _ := c.Locals(CtxUserRoleKey).(models.UserRole)
	name, _ := c.Locals(CtxUserNameKey).(string)
	source, _ := c.Locals(CtxUserSourceKey).(string)
	return &Identity{UserID: userID, Role: role, Name: name, Source: source}, nil
}
