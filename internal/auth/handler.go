package auth

import (
	"context"
	"strconv"
	"strings"

	"textile-backend/internal/apperr"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"
	"textile-backend/internal/ratelimit"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UserFinder interface {
	FindByUserID(ctx context.Context, userID string) (*models.User, error)
	Get(ctx context.Context, role models.UserRole, userID string) (*models.User, error)
}

type LoginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type UserResponse struct {
	UserID string          `json:"userId"`
	Name   string          `json:"name"`
	Role   models.UserRole `json:"role"`
}

const invalidCredentials = "Invalid credentials"

func LoginHandler(users UserFinder, secret string, limiter *ratelimit.Limiter, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}

		body.UserID = strings.TrimSpace(body.UserID)
		if body.UserID == "" || body.Password == "" {
			return apperr.Validation("userId and password are required")
		}

		ctx := c.UserContext()
		allowed, err := limiter.Allow(ctx, body.UserID)
		if err != nil {
			// Limiter failures fail open.
			log.Warn("login rate limiter unavailable", "error", err)
		} else if !allowed {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(limiter.Window().Seconds())))
			return apperr.RateLimited("Too many login attempts, try again later")
		}

		user, err := users.FindByUserID(ctx, body.UserID)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return apperr.Unauthorized(invalidCredentials)
			}
			return err
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return apperr.Unauthorized(invalidCredentials)
		}

		token, err := GenerateToken(secret, user)
		if err != nil {
			return apperr.New(apperr.KindInternal, "Token could not be created", err)
		}

		if err := limiter.Reset(ctx, body.UserID); err != nil {
			log.Warn("login rate limiter reset failed", "error", err)
		}
		log.Info("user logged in", "user_id", user.UserID, "role", user.Role)

		return c.JSON(fiber.Map{
			"message": "Login successful",
			"token":   token,
			"user":    UserResponse{UserID: user.UserID, Name: user.Name, Role: user.Role},
		})
	}
}

func MeHandler(users UserFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := Current(c)
		if err != nil {
			return err
		}

		user, err := users.Get(c.UserContext(), id.Role, id.UserID)
		switch {
		case err == nil:
			return c.JSON(fiber.Map{"user": UserResponse{UserID: user.UserID, Name: user.Name, Role: user.Role}})
		case apperr.Is(err, apperr.KindNotFound) && id.Source == SourceIdentity:
			// Identity-provider users may have no local record.
			return c.JSON(fiber.Map{"user": UserResponse{UserID: id.UserID, Name: id.Name, Role: id.Role}})
		case apperr.Is(err, apperr.KindNotFound):
			return apperr.Unauthorized("User no longer exists")
		default:
			return err
		}
	}
}

// LogoutHandler exists for client symmetry; tokens are stateless.
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Logged out successfully"})
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.New(apperr.KindInternal, "Password could not be hashed", err)
	}
	return string(hash), nil
}
