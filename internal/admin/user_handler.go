package admin

import (
	"strings"

	"textile-backend/internal/apperr"
	"textile-backend/internal/auth"
	"textile-backend/internal/models"
	"textile-backend/internal/repository"
	"textile-backend/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type UserResponse struct {
	UserID    string          `json:"userId"`
	Name      string          `json:"name"`
	Role      models.UserRole `json:"role"`
	CreatedAt string          `json:"createdAt"`
}

type CreateUserRequest struct {
	UserID   string `json:"userId" validate:"required,max=64"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func roleLabel(role models.UserRole) string {
	if role == models.RoleAdmin {
		return "Admin"
	}
	return "Supervisor"
}

// ----------------------------------------
// Supervisors and admins share these handlers; role picks the table.
// ----------------------------------------

func ListUsersHandler(users repository.UserRepo, role models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := users.List(c.UserContext(), role)
		if err != nil {
			return err
		}
		resp := make([]UserResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toUserResponse(&list[i]))
		}
		return c.JSON(resp)
	}
}

func CreateUserHandler(users repository.UserRepo, role models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		body.UserID = strings.TrimSpace(body.UserID)
		body.Name = strings.TrimSpace(body.Name)
		if err := validate.Struct(body); err != nil {
			return err
		}

		hash, err := auth.HashPassword(body.Password)
		if err != nil {
			return err
		}
		user := models.User{
			UserID:       body.UserID,
			Name:         body.Name,
			PasswordHash: hash,
			Role:         role,
		}
		if err := users.Create(c.UserContext(), &user); err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": roleLabel(role) + " created successfully",
			"user":    toUserResponse(&user),
		})
	}
}

func UpdateUserHandler(users repository.UserRepo, role models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return err
		}

		ctx := c.UserContext()
		user, err := users.Get(ctx, role, c.Params("userId"))
		if err != nil {
			return err
		}
		if body.Name != nil {
			user.Name = strings.TrimSpace(*body.Name)
		}
		if body.Password != nil {
			hash, err := auth.HashPassword(*body.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		if err := users.Update(ctx, user); err != nil {
			return err
		}
		return c.JSON(toUserResponse(user))
	}
}

func DeleteUserHandler(users repository.UserRepo, role models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.Current(c)
		if err != nil {
			return err
		}
		userID := c.Params("userId")
		if role == actor.Role && userID == actor.UserID {
			return apperr.Validation("You cannot delete your own account")
		}
		if err := users.Delete(c.UserContext(), role, userID); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "User deleted successfully"})
	}
}
