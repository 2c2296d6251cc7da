package admin

import (
	"textile-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

func ListContactsHandler(contacts repository.ContactRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := contacts.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func DeleteContactHandler(contacts repository.ContactRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := contacts.Delete(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Contact submission deleted successfully"})
	}
}
