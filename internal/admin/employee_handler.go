package admin

import (
	"context"
	"strings"

	"textile-backend/internal/apperr"
	"textile-backend/internal/audit"
	"textile-backend/internal/models"
	"textile-backend/internal/repository"
	"textile-backend/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CreateEmployeeRequest struct {
	EmployeeID   string                `json:"employeeId" validate:"required,max=64"`
	Name         string                `json:"name" validate:"required,max=100"`
	Photo        string                `json:"photo" validate:"max=500"`
	Status       models.EmployeeStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	SupervisorID *string               `json:"supervisorId" validate:"omitempty,max=64"`
}

type UpdateEmployeeRequest struct {
	Name         *string                `json:"name" validate:"omitempty,min=1,max=100"`
	Photo        *string                `json:"photo" validate:"omitempty,max=500"`
	Status       *models.EmployeeStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	SupervisorID *string                `json:"supervisorId" validate:"omitempty,max=64"`
}

// supervisorRef checks that id names a supervisor. Empty means unassigned.
func supervisorRef(ctx context.Context, users repository.UserRepo, id *string) (*string, error) {
	if id == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil, nil
	}
	if _, err := users.Get(ctx, models.RoleSupervisor, trimmed); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Validation("Supervisor " + trimmed + " does not exist")
		}
		return nil, err
	}
	return &trimmed, nil
}

// GET /api/admin/employees?status=
func ListEmployeesHandler(employees repository.EmployeeRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := repository.EmployeeFilter{Status: models.EmployeeStatus(c.Query("status"))}
		if f.Status != "" && !f.Status.Valid() {
			return apperr.Validation("status must be active or inactive")
		}
		list, err := employees.List(c.UserContext(), f)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

// GET /api/admin/employees/supervisor/:supervisorId
func ListSupervisorEmployeesHandler(employees repository.EmployeeRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := employees.List(c.UserContext(), repository.EmployeeFilter{SupervisorID: c.Params("supervisorId")})
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func CreateEmployeeHandler(employees repository.EmployeeRepo, users repository.UserRepo, auditor *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		body.EmployeeID = strings.TrimSpace(body.EmployeeID)
		body.Name = strings.TrimSpace(body.Name)
		if err := validate.Struct(body); err != nil {
			return err
		}

		ctx := c.UserContext()
		supervisorID, err := supervisorRef(ctx, users, body.SupervisorID)
		if err != nil {
			return err
		}

		emp := models.Employee{
			EmployeeID:   body.EmployeeID,
			Name:         body.Name,
			Photo:        strings.TrimSpace(body.Photo),
			Status:       body.Status,
			SupervisorID: supervisorID,
		}
		if err := employees.Create(ctx, &emp); err != nil {
			return err
		}

		auditor.RecordFor(c, audit.LogOptions{
			EntityType:  audit.EntityEmployee,
			EntityID:    emp.EmployeeID,
			Action:      models.AuditActionCreate,
			Description: "Employee " + emp.Name + " created",
			After:       emp,
		})

		return c.Status(fiber.StatusCreated).JSON(emp)
	}
}

func UpdateEmployeeHandler(employees repository.EmployeeRepo, users repository.UserRepo, auditor *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return err
		}

		ctx := c.UserContext()
		emp, err := employees.Get(ctx, c.Params("employeeId"))
		if err != nil {
			return err
		}
		before := *emp

		if body.Name != nil {
			emp.Name = strings.TrimSpace(*body.Name)
		}
		if body.Photo != nil {
			emp.Photo = strings.TrimSpace(*body.Photo)
		}
		if body.Status != nil {
			emp.Status = *body.Status
		}
		if body.SupervisorID != nil {
			if emp.SupervisorID, err = supervisorRef(ctx, users, body.SupervisorID); err != nil {
				return err
			}
		}
		if err := employees.Save(ctx, emp); err != nil {
			return err
		}

		auditor.RecordFor(c, audit.LogOptions{
			EntityType:  audit.EntityEmployee,
			EntityID:    emp.EmployeeID,
			Action:      models.AuditActionUpdate,
			Description: "Employee " + emp.Name + " updated",
			Before:      before,
			After:       emp,
		})
		return c.JSON(emp)
	}
}

func DeleteEmployeeHandler(employees repository.EmployeeRepo, auditor *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		emp, err := employees.Get(ctx, c.Params("employeeId"))
		if err != nil {
			return err
		}
		if err := employees.Delete(ctx, emp.EmployeeID); err != nil {
			return err
		}

		auditor.RecordFor(c, audit.LogOptions{
			EntityType:  audit.EntityEmployee,
			EntityID:    emp.EmployeeID,
			Action:      models.AuditActionDelete,
			Description: "Employee " + emp.Name + " deleted",
			Before:      emp,
		})
		return c.JSON(fiber.Map{"message": "Employee deleted successfully"})
	}
}
