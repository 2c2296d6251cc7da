package quality

import (
	"bytes"
	"time"

	"textile-backend/internal/apperr"
	"textile-backend/internal/audit"
	"textile-backend/internal/auth"
	"textile-backend/internal/models"
	"textile-backend/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// Scope decides whose entries a route may touch.
type Scope int

const (
	// AnySupervisor is the admin view.
	AnySupervisor Scope = iota
	// OwnEntries limits a supervisor to the entries they recorded.
	OwnEntries
)

// supervisorFilter returns the supervisor id lookups must be restricted to,
// or "" for AnySupervisor.
func supervisorFilter(c *fiber.Ctx, scope Scope) (string, error) {
	if scope == AnySupervisor {
		return "", nil
	}
	actor, err := auth.Current(c)
	if err != nil {
		return "", err
	}
	return actor.UserID, nil
}

// GET .../quality-entries?employeeId=&productId=&supervisorId=&startDate=&endDate=&status=
func ListEntriesHandler(svc *Service, scope Scope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		criteria, err := ParseCriteria(c.Query)
		if err != nil {
			return err
		}
		owner, err := supervisorFilter(c, scope)
		if err != nil {
			return err
		}
		if owner != "" {
			criteria.SupervisorID = owner
		}

		entries, err := svc.List(c.UserContext(), criteria)
		if err != nil {
			return err
		}
		return c.JSON(ToResponses(entries))
	}
}

func GetEntryHandler(svc *Service, scope Scope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		owner, err := supervisorFilter(c, scope)
		if err != nil {
			return err
		}
		entry, err := svc.Get(c.UserContext(), c.Params("id"), owner)
		if err != nil {
			return err
		}
		return c.JSON(ToResponse(entry))
	}
}

// CreateEntryHandler records an entry as the calling supervisor.
func CreateEntryHandler(svc *Service, auditor *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.Current(c)
		if err != nil {
			return err
		}

		var body CreateRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return err
		}
		in, err := body.Input(actor.UserID, actor.Name)
		if err != nil {
			return err
		}

		entry, err := svc.Record(c.UserContext(), in)
		if err != nil {
			return err
		}

		auditor.RecordFor(c, audit.LogOptions{
			EntityType:  audit.EntityQualityEntry,
			EntityID:    entry.ID,
			Action:      models.AuditActionCreate,
			Description: "Quality entry recorded for " + entry.EmployeeName,
			After:       entry,
		})
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Quality entry created successfully",
			"entry":   ToResponse(entry),
		})
	}
}

func UpdateEntryHandler(svc *Service, auditor *audit.Service, scope Scope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return err
		}
		in, err := body.Input()
		if err != nil {
			return err
		}
		owner, err := supervisorFilter(c, scope)
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		before, err := svc.Get(ctx, c.Params("id"), owner)
		if err != nil {
			return err
		}
		snapshot := *before

		entry, err := svc.Update(ctx, before.ID, owner, in)
		if err != nil {
			return err
		}

		auditor.RecordFor(c, audit.LogOptions{
			EntityType:  audit.EntityQualityEntry,
			EntityID:    entry.ID,
			Action:      models.AuditActionUpdate,
			Description: "Quality entry for " + entry.EmployeeName + " updated",
			Before:      snapshot,
			After:       entry,
		})
		return c.JSON(ToResponse(entry))
	}
}

// PATCH .../quality-entries/:id/status
func SetEntryStatusHandler(svc *Service, auditor *audit.Service, scope Scope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StatusRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return err
		}
		owner, err := supervisorFilter(c, scope)
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		before, err := svc.Get(ctx, c.Params("id"), owner)
		if err != nil {
			return err
		}
		snapshot := *before

		entry, err := svc.SetStatus(ctx, before.ID, owner, body.Status)
		if err != nil {
			return err
		}
		if snapshot.Status != entry.Status {
			auditor.RecordFor(c, audit.LogOptions{
				EntityType:  audit.EntityQualityEntry,
				EntityID:    entry.ID,
				Action:      models.AuditActionUpdate,
				Description: "Quality entry status changed to " + string(entry.Status),
				Before:      snapshot,
				After:       entry,
			})
		}
		return c.JSON(ToResponse(entry))
	}
}

// DeleteEntryHandler moves the entry to the deleted state.
func DeleteEntryHandler(svc *Service, auditor *audit.Service, scope Scope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		owner, err := supervisorFilter(c, scope)
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		before, err := svc.Get(ctx, c.Params("id"), owner)
		if err != nil {
			return err
		}
		snapshot := *before

		if _, err := svc.Delete(ctx, before.ID, owner); err != nil {
			return err
		}

		auditor.RecordFor(c, audit.LogOptions{
			EntityType:  audit.EntityQualityEntry,
			EntityID:    snapshot.ID,
			Action:      models.AuditActionDelete,
			Description: "Quality entry for " + snapshot.EmployeeName + " deleted",
			Before:      snapshot,
		})
		return c.JSON(fiber.Map{"message": "Quality entry deleted successfully"})
	}
}

// SendWorkbook writes entries as an XLSX attachment named prefix-YYYYMMDD.xlsx.
func SendWorkbook(c *fiber.Ctx, entries []models.QualityEntry, prefix string) error {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, entries, Summarize(entries)); err != nil {
		return apperr.New(apperr.KindInternal, "Report could not be generated", err)
	}
	c.Attachment(prefix + "-" + time.Now().UTC().Format("20060102") + ".xlsx")
	c.Set(fiber.HeaderContentType, XLSXContentType)
	return c.Send(buf.Bytes())
}
