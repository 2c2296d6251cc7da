package audit

import (
	"strconv"

	"textile-backend/internal/apperr"
	"textile-backend/internal/auth"
	"textile-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"createdAt"`
	UserID      string             `json:"userId"`
	UserName    string             `json:"userName"`
	EntityType  string             `json:"entityType"`
	EntityID    string             `json:"entityId"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	IsUndone    bool               `json:"isUndone"`
	UndoneBy    *string            `json:"undoneBy"`
	UndoneAt    *string            `json:"undoneAt"`
}

const timeLayout = "2006-01-02 15:04:05"

// GET /api/admin/audit-logs?entityType=&entityId=&userId=&limit=
func ListAuditLogsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := ListFilter{
			EntityType: c.Query("entityType"),
			EntityID:   c.Query("entityId"),
			UserID:     c.Query("userId"),
			Limit:      200,
		}
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return apperr.Validation("limit must be a positive integer")
			}
			f.Limit = n
		}

		logs, err := svc.List(c.UserContext(), f)
		if err != nil {
			return err
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			var undoneAt *string
			if l.UndoneAt != nil {
				formatted := l.UndoneAt.Format(timeLayout)
				undoneAt = &formatted
			}
			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.Format(timeLayout),
				UserID:      l.UserID,
				UserName:    l.UserName,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				IsUndone:    l.IsUndone,
				UndoneBy:    l.UndoneBy,
				UndoneAt:    undoneAt,
			})
		}
		return c.JSON(resp)
	}
}

// POST /api/admin/audit-logs/:id/undo
func UndoAuditLogHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil || id == 0 {
			return apperr.Validation("Invalid audit log id")
		}

		actor, err := auth.Current(c)
		if err != nil {
			return err
		}

		if err := svc.Undo(c.UserContext(), uint(id), actor.UserID, actor.Name); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Change undone successfully"})
	}
}

// RecordFor records opts on behalf of the authenticated caller of c.
func (s *Service) RecordFor(c *fiber.Ctx, opts LogOptions) {
	if actor, err := auth.Current(c); err == nil {
		opts.UserID = actor.UserID
		opts.UserName = actor.Name
	}
	s.Record(c.UserContext(), opts)
}
