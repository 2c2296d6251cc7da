// Package supervisor serves the supervisor dashboard. Every entry query is
// restricted to the calling supervisor.
package supervisor

import (
	"textile-backend/internal/apperr"
	"textile-backend/internal/auth"
	"textile-backend/internal/models"
	"textile-backend/internal/quality"
	"textile-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type Stats struct {
	Employees    int64 `json:"employees"`
	Products     int64 `json:"products"`
	StockEntries int64 `json:"stockEntries"`
	Reports      int64 `json:"reports"`
}

// GET /api/supervisor/stats
func StatsHandler(employees repository.EmployeeRepo, products repository.ProductRepo, entries *quality.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.Current(c)
		if err != nil {
			return err
		}
		ctx := c.UserContext()

		var s Stats
		if s.Employees, err = employees.Count(ctx, repository.EmployeeFilter{Status: models.EmployeeActive}); err != nil {
			return err
		}
		if s.Products, err = products.Count(ctx, true); err != nil {
			return err
		}
		if s.StockEntries, err = entries.Count(ctx, quality.Criteria{SupervisorID: actor.UserID}); err != nil {
			return err
		}
		s.Reports = s.StockEntries
		return c.JSON(s)
	}
}

// GET /api/supervisor/employees lists every active weaver for selection.
func ListEmployeesHandler(employees repository.EmployeeRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := employees.List(c.UserContext(), repository.EmployeeFilter{Status: models.EmployeeActive})
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

const recentEntryLimit = 50

// GET /api/supervisor/stock-entries returns the caller's most recent entries.
func RecentEntriesHandler(svc *quality.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.Current(c)
		if err != nil {
			return err
		}
		entries, err := svc.List(c.UserContext(), quality.Criteria{SupervisorID: actor.UserID})
		if err != nil {
			return err
		}
		if len(entries) > recentEntryLimit {
			entries = entries[:recentEntryLimit]
		}
		return c.JSON(quality.ToResponses(entries))
	}
}

// ownCriteria parses report filters and pins them to the caller.
func ownCriteria(c *fiber.Ctx) (quality.Criteria, error) {
	actor, err := auth.Current(c)
	if err != nil {
		return quality.Criteria{}, err
	}
	criteria, err := quality.ParseCriteria(c.Query)
	if err != nil {
		return quality.Criteria{}, err
	}
	criteria.SupervisorID = actor.UserID
	return criteria, nil
}

// GET /api/supervisor/reports?fromDate=&toDate=&employeeId=&productId=
func ReportsHandler(svc *quality.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		criteria, err := ownCriteria(c)
		if err != nil {
			return err
		}
		entries, err := svc.List(c.UserContext(), criteria)
		if err != nil {
			return err
		}
		return c.JSON(quality.ToResponses(entries))
	}
}

// GET /api/supervisor/reports/generate?...&format=json|xlsx
func GenerateReportHandler(svc *quality.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		format := c.Query("format", "json")
		if format != "json" && format != "xlsx" {
			return apperr.Validation("format must be json or xlsx")
		}
		criteria, err := ownCriteria(c)
		if err != nil {
			return err
		}
		entries, err := svc.List(c.UserContext(), criteria)
		if err != nil {
			return err
		}

		if format == "xlsx" {
			return quality.SendWorkbook(c, entries, "supervisor-report")
		}
		return c.JSON(fiber.Map{
			"message": "Report generated successfully",
			"reports": len(entries),
			"summary": quality.Summarize(entries),
			"data":    quality.ToResponses(entries),
			"filters": fiber.Map{
				"fromDate":   c.Query("fromDate", c.Query("startDate")),
				"toDate":     c.Query("toDate", c.Query("endDate")),
				"employeeId": criteria.EmployeeID,
				"productId":  criteria.ProductID,
			},
		})
	}
}

// GET /api/supervisor/stats/production
func ProductionStatsHandler(svc *quality.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		criteria, err := ownCriteria(c)
		if err != nil {
			return err
		}
		entries, err := svc.List(c.UserContext(), criteria)
		if err != nil {
			return err
		}
		return c.JSON(quality.QualityStats(entries))
	}
}
