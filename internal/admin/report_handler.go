package admin

import (
	"time"

	"textile-backend/internal/models"
	"textile-backend/internal/quality"
	"textile-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// GET /api/admin/reports/summary
func ReportSummaryHandler(svc *quality.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		criteria, err := quality.ParseCriteria(c.Query)
		if err != nil {
			return err
		}
		entries, err := svc.List(c.UserContext(), criteria)
		if err != nil {
			return err
		}
		return c.JSON(quality.Summarize(entries))
	}
}

// GET /api/admin/reports/quality-stats
func QualityStatsHandler(svc *quality.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		criteria, err := quality.ParseCriteria(c.Query)
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

// GET /api/admin/reports/employee-production/:employeeId
func EmployeeProductionHandler(svc *quality.Service, employees repository.EmployeeRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		criteria, err := quality.ParseCriteria(c.Query)
		if err != nil {
			return err
		}
		ctx := c.UserContext()
		emp, err := employees.Get(ctx, c.Params("employeeId"))
		if err != nil {
			return err
		}
		criteria.EmployeeID = emp.EmployeeID

		entries, err := svc.List(ctx, criteria)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"employeeId":   emp.EmployeeID,
			"employeeName": emp.Name,
			"stats":        quality.ProductionStats(entries),
		})
	}
}

// GET /api/admin/reports/product-production/:productId
func ProductProductionHandler(svc *quality.Service, products repository.ProductRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		criteria, err := quality.ParseCriteria(c.Query)
		if err != nil {
			return err
		}
		ctx := c.UserContext()
		p, err := products.Get(ctx, c.Params("productId"))
		if err != nil {
			return err
		}
		criteria.ProductID = p.ID

		entries, err := svc.List(ctx, criteria)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"productId":   p.ID,
			"productName": p.Name,
			"stats":       quality.ProductionStats(entries),
		})
	}
}

// GET /api/admin/reports/export
func ExportReportHandler(svc *quality.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		criteria, err := quality.ParseCriteria(c.Query)
		if err != nil {
			return err
		}
		entries, err := svc.List(c.UserContext(), criteria)
		if err != nil {
			return err
		}
		return quality.SendWorkbook(c, entries, "quality-report")
	}
}

type SupervisorReport struct {
	UserID        string                  `json:"userId"`
	Name          string                  `json:"name"`
	TotalEntries  int                     `json:"totalEntries"`
	TotalValue    float64                 `json:"totalValue"`
	LastActivity  *string                 `json:"lastActivity"`
	RecentEntries []quality.EntryResponse `json:"recentEntries"`
}

const recentEntryCount = 5

// GET /api/admin/supervisor-reports
//
// One fetch covers every supervisor; each row is carved out of it.
func SupervisorReportsHandler(svc *quality.Service, users repository.UserRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		criteria, err := quality.ParseCriteria(c.Query)
		if err != nil {
			return err
		}
		ctx := c.UserContext()

		supervisors, err := users.List(ctx, models.RoleSupervisor)
		if err != nil {
			return err
		}
		if criteria.SupervisorID != "" {
			supervisors = lo.Filter(supervisors, func(u models.User, _ int) bool {
				return u.UserID == criteria.SupervisorID
			})
		}

		entries, err := svc.List(ctx, criteria)
		if err != nil {
			return err
		}

		reports := make([]SupervisorReport, 0, len(supervisors))
		for _, s := range supervisors {
			own := quality.FilterEntries(entries, quality.Criteria{SupervisorID: s.UserID})
			summary := quality.Summarize(own)
			report := SupervisorReport{
				UserID:       s.UserID,
				Name:         s.Name,
				TotalEntries: summary.TotalEntries,
				TotalValue:   summary.TotalValue,
			}
			if len(own) > 0 {
				last := own[0].Date.Format(quality.DateLayout)
				report.LastActivity = &last
			}
			recent := own
			if len(recent) > recentEntryCount {
				recent = recent[:recentEntryCount]
			}
			report.RecentEntries = quality.ToResponses(recent)
			reports = append(reports, report)
		}
		return c.JSON(reports)
	}
}

type AdminStats struct {
	Users           int64 `json:"users"`
	Admins          int64 `json:"admins"`
	Supervisors     int64 `json:"supervisors"`
	Employees       int64 `json:"employees"`
	ActiveEmployees int64 `json:"activeEmployees"`
	Products        int64 `json:"products"`
	Entries         int64 `json:"entries"`
	EntriesToday    int64 `json:"entriesToday"`
	Contacts        int64 `json:"contacts"`
	Gallery         int64 `json:"gallery"`
}

// GET /api/admin/stats
func StatsHandler(
	users repository.UserRepo,
	employees repository.EmployeeRepo,
	products repository.ProductRepo,
	entries *quality.Service,
	contacts repository.ContactRepo,
	gallery repository.GalleryRepo,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		var (
			s   AdminStats
			err error
		)
		if s.Admins, err = users.Count(ctx, models.RoleAdmin); err != nil {
			return err
		}
		if s.Supervisors, err = users.Count(ctx, models.RoleSupervisor); err != nil {
			return err
		}
		s.Users = s.Admins + s.Supervisors
		if s.Employees, err = employees.Count(ctx, repository.EmployeeFilter{}); err != nil {
			return err
		}
		if s.ActiveEmployees, err = employees.Count(ctx, repository.EmployeeFilter{Status: models.EmployeeActive}); err != nil {
			return err
		}
		if s.Products, err = products.Count(ctx, false); err != nil {
			return err
		}
		if s.Entries, err = entries.Count(ctx, quality.Criteria{}); err != nil {
			return err
		}
		today := quality.StartOfDay(time.Now().UTC())
		if s.EntriesToday, err = entries.Count(ctx, quality.Criteria{From: &today, To: &today}); err != nil {
			return err
		}
		if s.Contacts, err = contacts.Count(ctx); err != nil {
			return err
		}
		if s.Gallery, err = gallery.Count(ctx); err != nil {
			return err
		}
		return c.JSON(s)
	}
}
