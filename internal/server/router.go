package server

import (
	"strings"

	"textile-backend/internal/admin"
	"textile-backend/internal/audit"
	"textile-backend/internal/auth"
	"textile-backend/internal/config"
	"textile-backend/internal/dashboard"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"
	"textile-backend/internal/public"
	"textile-backend/internal/quality"
	"textile-backend/internal/ratelimit"
	"textile-backend/internal/repository"
	"textile-backend/internal/supervisor"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Deps is everything the routes need. Limiter may be nil.
type Deps struct {
	Config   *config.Config
	Log      *logger.Logger
	Verifier auth.Verifier
	Limiter  *ratelimit.Limiter

	Users     repository.UserRepo
	Employees repository.EmployeeRepo
	Products  repository.ProductRepo
	Contacts  repository.ContactRepo
	Company   repository.CompanyRepo
	Gallery   repository.GalleryRepo
	Entries   *quality.Service
	Audit     *audit.Service
}

// NewDeps wires repositories and services over db.
func NewDeps(cfg *config.Config, db *gorm.DB, log *logger.Logger, verifier auth.Verifier, limiter *ratelimit.Limiter) Deps {
	employees := repository.NewEmployeeRepo(db, log)
	products := repository.NewProductRepo(db, log)
	return Deps{
		Config:    cfg,
		Log:       log,
		Verifier:  verifier,
		Limiter:   limiter,
		Users:     repository.NewUserRepo(db, log),
		Employees: employees,
		Products:  products,
		Contacts:  repository.NewContactRepo(db, log),
		Company:   repository.NewCompanyRepo(db, log),
		Gallery:   repository.NewGalleryRepo(db, log),
		Entries:   quality.NewService(repository.NewQualityEntryRepo(db, log), employees, products, log),
		Audit:     audit.NewService(db, log),
	}
}

func corsOrigins(raw string) string {
	origins := strings.Split(raw, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return strings.Join(origins, ",")
}

func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "textile-backend",
		ErrorHandler: ErrorHandler(d.Log, d.Config.IsProduction()),
	})

	app.Use(RequestLogger(d.Log))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(d.Config.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Public
	api.Post("/auth/login", auth.LoginHandler(d.Users, d.Config.JWTSecret, d.Limiter, d.Log))
	pub := api.Group("/public")
	pub.Get("/products", public.ListProductsHandler(d.Products))
	pub.Get("/company-info", public.CompanyInfoHandler(d.Company))
	pub.Post("/contact", public.ContactHandler(d.Contacts, d.Config.ContactPhoneRegion, d.Log))

	// Protected
	protected := api.Group("", auth.JWTMiddleware(d.Verifier))
	protected.Get("/auth/me", auth.MeHandler(d.Users))
	protected.Post("/auth/logout", auth.LogoutHandler())

	registerAdmin(protected.Group("/admin", auth.RequireRole(models.RoleAdmin)), d)
	registerSupervisor(protected.Group("/supervisor", auth.RequireRole(models.RoleSupervisor)), d)

	return app
}

func registerAdmin(r fiber.Router, d Deps) {
	r.Get("/stats", admin.StatsHandler(d.Users, d.Employees, d.Products, d.Entries, d.Contacts, d.Gallery))

	for _, role := range models.Roles {
		path := "/" + role.Table()
		r.Get(path, admin.ListUsersHandler(d.Users, role))
		r.Post(path, admin.CreateUserHandler(d.Users, role))
		r.Put(path+"/:userId", admin.UpdateUserHandler(d.Users, role))
		r.Delete(path+"/:userId", admin.DeleteUserHandler(d.Users, role))
	}

	// Weavers
	r.Get("/employees", admin.ListEmployeesHandler(d.Employees))
	r.Post("/employees", admin.CreateEmployeeHandler(d.Employees, d.Users, d.Audit))
	r.Get("/employees/supervisor/:supervisorId", admin.ListSupervisorEmployeesHandler(d.Employees))
	r.Put("/employees/:employeeId", admin.UpdateEmployeeHandler(d.Employees, d.Users, d.Audit))
	r.Delete("/employees/:employeeId", admin.DeleteEmployeeHandler(d.Employees, d.Audit))

	r.Get("/products", admin.ListProductsHandler(d.Products, false))
	r.Post("/products", admin.CreateProductHandler(d.Products, d.Audit))
	r.Put("/products/:id", admin.UpdateProductHandler(d.Products, d.Audit))
	r.Delete("/products/:id", admin.DeleteProductHandler(d.Products, d.Audit))

	r.Get("/quality-entries", quality.ListEntriesHandler(d.Entries, quality.AnySupervisor))
	r.Put("/quality-entries/:id", quality.UpdateEntryHandler(d.Entries, d.Audit, quality.AnySupervisor))
	r.Patch("/quality-entries/:id/status", quality.SetEntryStatusHandler(d.Entries, d.Audit, quality.AnySupervisor))
	r.Delete("/quality-entries/:id", quality.DeleteEntryHandler(d.Entries, d.Audit, quality.AnySupervisor))

	r.Get("/company-info", admin.GetCompanyInfoHandler(d.Company))
	r.Put("/company-info", admin.UpdateCompanyInfoHandler(d.Company))

	r.Get("/contacts", admin.ListContactsHandler(d.Contacts))
	r.Delete("/contacts/:id", admin.DeleteContactHandler(d.Contacts))

	r.Get("/gallery", admin.ListGalleryHandler(d.Gallery))
	r.Post("/gallery", admin.CreateGalleryItemHandler(d.Gallery))
	r.Get("/gallery/stats", admin.GalleryStatsHandler(d.Gallery))
	r.Delete("/gallery/:id", admin.DeleteGalleryItemHandler(d.Gallery))

	// Reports
	r.Get("/reports/summary", admin.ReportSummaryHandler(d.Entries))
	r.Get("/reports/quality-stats", admin.QualityStatsHandler(d.Entries))
	r.Get("/reports/employee-production/:employeeId", admin.EmployeeProductionHandler(d.Entries, d.Employees))
	r.Get("/reports/product-production/:productId", admin.ProductProductionHandler(d.Entries, d.Products))
	r.Get("/reports/export", admin.ExportReportHandler(d.Entries))
	r.Get("/supervisor-reports", admin.SupervisorReportsHandler(d.Entries, d.Users))
	r.Get("/dashboard/production-chart", dashboard.ProductionChartHandler(d.Entries))

	r.Get("/audit-logs", audit.ListAuditLogsHandler(d.Audit))
	r.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler(d.Audit))
}

func registerSupervisor(r fiber.Router, d Deps) {
	r.Get("/stats", supervisor.StatsHandler(d.Employees, d.Products, d.Entries))
	r.Get("/employees", supervisor.ListEmployeesHandler(d.Employees))
	r.Get("/products", admin.ListProductsHandler(d.Products, true))
	r.Post("/products", admin.CreateProductHandler(d.Products, d.Audit))
	r.Put("/products/:id", admin.UpdateProductHandler(d.Products, d.Audit))

	create := quality.CreateEntryHandler(d.Entries, d.Audit)
	r.Get("/quality-entries", quality.ListEntriesHandler(d.Entries, quality.OwnEntries))
	r.Post("/quality-entries", create)
	r.Post("/stock", create)
	r.Get("/stock-entries", supervisor.RecentEntriesHandler(d.Entries))
	r.Get("/quality-entries/:id", quality.GetEntryHandler(d.Entries, quality.OwnEntries))
	r.Put("/quality-entries/:id", quality.UpdateEntryHandler(d.Entries, d.Audit, quality.OwnEntries))
	r.Delete("/quality-entries/:id", quality.DeleteEntryHandler(d.Entries, d.Audit, quality.OwnEntries))

	r.Get("/reports", supervisor.ReportsHandler(d.Entries))
	r.Get("/reports/generate", supervisor.GenerateReportHandler(d.Entries))
	r.Get("/stats/production", supervisor.ProductionStatsHandler(d.Entries))
}
