package routes

import (
	"susu-dashboard/internal/adapters/backend"
	"susu-dashboard/internal/adapters/http/handlers"
	"susu-dashboard/internal/adapters/http/middleware"
	"susu-dashboard/internal/adapters/http/views"
	"susu-dashboard/internal/config"
	"susu-dashboard/internal/core/access"
	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/core/services"
	"susu-dashboard/internal/core/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// AppName is shown in the server banner
const AppName = "Susu Collection Dashboard v1.0"

// NewApp creates the fiber app with the views and the error handler
func NewApp(cfg *config.Config, store *session.Store) *fiber.App {
	return fiber.New(views.Config(AppName, middleware.NewErrorHandler(store, cfg)))
}

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, store *session.Store, api *backend.Client) {
	// Initialize services
	userService := services.NewUserService(api)
	clientService := services.NewClientService(api)
	cycleService := services.NewCycleService(api)
	depositService := services.NewDepositService(api)
	withdrawalService := services.NewWithdrawalService(api)
	commissionService := services.NewCommissionService(api)
	reportService := services.NewReportService(api)
	dashboardService := services.NewDashboardService(clientService, cycleService, depositService, commissionService, reportService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(store, api)
	authHandler := handlers.NewAuthHandler(store, cfg)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	userHandler := handlers.NewUserHandler(userService)
	clientHandler := handlers.NewClientHandler(clientService, cycleService)
	cycleHandler := handlers.NewCycleHandler(cycleService, clientService, depositService, withdrawalService)
	depositHandler := handlers.NewDepositHandler(depositService, cycleService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService, cycleService)
	reportHandler := handlers.NewReportHandler(reportService)
	apiHandler := handlers.NewAPIHandler(cycleService, depositService)

	// Health check & docs
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, store, cfg, healthHandler, apiHandler)

	// HTML pages
	pages := app.Group("", middleware.NoCacheHeaders())
	setupAuthRoutes(pages, authHandler)

	guard := func(allow ...domain.Role) fiber.Handler {
		return middleware.Guard(store, cfg, allow...)
	}

	pages.Get("/", guard(), dashboardHandler.Index)
	setupUserRoutes(pages.Group("/users", guard(domain.RoleAdmin)), userHandler)
	setupClientRoutes(pages.Group("/clients", guard()), clientHandler)
	setupCycleRoutes(pages.Group("/cycles", guard()), cycleHandler)
	setupDepositRoutes(pages.Group("/deposits", guard()), depositHandler)
	setupWithdrawalRoutes(pages.Group("/withdrawals", guard()), withdrawalHandler)
	setupReportRoutes(pages.Group("/reports", guard(domain.RoleAdmin)), reportHandler)

	// Unknown paths land on the dashboard
	app.Use(func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet {
			return c.Redirect("/")
		}
		return fiber.ErrNotFound
	})
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(router fiber.Router, store *session.Store, cfg *config.Config, healthHandler *handlers.HealthHandler, handler *handlers.APIHandler) {
	router.Get("/", healthHandler.APIInfo)

	protected := router.Group("", middleware.Guard(store, cfg))
	protected.Get("/session", handler.Session)
	protected.Get("/cycles/:id/metrics", handler.CycleMetrics)
	protected.Get("/cycles/:id/prefill", handler.Prefill)
}

// setupAuthRoutes configures sign-in and sign-out
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler) {
	router.Get("/login", handler.LoginPage)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)
}

// setupUserRoutes configures user management routes (Admin, read-only for Accountant)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	manage := middleware.RequireCapability(access.ManageUsers)

	router.Get("/", handler.List)
	router.Get("/new", manage, handler.New)
	router.Post("/", manage, handler.Create)
	router.Get("/:id", handler.Show)
	router.Get("/:id/edit", manage, handler.Edit)
	router.Post("/:id", manage, handler.Update)
	router.Post("/:id/password", manage, handler.ChangePassword)
	router.Post("/:id/activate", manage, handler.Activate)
	router.Post("/:id/deactivate", manage, handler.Deactivate)
	router.Post("/:id/delete", manage, handler.Delete)
}

// setupClientRoutes configures client routes
func setupClientRoutes(router fiber.Router, handler *handlers.ClientHandler) {
	router.Get("/", handler.List)
	router.Get("/new", middleware.RequireCapability(access.CreateClient), handler.New)
	router.Post("/", middleware.RequireCapability(access.CreateClient), handler.Create)
	router.Get("/:id", handler.Show)
	router.Get("/:id/edit", middleware.RequireCapability(access.EditClient), handler.Edit)
	router.Post("/:id", middleware.RequireCapability(access.EditClient), handler.Update)
	router.Post("/:id/delete", middleware.RequireCapability(access.DeleteClient), handler.Delete)
}

// setupCycleRoutes configures savings cycle routes
func setupCycleRoutes(router fiber.Router, handler *handlers.CycleHandler) {
	router.Get("/", handler.List)
	router.Get("/new", middleware.RequireCapability(access.CreateCycle), handler.New)
	router.Post("/", middleware.RequireCapability(access.CreateCycle), handler.Create)
	router.Get("/:id", handler.Show)
	router.Get("/:id/edit", middleware.RequireCapability(access.EditCycle), handler.Edit)
	router.Post("/:id", middleware.RequireCapability(access.EditCycle), handler.Update)
	router.Post("/:id/complete", middleware.RequireCapability(access.CompleteCycle), handler.Complete)
	router.Post("/:id/delete", middleware.RequireCapability(access.DeleteCycle), handler.Delete)
}

// setupDepositRoutes configures deposit routes
func setupDepositRoutes(router fiber.Router, handler *handlers.DepositHandler) {
	router.Get("/", handler.List)
	router.Get("/new", middleware.RequireCapability(access.CreateDeposit), handler.New)
	router.Post("/", middleware.RequireCapability(access.CreateDeposit), handler.Create)
	router.Get("/:id", handler.Show)
	router.Get("/:id/edit", middleware.RequireCapability(access.EditDeposit), handler.Edit)
	router.Post("/:id", middleware.RequireCapability(access.EditDeposit), handler.Update)
	router.Post("/:id/delete", middleware.RequireCapability(access.DeleteDeposit), handler.Delete)
}

// setupWithdrawalRoutes configures withdrawal request routes
func setupWithdrawalRoutes(router fiber.Router, handler *handlers.WithdrawalHandler) {
	router.Get("/", handler.List)
	router.Get("/new", middleware.RequireCapability(access.RequestWithdrawal), handler.New)
	router.Post("/", middleware.RequireCapability(access.RequestWithdrawal), handler.Create)
	router.Get("/:id", handler.Show)
	router.Get("/:id/edit", middleware.RequireCapability(access.EditWithdrawal), handler.Edit)
	router.Post("/:id", middleware.RequireCapability(access.EditWithdrawal), handler.Update)
	router.Post("/:id/approve", middleware.RequireCapability(access.ApproveWithdrawal), handler.Approve)
	router.Post("/:id/reject", middleware.RequireCapability(access.RejectWithdrawal), handler.Reject)
	router.Post("/:id/delete", middleware.RequireCapability(access.DeleteWithdrawal), handler.Delete)
}

// setupReportRoutes configures report and export routes (Admin, Accountant)
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Get("/", handler.Index)
	router.Get("/export.csv", handler.ExportCSV)
	router.Get("/export.pdf", handler.ExportPDF)
}
