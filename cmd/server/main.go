package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"susu-dashboard/internal/adapters/backend"
	"susu-dashboard/internal/adapters/http/middleware"
	"susu-dashboard/internal/adapters/http/routes"
	"susu-dashboard/internal/adapters/persistence/models"
	"susu-dashboard/internal/adapters/persistence/repositories"
	"susu-dashboard/internal/config"
	"susu-dashboard/internal/core/services"
	"susu-dashboard/internal/core/session"
	"susu-dashboard/internal/pkg/secret"

	"github.com/gofiber/fiber/v2"

	_ "susu-dashboard/docs" // Swagger docs
)

// @title Susu Collection Dashboard API
// @version 1.0
// @description JSON helpers behind the susu collection dashboard (session info, cycle metrics, withdrawal prefill)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@susu.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name susu_session
// @description Signed session cookie issued by POST /login.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Session storage: in-process by default, MySQL when configured
	storage, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open session storage: %v", err)
	}
	defer config.CloseDatabase()

	api := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	store := session.NewStore(storage, services.NewAuthService(api), secret.NewSealer(cfg.Session.Secret), cfg.Session.TTL)

	// Rehydrate in the background; guarded pages answer "loading" until done
	go func() {
		if err := store.Warm(context.Background()); err != nil {
			log.Printf("⚠️ Warning: session store warm-up failed: %v", err)
			return
		}
		log.Println("✅ Session store ready")
	}()

	// Purge expired sessions on a schedule
	cronService := services.NewCronService(store, cfg.Session.PurgeSpec)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron service: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := routes.NewApp(cfg, store)

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, cfg, store, api)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s] backend=%s", cfg.Port, cfg.AppMode, api.BaseURL())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func openStorage(cfg *config.Config) (session.Storage, error) {
	if !cfg.UsesDatabase() {
		log.Println("✅ Using in-memory session storage")
		return session.NewMemoryStorage(), nil
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if err := models.AutoMigrate(db); err != nil {
		return nil, err
	}
	log.Println("✅ Database migration completed")
	return repositories.NewSessionRepository(db), nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
