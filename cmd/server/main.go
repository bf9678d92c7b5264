package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/iankorovinsky/lifeos/internal/config"
	"github.com/iankorovinsky/lifeos/internal/database"
	"github.com/iankorovinsky/lifeos/internal/handlers"
	"github.com/iankorovinsky/lifeos/internal/logger"
	"github.com/iankorovinsky/lifeos/internal/middleware"
	"github.com/iankorovinsky/lifeos/internal/models"
	"github.com/iankorovinsky/lifeos/internal/types"

	_ "github.com/iankorovinsky/lifeos/docs/api" // Swagger docs
)

// @title LifeOS Rolodex API
// @version 1.0.0
// @description Ownership-scoped CRUD backend for the LifeOS rolodex: people, tags, asks, favours, and integration stubs.

// @contact.name API Support
// @contact.url https://github.com/iankorovinsky/lifeos

// @host localhost:3001
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey UserHeader
// @in header
// @name X-User-Id

func main() {
	// .env is optional; real deployments set the environment directly
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("lifeos-api", "info")
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New("lifeos-api", cfg.LogLevel)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Str("db_type", cfg.DBType).Str("db_name", cfg.DBDatabase).Msg("database ready")

	app := newApp(cfg, db)

	// Graceful shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigs
		log.Info().Msg("gracefully shutting down")
		_ = app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}

	log.Info().Msg("server stopped")
}

// newApp builds the Fiber application with all middleware and routes.
func newApp(cfg *config.Config, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("lifeos")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}
	api.Get("/health", healthHandler.Get)

	// Everything below requires a verified identity
	userHandler := &handlers.UsersHandler{DB: db}
	users := api.Group("/users", middleware.RequireUser())
	users.Post("/sync", userHandler.Sync)
	users.Get("/me", userHandler.Me)

	rolodex := api.Group("/rolodex", middleware.RequireUser())

	peopleHandler := &handlers.PeopleHandler{DB: db}
	rolodex.Get("/people", peopleHandler.List)
	rolodex.Post("/people", peopleHandler.Create)
	rolodex.Get("/people/:id", peopleHandler.Get)
	rolodex.Put("/people/:id", peopleHandler.Update)
	rolodex.Delete("/people/:id", peopleHandler.Delete)
	rolodex.Post("/people/:id/roles", peopleHandler.CreateRole)
	rolodex.Post("/people/:id/notes", peopleHandler.CreateNote)

	tagsHandler := &handlers.TagsHandler{DB: db}
	rolodex.Get("/tags", tagsHandler.List)
	rolodex.Post("/tags", tagsHandler.Create)
	rolodex.Put("/tags/:id", tagsHandler.Update)
	rolodex.Delete("/tags/:id", tagsHandler.Delete)

	asksHandler := &handlers.TasksHandler{DB: db, Kind: models.TaskKindAsk}
	rolodex.Get("/asks", asksHandler.List)
	rolodex.Post("/asks", asksHandler.Create)
	rolodex.Put("/asks/:id", asksHandler.Update)
	rolodex.Delete("/asks/:id", asksHandler.Delete)

	favoursHandler := &handlers.TasksHandler{DB: db, Kind: models.TaskKindFavour}
	rolodex.Get("/favours", favoursHandler.List)
	rolodex.Post("/favours", favoursHandler.Create)
	rolodex.Put("/favours/:id", favoursHandler.Update)
	rolodex.Delete("/favours/:id", favoursHandler.Delete)

	integrationsHandler := &handlers.IntegrationsHandler{DB: db}
	integrations := api.Group("/integrations", middleware.RequireUser())
	integrations.Get("/", integrationsHandler.List)
	integrations.Post("/:type/connect", integrationsHandler.Connect)
	integrations.Post("/:type/disconnect", integrationsHandler.Disconnect)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error": fiber.Map{
				"message": "Resource not found",
				"status":  fiber.StatusNotFound,
			},
		})
	})

	return app
}

// errorHandler translates errors that escape the handlers into the
// standard envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	appErr := types.AsAppError(err)

	if e, ok := err.(*fiber.Error); ok {
		appErr = &types.AppError{Status: e.Code, Message: e.Message}
	}

	return c.Status(appErr.Status).JSON(fiber.Map{
		"success": false,
		"error":   appErr,
	})
}
