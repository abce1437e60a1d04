package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/soltixdb/colstats/internal/catalog"
	"github.com/soltixdb/colstats/internal/config"
	"github.com/soltixdb/colstats/internal/handlers"
	"github.com/soltixdb/colstats/internal/logging"
	"github.com/soltixdb/colstats/internal/middleware"
	"github.com/soltixdb/colstats/internal/statistics"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, cat *catalog.Catalog, cfg config.Config, opts statistics.Options) *handlers.Handler {
	h := handlers.New(logger, cat, cfg, opts)

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger, logging.DefaultMiddlewareConfig()))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	v1 := app.Group("/v1", middleware.APIKeyAuth(logger, cfg.Auth))

	v1.Get("/files/*", h.GetFileStats)
	v1.Delete("/files/*", h.InvalidateFile)
	v1.Get("/columns", h.GetColumnStats)
	v1.Post("/reconstruct", h.Reconstruct)

	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, cat *catalog.Catalog, cfg config.Config, opts statistics.Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "colstats",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, cat, cfg, opts)

	return app
}
