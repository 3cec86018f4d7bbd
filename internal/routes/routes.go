package routes

import (
	"log/slog"

	"blog-backend/config"
	"blog-backend/internal/auth"
	"blog-backend/internal/chat"
	"blog-backend/internal/controllers"
	"blog-backend/internal/metrics"
	"blog-backend/internal/repository"
	"blog-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// Deps is everything the HTTP layer is built from.
type Deps struct {
	Config  config.Config
	Store   *repository.Store
	Storage storage.Storage
	Hub     *chat.Hub
	Relay   *chat.Relay
	Log     *slog.Logger
}

// NewApp wires middleware and every route group.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		// handler strings end up in the memory store, so they must not alias request buffers
		Immutable:             true,
		BodyLimit:             16 * 1024 * 1024,
		DisableStartupMessage: true,
		ErrorHandler:          controllers.ErrorHandler(d.Log),
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", metrics.Handler())

	tokens := auth.NewTokens(d.Config.JWTSecret, d.Config.JWTExpiration)

	SetupAuth(app, d, tokens)
	SetupPosts(app, d, tokens)
	SetupComments(app, d)
	SetupUploads(app, d)
	SetupChat(app, d)

	return app
}
