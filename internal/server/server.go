package server

import (
	"context"
	"strings"

	"ai-workspace-be/internal/bootstrap"
	"ai-workspace-be/internal/config"
	"ai-workspace-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

// corsConfig allows credentials only for explicit origins; fiber refuses
// credentials together with a wildcard.
func corsConfig(origins string) cors.Config {
	origins = strings.TrimSpace(origins)
	if origins == "" {
		origins = "*"
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: origins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             10 * 1024 * 1024, // 10MB
		ErrorHandler:          serverutils.NewErrorHandler(container.Logger),
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(recover.New())
	app.Use(cors.New(corsConfig(cfg.App.CorsAllowedOrigins)))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.RequestLogger(container.Logger, container.Metrics))
	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	app.Get("/metrics", container.Metrics.Handler())

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("SERVER", "Listening", map[string]interface{}{"port": s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.HealthController.RegisterRoutes(api)

	c.AuthController.RegisterRoutes(api, c.JwtMiddleware)
	c.ProfileController.RegisterRoutes(api, c.JwtMiddleware)

	c.WorkspaceController.RegisterRoutes(api, c.JwtMiddleware)
	c.MemberController.RegisterRoutes(api, c.JwtMiddleware)

	c.NoteController.RegisterRoutes(api, c.JwtMiddleware)
	c.DocumentController.RegisterRoutes(api, c.JwtMiddleware)
	c.CardController.RegisterRoutes(api, c.JwtMiddleware)

	c.ChatController.RegisterRoutes(api, c.JwtMiddleware, c.WsMiddleware)
	c.SearchController.RegisterRoutes(api, c.JwtMiddleware)
	c.AIController.RegisterRoutes(api, c.JwtMiddleware)

	app.Use(func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route not found")
	})
}
