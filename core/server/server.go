package server

import (
	"mini-orm/core/loader"
	"mini-orm/core/logger"
	"mini-orm/core/metrics"
	"mini-orm/core/middleware/auth"
	"mini-orm/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Options gathers the collaborators of the HTTP application.
type Options struct {
	Config   Config
	Logger   *zap.Logger
	Metrics  *metrics.Collector
	Features *loader.Manager
}

// New builds the Fiber application: request ids, request logging, public
// health, metrics and swagger routes, then the API key guard and every
// enabled feature.
func New(opts Options) (*fiber.App, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We log our own startup message
	})

	// RayID must be first to trace everything
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(log, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))
	}

	// Swagger documentation (public)
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: opts.Config.ApiKey}))

	if opts.Features != nil {
		if err := opts.Features.LoadAll(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}
