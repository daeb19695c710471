// Package api builds the Fiber application: middleware, the error
// translation boundary and the route tree.
package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/graphql-go/graphql"
	"github.com/ortelius/cms-auth/internal/apperror"
	"github.com/ortelius/cms-auth/internal/config"
	"github.com/ortelius/cms-auth/restapi"
	"github.com/ortelius/cms-auth/restapi/modules/auth"
	"go.uber.org/zap"
)

// Options carries what NewFiberApp needs to build the app
type Options struct {
	Config  *config.Config
	Service *auth.Service
	Schema  graphql.Schema
	Logger  *zap.Logger
	// AccessLog disables the request log line when false
	AccessLog bool
}

// NewFiberApp creates and configures a Fiber app with REST and GraphQL routes
func NewFiberApp(opts Options) *fiber.App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:      "cms-auth API v1.0",
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  30 * time.Second,
		ErrorHandler: ErrorHandler(log),
	})

	// Middleware
	app.Use(fiberrecover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(opts.Config.CORSOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: false,
		AllowMethods:     "GET, POST, HEAD, OPTIONS",
	}))

	if opts.AccessLog {
		app.Use(logger.New())
	}

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	restapi.SetupRoutes(app, opts.Config.BasePath, opts.Service, opts.Schema)

	return app
}

// ErrorHandler is the single place errors become HTTP responses.
// Fiber's own errors keep their status; everything else goes through
// apperror.Translate and unclassified failures are logged, not returned.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(apperror.Response{Message: fiberErr.Message})
		}

		status, body := apperror.Translate(err)
		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}
		return c.Status(status).JSON(body)
	}
}
