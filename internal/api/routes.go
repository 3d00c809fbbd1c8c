package api

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	config "github.com/maheshrc27/insta-signature/configs"
	"github.com/maheshrc27/insta-signature/internal/api/handlers"
	"github.com/maheshrc27/insta-signature/internal/api/middleware"
	"github.com/maheshrc27/insta-signature/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies holds everything the handlers need. Refresh is called once per
// request and returns either the process-wide service or a fresh one.
type Dependencies struct {
	Instagram service.InstagramService
	Tokens    service.TokenService
	Signature service.SignatureService
	Refresh   func() service.RefreshService
	// ThumbnailDir is served under /thumbnails when non-empty.
	ThumbnailDir string
}

func SetupRoutes(cfg config.Config, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	static := handlers.NewStaticHandler(cfg.PublicDir)
	app.Get("/", static.Home())
	app.Get("/signature", static.Signature())
	app.Get("/favicon.ico", static.Favicon())

	if deps.ThumbnailDir != "" {
		app.Static("/thumbnails", deps.ThumbnailDir, fiber.Static{MaxAge: 86400})
	}
	if !cfg.Stateless() {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")
	api.Use(middleware.MethodGuard())

	instagram := handlers.NewInstagramHandler(deps.Refresh, deps.Instagram)
	api.Get("/instagram-posts", instagram.GetPosts)
	api.Get("/refresh-cache", instagram.RefreshCache)
	api.Get("/test-instagram", instagram.TestInstagram)

	signature := handlers.NewSignatureHandler(deps.Signature)
	api.Get("/signature-config", signature.GetSignatureConfig)

	debug := handlers.NewDebugHandler(cfg, deps.Tokens, deps.Refresh)
	api.Get("/debug", debug.GetDebugInfo)

	return app
}

// errorHandler keeps fiber's own status errors and hides everything else
// behind a generic 500.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	slog.Error("request failed", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
