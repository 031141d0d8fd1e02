package cmd

import (
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	fiberRecover "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/spf13/cobra"

	"animix-api/internal/database"
	"animix-api/internal/handler"
	"animix-api/internal/middleware"
	"animix-api/internal/proxy"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(c *cobra.Command, _ []string) error {
	cfg := Cfg
	svcs := NewServices(cfg)

	app := fiber.New(fiber.Config{
		AppName:      "ANIMIX API",
		ServerHeader: "animix-api",
		ErrorHandler: handler.ErrorHandler,
	})

	// Middleware
	app.Use(fiberRecover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	// Rate limiting (only with Redis)
	if cfg.Redis.Enabled() {
		rdb, err := database.NewRedis(cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, running without rate limiting", "error", err)
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("error closing Redis connection", "error", err)
				}
			}()
			limiter := middleware.NewRateLimiter(middleware.NewRedisCounter(rdb), cfg.RateLimitMax, cfg.RateLimitWindowSeconds)
			app.Use(limiter.Handler())
		}
	}

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// Routes
	app.Get("/", handler.Root)
	api := app.Group("/api")
	api.Get("/health", handler.Health)
	handler.NewAnimeHandler(svcs.Anime, cfg.FamousAnimeIDs).Register(api.Group("/anime"))
	handler.NewMangaHandler(svcs.Manga).Register(api)

	images := proxy.NewImageProxy(cfg.ImageProxyPrefixes, cfg.Providers.UserAgent, cfg.Providers.Timeout)
	api.Get("/proxy/image", images.Handler())

	// Graceful shutdown
	ctx := c.Context()
	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		slog.Info("starting animix api", "addr", addr)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		slog.Error("server error", "error", err)
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down animix api...")
	if err := app.Shutdown(); err != nil {
		slog.Error("error shutting down HTTP server", "error", err)
		return err
	}
	slog.Info("HTTP server stopped")
	return nil
}
