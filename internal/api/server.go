package api

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	llmref "github.com/kingfs/go-llm-reference"
	"github.com/kingfs/go-llm-reference/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Server is the catalog HTTP server.
type Server struct {
	config  *config.Config
	catalog *llmref.Catalog
	app     *fiber.App
}

// NewServer wires middleware and routes for catalog. Both arguments are required.
func NewServer(cfg *config.Config, catalog *llmref.Catalog) *Server {
	if cfg == nil || catalog == nil {
		panic("api: config and catalog are required")
	}
	s := &Server{config: cfg, catalog: catalog}
	s.app = createFiberApp(cfg)
	setupMiddleware(s.app, cfg)
	setupRoutes(s.app, catalog)
	return s
}

// App exposes the underlying fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App { return s.app }

// Run starts listening and blocks until SIGINT/SIGTERM or a listener error,
// then shuts down gracefully.
func (s *Server) Run() error {
	config.SetupLogLevel(s.config.GetNormalizedLogLevel())

	listenAddr := ":" + s.config.Server.Port
	fiberlog.Infof("llmref starting on %s (env=%s, models=%d, go=%s)",
		listenAddr, s.config.Server.Environment, s.catalog.Len(), runtime.Version())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := s.app.Listen(listenAddr); err != nil {
			serverErrChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		fiberlog.Infof("Received signal: %v. Starting graceful shutdown...", sig)
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	fiberlog.Info("Server shutdown completed successfully")
	return nil
}

func createFiberApp(cfg *config.Config) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "llmref",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           time.Minute,
		CaseSensitive:         true,
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          ErrorHandler,
	})
}

func setupMiddleware(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !cfg.IsProduction(),
	}))

	var out io.Writer = os.Stdout
	if cfg.Server.Environment == "test" {
		out = io.Discard
	}
	format := "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n"
	if cfg.IsProduction() {
		format = "${time} ${status} ${method} ${path} ${latency} ${bytesSent}b\n"
	}
	app.Use(logger.New(logger.Config{Format: format, Output: out}))

	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(etag.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: "GET, HEAD, OPTIONS",
		MaxAge:       86400,
	}))
}

func setupRoutes(app *fiber.App, catalog *llmref.Catalog) {
	health := NewHealthHandler(catalog)
	h := NewCatalogHandler(catalog)

	app.Get("/health", health.HealthCheck)
	app.Get("/llms.txt", h.Text)

	v := app.Group("/api")
	v.Get("/models", h.List)
	v.Get("/models/:id", h.Get)
	v.Get("/models/:id/snippets", h.Snippets)
	v.Get("/facets", h.Facets)
	v.Get("/compare", h.Compare)
}
