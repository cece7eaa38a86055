package hosting

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/contre95/rattlesnake/src/features/config"
	"github.com/contre95/rattlesnake/src/features/history"
	"github.com/contre95/rattlesnake/src/features/jobs"
	"github.com/contre95/rattlesnake/src/features/metrics"
	"github.com/contre95/rattlesnake/src/features/reporting"
	"github.com/contre95/rattlesnake/src/features/validating"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Manager, scanService *validating.Service, reader validating.TagReader, thumbs reporting.Thumbnailer, historyService *history.Service, jobService *jobs.Service, metricsService *metrics.Service) *Server {
	engine := html.New("./views", ".html")
	engine.Debug(cfg.Get().Logger.Level == "debug")
	engine.AddFunc("join", strings.Join)
	engine.AddFunc("queryEscape", url.QueryEscape)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("Internal Server Error", "error", err)
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		},
		AppName:               "Rattlesnake",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	app.Use(RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	reporting.RegisterRoutes(app, scanService, reader, thumbs, cfg)
	validating.RegisterRoutes(app, scanService, jobService)
	config.RegisterRoutes(app, cfg)
	jobs.RegisterRoutes(app, jobService)
	metrics.RegisterRoutes(app, metricsService)
	if historyService.Enabled() {
		history.RegisterRoutes(app, historyService)
	}

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
