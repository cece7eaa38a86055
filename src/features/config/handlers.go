package config

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the config feature.
type Handler struct {
	configManager *Manager
}

// NewHandler creates a new handler for the config feature.
func NewHandler(configManager *Manager) *Handler {
	return &Handler{
		configManager: configManager,
	}
}

// GetConfig returns the current configuration in the requested format.
func (h *Handler) GetConfig(c *fiber.Ctx) error {
	slog.Debug("GetConfig handler called", "format", c.Query("fmt", "yaml"))
	format := c.Query("fmt", "yaml")

	switch format {
	case "yaml":
		c.Set("Content-Type", "text/yaml")
		return c.SendString(h.configManager.GetYAML())
	case "json":
		c.Set("Content-Type", "application/json")
		return c.SendString(h.configManager.GetJSON())
	default:
		return c.Status(fiber.StatusBadRequest).SendString("Invalid format. Use 'json' or 'yaml'")
	}
}

// DownloadDatabase serves the scan history database file for download.
func (h *Handler) DownloadDatabase(c *fiber.Ctx) error {
	slog.Debug("DownloadDatabase handler called")

	cfg := h.configManager.Get()
	if !cfg.Database.Enabled || cfg.Database.Path == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Scan history database not enabled")
	}

	filename := filepath.Base(cfg.Database.Path)
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Set("Content-Type", "application/octet-stream")
	return c.SendFile(cfg.Database.Path)
}
