package reporting

import (
	"github.com/contre95/rattlesnake/src/features/config"
	"github.com/contre95/rattlesnake/src/features/validating"
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the reporting routes.
func RegisterRoutes(app *fiber.App, scans *validating.Service, reader validating.TagReader, thumbs Thumbnailer, cfg *config.Manager) {
	handler := NewHandler(scans, reader, thumbs, cfg)
	app.Get("/", handler.Index)
	app.Get("/report", handler.GetReport)
	app.Get("/artwork", handler.Artwork)
}
