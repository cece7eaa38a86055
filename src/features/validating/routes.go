package validating

import (
	"github.com/contre95/rattlesnake/src/features/jobs"
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the validating feature.
func RegisterRoutes(app *fiber.App, service *Service, jobService jobs.JobService) {
	handler := NewHandler(service, jobService)

	app.Post("/scan", handler.StartScan)
	app.Get("/scans/latest", handler.LatestScan)
}
