package history

import "github.com/gofiber/fiber/v2"

// RegisterRoutes registers the history routes.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)
	runs := app.Group("/history")
	runs.Get("/", handler.HandleList)
	runs.Get("/:id/report", handler.HandleReport)
}
