package history

import (
	"errors"

	"github.com/contre95/rattlesnake/src/features/reporting"
	"github.com/contre95/rattlesnake/src/music"
	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the history feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the history feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList returns the most recent stored runs.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	summaries, err := h.service.Summaries(c.Context(), limit)
	if err != nil {
		return historyError(c, err)
	}

	out := make([]fiber.Map, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, fiber.Map{
			"id":        summary.Run.ID,
			"root":      summary.Run.Root,
			"recursive": summary.Run.Recursive,
			"startedAt": summary.Run.StartedAt,
			"duration":  summary.Run.Duration.String(),
			"total":     summary.Total,
			"issues":    summary.Issues,
			"errors":    summary.Errors,
		})
	}
	return c.JSON(out)
}

// HandleReport re-renders a stored run in the requested format.
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	run, err := h.service.Run(c.Context(), c.Params("id"))
	if err != nil {
		return historyError(c, err)
	}

	format, err := reporting.ParseFormat(c.Query("format", string(reporting.FormatJSON)))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	condensed := c.QueryBool("condensed", false)

	report, err := reporting.Render(run.Results, format, condensed)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if format == reporting.FormatJSON && !condensed {
		c.Set("Content-Type", "application/json")
	} else {
		c.Set("Content-Type", "text/plain; charset=utf-8")
	}
	return c.SendString(report)
}

func historyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrDisabled):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, music.ErrRunNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
