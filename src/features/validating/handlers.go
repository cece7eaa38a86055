package validating

import (
	"log/slog"

	"github.com/contre95/rattlesnake/src/features/jobs"
	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the validating feature.
type Handler struct {
	service    *Service
	jobService jobs.JobService
}

// NewHandler creates a new handler for the validating feature.
func NewHandler(service *Service, jobService jobs.JobService) *Handler {
	return &Handler{service: service, jobService: jobService}
}

// StartScan starts a background scan job.
func (h *Handler) StartScan(c *fiber.Ctx) error {
	type scanRequest struct {
		Path      string `json:"path"`
		Recursive *bool  `json:"recursive"`
	}
	var req scanRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "cannot parse request body",
			})
		}
	}

	cfg := h.service.config.Get()
	path := req.Path
	if path == "" {
		path = cfg.LibraryPath
	}
	recursive := cfg.Validation.Recursive
	if req.Recursive != nil {
		recursive = *req.Recursive
	}

	jobID, err := h.jobService.StartJob("library_scan", "Library Scan", map[string]any{
		"path":      path,
		"recursive": recursive,
	})
	if err != nil {
		slog.Error("Failed to start scan job", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to start scan job",
		})
	}

	slog.Info("Scan job started", "jobID", jobID, "path", path, "recursive", recursive)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"jobID": jobID})
}

// LatestScan returns the summary of the most recent completed scan.
func (h *Handler) LatestScan(c *fiber.Ctx) error {
	run := h.service.Latest()
	if run == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no scan has completed yet",
		})
	}
	return c.JSON(fiber.Map{
		"runID":     run.ID,
		"root":      run.Root,
		"recursive": run.Recursive,
		"started":   run.StartedAt,
		"duration":  run.Duration.String(),
		"total":     run.TotalFiles(),
		"issues":    run.FilesWithIssues(),
		"errors":    run.FilesWithErrors(),
	})
}
