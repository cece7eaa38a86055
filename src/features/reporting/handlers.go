package reporting

import (
	"log/slog"

	"github.com/contre95/rattlesnake/src/features/config"
	"github.com/contre95/rattlesnake/src/features/validating"
	"github.com/gofiber/fiber/v2"
)

// Thumbnailer shrinks raw image bytes for the web view.
type Thumbnailer interface {
	Thumbnail(data []byte, maxSize int, quality int) ([]byte, error)
}

// Handler is the handler for the reporting feature.
type Handler struct {
	scans  *validating.Service
	reader validating.TagReader
	thumbs Thumbnailer
	config *config.Manager
}

// NewHandler creates a new handler for the reporting feature.
func NewHandler(scans *validating.Service, reader validating.TagReader, thumbs Thumbnailer, cfg *config.Manager) *Handler {
	return &Handler{scans: scans, reader: reader, thumbs: thumbs, config: cfg}
}

// Index renders the HTML report view.
func (h *Handler) Index(c *fiber.Ctx) error {
	data := fiber.Map{
		"LibraryPath": h.config.Get().LibraryPath,
	}
	if run := h.scans.Latest(); run != nil {
		counts := countMissing(run.Results)
		data["Run"] = run
		data["Issues"] = filesWithIssues(run.Results)
		data["Errored"] = filesWithErrors(run.Results)
		data["MissingAlbumArt"] = counts.albumArt
		data["MissingAlbum"] = counts.album
		data["MissingArtist"] = counts.artist
		data["MissingTrackNumber"] = counts.trackNumber
	}
	return c.Render("report/index", data)
}

// GetReport renders the latest scan in the requested format.
func (h *Handler) GetReport(c *fiber.Ctx) error {
	run := h.scans.Latest()
	if run == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no scan has completed yet",
		})
	}

	format, err := ParseFormat(c.Query("format", string(FormatJSON)))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	condensed := c.QueryBool("condensed", false)

	report, err := Render(run.Results, format, condensed)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if format == FormatJSON && !condensed {
		c.Set("Content-Type", "application/json")
	} else {
		c.Set("Content-Type", "text/plain; charset=utf-8")
	}
	return c.SendString(report)
}

// Artwork serves a thumbnail of the embedded artwork for a scanned file.
// Only paths from the latest scan are served.
func (h *Handler) Artwork(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "path query parameter required",
		})
	}

	run := h.scans.Latest()
	if run == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no scan has completed yet",
		})
	}
	known := false
	for _, r := range run.Results {
		if r.Path == path {
			known = true
			break
		}
	}
	if !known {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "file was not part of the last scan",
		})
	}

	tags, err := h.reader.ReadTags(c.Context(), path)
	if err != nil || len(tags.Picture) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no artwork embedded in file",
		})
	}

	artCfg := h.config.Get().Artwork
	thumb, err := h.thumbs.Thumbnail(tags.Picture, artCfg.ThumbnailSize, artCfg.Quality)
	if err != nil {
		slog.Warn("Failed to build artwork thumbnail", "path", path, "error", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "artwork not decodable",
		})
	}

	c.Set("Content-Type", "image/jpeg")
	return c.Send(thumb)
}
