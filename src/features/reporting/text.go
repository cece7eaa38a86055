package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/contre95/rattlesnake/src/music"
)

const (
	reportTitle    = "MUSIC LIBRARY METADATA VALIDATION REPORT"
	textTimeLayout = "2006-01-02 15:04:05"
)

// renderText builds the full plain-text report: banner, counts, per-file
// sections for missing metadata and read errors, and the per-field summary.
// Sections with nothing to list are omitted entirely.
func renderText(results []music.ValidationResult, now time.Time) string {
	issues := filesWithIssues(results)
	errored := filesWithErrors(results)

	banner := strings.Repeat("=", 60)
	rule := strings.Repeat("-", 40)

	var b strings.Builder
	b.WriteString(banner + "\n")
	b.WriteString(reportTitle + "\n")
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format(textTimeLayout))
	fmt.Fprintf(&b, "Total files scanned: %d\n", len(results))
	fmt.Fprintf(&b, "Files with metadata issues: %d\n", len(issues))
	fmt.Fprintf(&b, "Files with read errors: %d\n", len(errored))

	if len(issues) > 0 {
		b.WriteString("\nFILES WITH MISSING METADATA:\n")
		b.WriteString(rule + "\n")
		for _, r := range issues {
			fmt.Fprintf(&b, "\nFile: %s\n", r.Path)
			fmt.Fprintf(&b, "Type: %s\n", r.TypeLabel())
			fmt.Fprintf(&b, "Missing: %s\n", strings.Join(r.MissingFields(), ", "))
		}
	}

	if len(errored) > 0 {
		b.WriteString("\nFILES WITH READ ERRORS:\n")
		b.WriteString(rule + "\n")
		for _, r := range errored {
			fmt.Fprintf(&b, "\nFile: %s\n", r.Path)
			fmt.Fprintf(&b, "Error: %s\n", r.Error)
		}
	}

	if len(issues) > 0 {
		counts := countMissing(results)
		b.WriteString("\nSUMMARY BY ISSUE TYPE:\n")
		b.WriteString(rule + "\n")
		for _, entry := range []struct {
			label string
			count int
		}{
			{music.FieldAlbumArt, counts.albumArt},
			{music.FieldAlbum, counts.album},
			{music.FieldArtist, counts.artist},
			{music.FieldTrackNumber, counts.trackNumber},
		} {
			if entry.count > 0 {
				fmt.Fprintf(&b, "%s: %d files\n", entry.label, entry.count)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderCondensed lists only the paths missing album artwork, one per line,
// followed by the total. Files with read errors are excluded.
func renderCondensed(results []music.ValidationResult) string {
	var b strings.Builder
	count := 0
	for _, r := range results {
		if r.MissingAlbumArt && r.Error == "" {
			b.WriteString(r.Path + "\n")
			count++
		}
	}
	fmt.Fprintf(&b, "Total files missing album artwork: %d", count)
	return b.String()
}
