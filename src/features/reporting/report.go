package reporting

import (
	"fmt"
	"time"

	"github.com/contre95/rattlesnake/src/music"
)

// Format selects the report rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name from a flag or query parameter.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be text or json", name)
	}
}

// Render produces the report for a set of scan results. It performs no I/O;
// writing the result somewhere is the caller's concern. Condensed mode wins
// over the format selection and always renders as plain text.
func Render(results []music.ValidationResult, format Format, condensed bool) (string, error) {
	if condensed {
		return renderCondensed(results), nil
	}
	switch format {
	case FormatJSON:
		return renderJSON(results, time.Now())
	case FormatText:
		return renderText(results, time.Now()), nil
	default:
		return "", fmt.Errorf("invalid format %q: must be text or json", format)
	}
}

// fieldCounts tallies how many files miss each checked field.
type fieldCounts struct {
	albumArt    int
	album       int
	artist      int
	trackNumber int
}

func countMissing(results []music.ValidationResult) fieldCounts {
	var c fieldCounts
	for _, r := range results {
		if r.MissingAlbumArt {
			c.albumArt++
		}
		if r.MissingAlbum {
			c.album++
		}
		if r.MissingArtist {
			c.artist++
		}
		if r.MissingTrackNumber {
			c.trackNumber++
		}
	}
	return c
}

func filesWithIssues(results []music.ValidationResult) []music.ValidationResult {
	var out []music.ValidationResult
	for _, r := range results {
		if r.HasIssues() {
			out = append(out, r)
		}
	}
	return out
}

func filesWithErrors(results []music.ValidationResult) []music.ValidationResult {
	var out []music.ValidationResult
	for _, r := range results {
		if r.Error != "" {
			out = append(out, r)
		}
	}
	return out
}

// MissingArtworkCount counts the readable files with no embedded artwork,
// the same set the condensed report lists.
func MissingArtworkCount(results []music.ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.MissingAlbumArt && r.Error == "" {
			count++
		}
	}
	return count
}
