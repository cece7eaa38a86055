package reporting

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/contre95/rattlesnake/src/music"
)

// jsonReport is the envelope for the JSON rendering. The summary always
// carries all four counters; the files list carries only files that have
// issues or read errors.
type jsonReport struct {
	Generated       string      `json:"generated"`
	TotalFiles      int         `json:"total_files"`
	FilesWithIssues int         `json:"files_with_issues"`
	FilesWithErrors int         `json:"files_with_errors"`
	Summary         jsonSummary `json:"summary"`
	Files           []jsonFile  `json:"files"`
}

type jsonSummary struct {
	MissingAlbumArt    int `json:"missing_album_art"`
	MissingAlbum       int `json:"missing_album"`
	MissingArtist      int `json:"missing_artist"`
	MissingTrackNumber int `json:"missing_track_number"`
}

type jsonFile struct {
	Filepath        string   `json:"filepath"`
	FileType        string   `json:"file_type"`
	MissingMetadata []string `json:"missing_metadata"`
	Error           *string  `json:"error"`
}

func renderJSON(results []music.ValidationResult, now time.Time) (string, error) {
	counts := countMissing(results)
	report := jsonReport{
		Generated:       now.Format(time.RFC3339),
		TotalFiles:      len(results),
		FilesWithIssues: len(filesWithIssues(results)),
		FilesWithErrors: len(filesWithErrors(results)),
		Summary: jsonSummary{
			MissingAlbumArt:    counts.albumArt,
			MissingAlbum:       counts.album,
			MissingArtist:      counts.artist,
			MissingTrackNumber: counts.trackNumber,
		},
		Files: make([]jsonFile, 0),
	}

	for _, r := range results {
		if !r.HasIssues() && r.Error == "" {
			continue
		}
		file := jsonFile{
			Filepath:        r.Path,
			FileType:        string(r.Type),
			MissingMetadata: r.MissingFields(),
		}
		if file.MissingMetadata == nil {
			file.MissingMetadata = []string{}
		}
		if r.Error != "" {
			errMsg := r.Error
			file.Error = &errMsg
		}
		report.Files = append(report.Files, file)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return string(data), nil
}
