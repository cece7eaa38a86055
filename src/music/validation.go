package music

import (
	"path/filepath"
	"strings"
)

// FileType identifies the container format of a scanned audio file.
type FileType string

const (
	FileTypeMP3  FileType = "mp3"
	FileTypeMP4  FileType = "mp4"
	FileTypeM4A  FileType = "m4a"
	FileTypeFLAC FileType = "flac"
)

// Labels for missing metadata fields, in the order reports list them.
const (
	FieldAlbumArt    = "Album Artwork"
	FieldAlbum       = "Album"
	FieldArtist      = "Artist"
	FieldTrackNumber = "Track Number"
)

// FieldLabels lists every checked field in report order.
var FieldLabels = []string{FieldAlbumArt, FieldAlbum, FieldArtist, FieldTrackNumber}

// FileTypeFromPath derives the file type from the path extension.
func FileTypeFromPath(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	return FileType(strings.TrimPrefix(ext, "."))
}

// ValidationResult records the metadata check outcome for a single file.
// One result exists per scanned file, readable or not. When Error is set
// the file could not be inspected and the missing flags stay false.
type ValidationResult struct {
	Path               string
	Type               FileType
	MissingAlbumArt    bool
	MissingAlbum       bool
	MissingArtist      bool
	MissingTrackNumber bool
	Error              string
}

// HasIssues reports whether any checked metadata field is missing.
func (r ValidationResult) HasIssues() bool {
	return r.MissingAlbumArt || r.MissingAlbum || r.MissingArtist || r.MissingTrackNumber
}

// MissingFields returns the labels of the missing fields in report order.
func (r ValidationResult) MissingFields() []string {
	var fields []string
	if r.MissingAlbumArt {
		fields = append(fields, FieldAlbumArt)
	}
	if r.MissingAlbum {
		fields = append(fields, FieldAlbum)
	}
	if r.MissingArtist {
		fields = append(fields, FieldArtist)
	}
	if r.MissingTrackNumber {
		fields = append(fields, FieldTrackNumber)
	}
	return fields
}

// TypeLabel returns the file type in the uppercase form reports use.
func (r ValidationResult) TypeLabel() string {
	return strings.ToUpper(string(r.Type))
}
