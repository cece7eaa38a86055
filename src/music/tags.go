package music

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat means the file could not be identified as a supported
// audio container.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ErrNoTags means the container was parsed but holds no tag data at all.
var ErrNoTags = errors.New("no tags found")

// Tags is the raw metadata snapshot read from a single audio file.
type Tags struct {
	Format      FileType
	Title       string
	Album       string
	Artist      string
	AlbumArtist string
	Genre       string
	Year        int
	Track       string // track field as stored in the tag
	TrackNumber int    // leading numeric part of Track, 0 when absent
	Pictures    int    // number of embedded pictures
	Picture     []byte // first embedded picture, nil when absent
}

// HasAlbum reports whether the album field is set to something non-blank.
func (t *Tags) HasAlbum() bool {
	return strings.TrimSpace(t.Album) != ""
}

// HasArtist reports whether the artist field is set to something non-blank.
func (t *Tags) HasArtist() bool {
	return strings.TrimSpace(t.Artist) != ""
}

// HasArtwork reports whether at least one picture is embedded.
func (t *Tags) HasArtwork() bool {
	return t.Pictures > 0
}

// HasTrackNumber applies the per-container rule for the track field. ID3 and
// Vorbis store it as text, so any non-blank value counts; MP4 containers
// store a numeric tuple, so the leading number must be positive.
func (t *Tags) HasTrackNumber() bool {
	switch t.Format {
	case FileTypeMP4, FileTypeM4A:
		return t.TrackNumber > 0
	default:
		return strings.TrimSpace(t.Track) != ""
	}
}

func (t *Tags) Pretty() {
	fmt.Printf("%-20s : %s\n", "Format", strings.ToUpper(string(t.Format)))
	fmt.Printf("%-20s : %s\n", "Title", t.Title)
	fmt.Printf("%-20s : %s\n", "Artist", t.Artist)
	if t.AlbumArtist != "" {
		fmt.Printf("%-20s : %s\n", "Album Artist", t.AlbumArtist)
	}
	fmt.Printf("%-20s : %s\n", "Album", t.Album)
	if t.Genre != "" {
		fmt.Printf("%-20s : %s\n", "Genre", t.Genre)
	}
	if t.Year != 0 {
		fmt.Printf("%-20s : %d\n", "Year", t.Year)
	}
	fmt.Printf("%-20s : %s\n", "Track", t.Track)
	fmt.Printf("%-20s : %d\n", "Pictures", t.Pictures)
}
