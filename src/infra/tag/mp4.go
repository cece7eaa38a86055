package tag

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/contre95/rattlesnake/src/music"
	"github.com/dhowden/tag"
)

// readMP4 reads iTunes-style metadata atoms from an MP4 container.
func (r *Reader) readMP4(path string, fileType music.FileType) (*music.Tags, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	m, err := tag.ReadFrom(file)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return nil, music.ErrUnsupportedFormat
		}
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	number, _ := m.Track()

	tags := &music.Tags{
		Format:      fileType,
		Title:       m.Title(),
		Album:       m.Album(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Genre:       m.Genre(),
		Year:        m.Year(),
		TrackNumber: number,
	}
	if number > 0 {
		tags.Track = strconv.Itoa(number)
	}
	if pic := m.Picture(); pic != nil {
		tags.Pictures = 1
		tags.Picture = pic.Data
	}

	return tags, nil
}
