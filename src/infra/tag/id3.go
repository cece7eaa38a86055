package tag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/contre95/rattlesnake/src/music"
)

// readID3 reads ID3v2 tags from an MP3 file. A file without a single
// frame has no tag container at all.
func (r *Reader) readID3(path string) (*music.Tags, error) {
	id3Tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}
	defer id3Tag.Close()

	if id3Tag.Count() == 0 {
		return nil, music.ErrNoTags
	}

	tags := &music.Tags{
		Format: music.FileTypeMP3,
		Title:  id3Tag.Title(),
		Album:  id3Tag.Album(),
		Artist: id3Tag.Artist(),
		Genre:  id3Tag.Genre(),
	}

	if year := strings.TrimSpace(id3Tag.Year()); year != "" {
		tags.Year, _ = strconv.Atoi(year)
	}

	tags.AlbumArtist = id3Tag.GetTextFrame(id3Tag.CommonID("Band/Orchestra/Accompaniment")).Text
	tags.Track = id3Tag.GetTextFrame(id3Tag.CommonID("Track number/Position in set")).Text
	tags.TrackNumber = leadingNumber(tags.Track)

	pictures := id3Tag.GetFrames(id3Tag.CommonID("Attached picture"))
	tags.Pictures = len(pictures)
	if len(pictures) > 0 {
		if pic, ok := pictures[0].(id3v2.PictureFrame); ok {
			tags.Picture = pic.Picture
		}
	}

	return tags, nil
}
