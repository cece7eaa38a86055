package tag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/contre95/rattlesnake/src/music"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

// readFLAC reads Vorbis comments and PICTURE blocks from a FLAC file.
// A file carrying neither block has no tag container.
func (r *Reader) readFLAC(path string) (*music.Tags, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	tags := &music.Tags{Format: music.FileTypeFLAC}
	tagged := false

	for _, meta := range f.Meta {
		switch meta.Type {
		case goflac.VorbisComment:
			comment, err := flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return nil, fmt.Errorf("failed to parse Vorbis comment: %w", err)
			}
			tagged = true
			tags.Title = firstComment(comment, flacvorbis.FIELD_TITLE)
			tags.Album = firstComment(comment, flacvorbis.FIELD_ALBUM)
			tags.Artist = firstComment(comment, flacvorbis.FIELD_ARTIST)
			tags.AlbumArtist = firstComment(comment, "ALBUMARTIST")
			tags.Genre = firstComment(comment, flacvorbis.FIELD_GENRE)
			tags.Track = firstComment(comment, flacvorbis.FIELD_TRACKNUMBER)
			tags.TrackNumber = leadingNumber(tags.Track)
			if date := firstComment(comment, flacvorbis.FIELD_DATE); date != "" {
				if len(date) > 4 {
					date = date[:4]
				}
				tags.Year, _ = strconv.Atoi(date)
			}
		case goflac.Picture:
			tagged = true
			tags.Pictures++
			if tags.Picture == nil {
				if pic, err := flacpicture.ParseFromMetaDataBlock(*meta); err == nil {
					tags.Picture = pic.ImageData
				}
			}
		}
	}

	if !tagged {
		return nil, music.ErrNoTags
	}
	return tags, nil
}

// firstComment returns the first value of a Vorbis comment field.
func firstComment(comment *flacvorbis.MetaDataBlockVorbisComment, field string) string {
	values, err := comment.Get(field)
	if err != nil || len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
