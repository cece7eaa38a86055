package tag

import (
	"context"
	"strconv"
	"strings"

	"github.com/contre95/rattlesnake/src/features/validating"
	"github.com/contre95/rattlesnake/src/music"
)

// Reader reads embedded metadata from audio files, picking a backend
// library per container format.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() validating.TagReader {
	return &Reader{}
}

// ReadTags reads metadata from a music file.
func (r *Reader) ReadTags(ctx context.Context, path string) (*music.Tags, error) {
	fileType := music.FileTypeFromPath(path)
	switch fileType {
	case music.FileTypeMP3:
		return r.readID3(path)
	case music.FileTypeMP4, music.FileTypeM4A:
		return r.readMP4(path, fileType)
	case music.FileTypeFLAC:
		return r.readFLAC(path)
	default:
		return nil, music.ErrUnsupportedFormat
	}
}

// leadingNumber parses the numeric prefix of a position string like "3/12".
func leadingNumber(raw string) int {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '/'); i >= 0 {
		raw = raw[:i]
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
