package validating

import (
	"context"

	"github.com/contre95/rattlesnake/src/music"
)

// TagReader is the interface for reading raw tags from an audio file.
type TagReader interface {
	ReadTags(ctx context.Context, path string) (*music.Tags, error)
}
