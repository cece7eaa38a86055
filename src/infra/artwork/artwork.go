package artwork

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/png"
)

// Info describes an embedded artwork image.
type Info struct {
	Format string
	Width  int
	Height int
	Bytes  int
}

// Service decodes and shrinks embedded artwork.
type Service struct{}

// NewService creates a new artwork service.
func NewService() *Service {
	return &Service{}
}

// Describe reports the format and dimensions of raw image data.
func (s *Service) Describe(data []byte) (*Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &Info{Format: format, Width: cfg.Width, Height: cfg.Height, Bytes: len(data)}, nil
}

// Thumbnail scales image data down to fit within maxSize pixels, keeping the
// aspect ratio, and re-encodes it as JPEG.
func (s *Service) Thumbnail(data []byte, maxSize int, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if maxSize > 0 && (width > maxSize || height > maxSize) {
		if width > height {
			height = (height * maxSize) / width
			width = maxSize
		} else {
			width = (width * maxSize) / height
			height = maxSize
		}
		img = resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
	}

	if quality <= 0 {
		quality = 85
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
