package artwork

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func TestDescribe(t *testing.T) {
	info, err := NewService().Describe(pngBytes(t, 640, 480))
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if info.Format != "png" || info.Width != 640 || info.Height != 480 {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestDescribeGarbage(t *testing.T) {
	if _, err := NewService().Describe([]byte("not an image")); err == nil {
		t.Fatal("expected error for garbage data")
	}
}

func TestThumbnailShrinks(t *testing.T) {
	thumb, err := NewService().Thumbnail(pngBytes(t, 800, 400), 200, 85)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decoding thumbnail: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg, got %s", format)
	}
	if cfg.Width != 200 || cfg.Height != 100 {
		t.Errorf("expected 200x100, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	thumb, err := NewService().Thumbnail(pngBytes(t, 100, 80), 300, 85)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decoding thumbnail: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 80 {
		t.Errorf("expected original size kept, got %dx%d", cfg.Width, cfg.Height)
	}
}
