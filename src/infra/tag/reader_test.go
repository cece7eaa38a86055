package tag

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/contre95/rattlesnake/src/music"
	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

func writeID3File(t *testing.T, dir string, build func(*id3v2.Tag)) string {
	t.Helper()
	id3Tag := id3v2.NewEmptyTag()
	build(id3Tag)
	var buf bytes.Buffer
	if _, err := id3Tag.WriteTo(&buf); err != nil {
		t.Fatalf("writing tag: %v", err)
	}
	buf.WriteString("fake mpeg audio frames")
	path := filepath.Join(dir, "track.mp3")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	return path
}

func flacBlock(blockType goflac.BlockType, data []byte, last bool) []byte {
	head := byte(blockType)
	if last {
		head |= 0x80
	}
	block := []byte{head, byte(len(data) >> 16), byte(len(data) >> 8), byte(len(data))}
	return append(block, data...)
}

func TestReadID3(t *testing.T) {
	path := writeID3File(t, t.TempDir(), func(id3Tag *id3v2.Tag) {
		id3Tag.SetTitle("Blue in Green")
		id3Tag.SetArtist("Miles Davis")
		id3Tag.SetAlbum("Kind of Blue")
		id3Tag.SetGenre("Jazz")
		id3Tag.SetYear("1959")
		id3Tag.AddTextFrame(id3Tag.CommonID("Band/Orchestra/Accompaniment"), id3v2.EncodingUTF8, "Miles Davis Sextet")
		id3Tag.AddTextFrame(id3Tag.CommonID("Track number/Position in set"), id3v2.EncodingUTF8, "3/5")
		id3Tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Picture:     []byte{0xFF, 0xD8, 0xFF, 0xDB},
		})
	})

	tags, err := NewReader().ReadTags(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadTags failed: %v", err)
	}
	if tags.Format != music.FileTypeMP3 {
		t.Errorf("expected mp3 format, got %q", tags.Format)
	}
	if tags.Title != "Blue in Green" {
		t.Errorf("unexpected title %q", tags.Title)
	}
	if tags.Artist != "Miles Davis" {
		t.Errorf("unexpected artist %q", tags.Artist)
	}
	if tags.Album != "Kind of Blue" {
		t.Errorf("unexpected album %q", tags.Album)
	}
	if tags.AlbumArtist != "Miles Davis Sextet" {
		t.Errorf("unexpected album artist %q", tags.AlbumArtist)
	}
	if tags.Year != 1959 {
		t.Errorf("unexpected year %d", tags.Year)
	}
	if tags.Track != "3/5" || tags.TrackNumber != 3 {
		t.Errorf("unexpected track %q (%d)", tags.Track, tags.TrackNumber)
	}
	if !tags.HasTrackNumber() {
		t.Error("expected track number to be present")
	}
	if tags.Pictures != 1 || !tags.HasArtwork() {
		t.Errorf("expected one picture, got %d", tags.Pictures)
	}
	if !bytes.Equal(tags.Picture, []byte{0xFF, 0xD8, 0xFF, 0xDB}) {
		t.Error("picture bytes do not round-trip")
	}
}

func TestReadID3NoFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "untagged.mp3")
	if err := os.WriteFile(path, bytes.Repeat([]byte{0xAA}, 64), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewReader().ReadTags(context.Background(), path)
	if !errors.Is(err, music.ErrNoTags) {
		t.Fatalf("expected ErrNoTags, got %v", err)
	}
}

func TestReadMP4Unrecognized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voice.m4a")
	if err := os.WriteFile(path, bytes.Repeat([]byte{'x'}, 256), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewReader().ReadTags(context.Background(), path)
	if !errors.Is(err, music.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestReadUnknownExtension(t *testing.T) {
	_, err := NewReader().ReadTags(context.Background(), "liner-notes.txt")
	if !errors.Is(err, music.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestReadFLAC(t *testing.T) {
	comment := flacvorbis.New()
	comment.Add(flacvorbis.FIELD_TITLE, "Sinnerman")
	comment.Add(flacvorbis.FIELD_ARTIST, "Nina Simone")
	comment.Add(flacvorbis.FIELD_ALBUM, "Pastel Blues")
	comment.Add(flacvorbis.FIELD_TRACKNUMBER, "10")
	comment.Add(flacvorbis.FIELD_DATE, "1965-07-01")
	block := comment.Marshal()

	var buf bytes.Buffer
	buf.WriteString("fLaC")
	buf.Write(flacBlock(goflac.StreamInfo, make([]byte, 34), false))
	buf.Write(flacBlock(goflac.VorbisComment, block.Data, true))
	buf.WriteString("fake flac frames")

	path := filepath.Join(t.TempDir(), "sinnerman.flac")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	tags, err := NewReader().ReadTags(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadTags failed: %v", err)
	}
	if tags.Artist != "Nina Simone" || tags.Album != "Pastel Blues" {
		t.Errorf("unexpected artist/album %q/%q", tags.Artist, tags.Album)
	}
	if tags.TrackNumber != 10 || !tags.HasTrackNumber() {
		t.Errorf("unexpected track number %d", tags.TrackNumber)
	}
	if tags.Year != 1965 {
		t.Errorf("unexpected year %d", tags.Year)
	}
	if tags.HasArtwork() {
		t.Error("expected no artwork")
	}
}

func TestReadFLACNoTagBlocks(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("fLaC")
	buf.Write(flacBlock(goflac.StreamInfo, make([]byte, 34), true))
	buf.WriteString("fake flac frames")

	path := filepath.Join(t.TempDir(), "bare.flac")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewReader().ReadTags(context.Background(), path)
	if !errors.Is(err, music.ErrNoTags) {
		t.Fatalf("expected ErrNoTags, got %v", err)
	}
}

func TestLeadingNumber(t *testing.T) {
	cases := map[string]int{
		"3/5":  3,
		" 12 ": 12,
		"7":    7,
		"":     0,
		"abc":  0,
		"/9":   0,
	}
	for raw, want := range cases {
		if got := leadingNumber(raw); got != want {
			t.Errorf("leadingNumber(%q) = %d, want %d", raw, got, want)
		}
	}
}
