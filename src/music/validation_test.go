package music

import (
	"reflect"
	"testing"
)

func TestHasIssues(t *testing.T) {
	if (ValidationResult{}).HasIssues() {
		t.Fatal("expected a clean result to have no issues")
	}

	flagged := []ValidationResult{
		{MissingAlbumArt: true},
		{MissingAlbum: true},
		{MissingArtist: true},
		{MissingTrackNumber: true},
	}
	for i, r := range flagged {
		if !r.HasIssues() {
			t.Errorf("result %d: expected HasIssues to be true", i)
		}
	}

	errored := ValidationResult{Error: "Unable to read file or unsupported format"}
	if errored.HasIssues() {
		t.Fatal("expected a read error alone to not count as an issue")
	}
}

func TestMissingFieldsOrder(t *testing.T) {
	all := ValidationResult{
		MissingAlbumArt:    true,
		MissingAlbum:       true,
		MissingArtist:      true,
		MissingTrackNumber: true,
	}
	want := []string{"Album Artwork", "Album", "Artist", "Track Number"}
	if got := all.MissingFields(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	some := ValidationResult{MissingAlbum: true, MissingTrackNumber: true}
	want = []string{"Album", "Track Number"}
	if got := some.MissingFields(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := (ValidationResult{}).MissingFields(); len(got) != 0 {
		t.Fatalf("expected no fields, got %v", got)
	}
}

func TestTypeLabel(t *testing.T) {
	cases := map[FileType]string{
		FileTypeMP3:  "MP3",
		FileTypeMP4:  "MP4",
		FileTypeM4A:  "M4A",
		FileTypeFLAC: "FLAC",
	}
	for fileType, want := range cases {
		r := ValidationResult{Type: fileType}
		if got := r.TypeLabel(); got != want {
			t.Errorf("type %q: expected %q, got %q", fileType, want, got)
		}
	}
}

func TestFileTypeFromPath(t *testing.T) {
	cases := map[string]FileType{
		"/music/song.mp3":      FileTypeMP3,
		"/music/SONG.MP3":      FileTypeMP3,
		"/music/video.Mp4":     FileTypeMP4,
		"relative/track.m4a":   FileTypeM4A,
		"/music/lossless.FLAC": FileTypeFLAC,
		"/music/noext":         FileType(""),
	}
	for path, want := range cases {
		if got := FileTypeFromPath(path); got != want {
			t.Errorf("path %q: expected %q, got %q", path, want, got)
		}
	}
}

func TestTagsFieldChecks(t *testing.T) {
	tags := Tags{Format: FileTypeMP3, Album: "  ", Artist: "Nina Simone", Track: "3/5"}
	if tags.HasAlbum() {
		t.Fatal("expected blank album to not count")
	}
	if !tags.HasArtist() {
		t.Fatal("expected artist to count")
	}
	if tags.HasArtwork() {
		t.Fatal("expected no artwork without pictures")
	}
	tags.Pictures = 1
	if !tags.HasArtwork() {
		t.Fatal("expected artwork with a picture")
	}
}

func TestHasTrackNumberPerContainer(t *testing.T) {
	// Text containers count any non-blank track field, even "0/12".
	id3 := Tags{Format: FileTypeMP3, Track: "0/12"}
	if !id3.HasTrackNumber() {
		t.Fatal("expected non-blank ID3 track field to count")
	}
	id3.Track = "   "
	if id3.HasTrackNumber() {
		t.Fatal("expected blank ID3 track field to not count")
	}

	// MP4 containers store a numeric tuple; only a positive number counts.
	mp4 := Tags{Format: FileTypeM4A, Track: "0", TrackNumber: 0}
	if mp4.HasTrackNumber() {
		t.Fatal("expected zero MP4 track number to not count")
	}
	mp4.TrackNumber = 7
	if !mp4.HasTrackNumber() {
		t.Fatal("expected positive MP4 track number to count")
	}
}

func TestScanRunCounts(t *testing.T) {
	run := NewScanRun("/music", true)
	if run.ID == "" {
		t.Fatal("expected a generated run ID")
	}
	if run.StartedAt.IsZero() {
		t.Fatal("expected a start timestamp")
	}

	run.Results = []ValidationResult{
		{Path: "a.mp3", MissingAlbum: true},
		{Path: "b.mp3"},
		{Path: "c.mp3", Error: "Error reading file: truncated"},
		{Path: "d.mp3", MissingAlbumArt: true, MissingArtist: true},
	}
	if got := run.TotalFiles(); got != 4 {
		t.Fatalf("expected 4 files, got %d", got)
	}
	if got := run.FilesWithIssues(); got != 2 {
		t.Fatalf("expected 2 files with issues, got %d", got)
	}
	if got := run.FilesWithErrors(); got != 1 {
		t.Fatalf("expected 1 file with errors, got %d", got)
	}
}
