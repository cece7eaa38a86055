package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/contre95/rattlesnake/src/music"
)

func newTestStore(t *testing.T) *SqliteStore {
	t.Helper()
	store, err := NewSqliteStore(filepath.Join(t.TempDir(), "validations.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun() *music.ScanRun {
	run := music.NewScanRun("/music", true)
	run.Duration = 1250 * time.Millisecond
	run.Results = []music.ValidationResult{
		{Path: "/music/a.mp3", Type: music.FileTypeMP3, MissingAlbumArt: true, MissingAlbum: true},
		{Path: "/music/b.m4a", Type: music.FileTypeM4A},
		{Path: "/music/c.mp3", Type: music.FileTypeMP3, Error: "Error reading file: truncated"},
	}
	return run
}

func TestSaveAndGetRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := sampleRun()
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.Root != "/music" || !got.Recursive {
		t.Errorf("run fields do not round-trip: %+v", got)
	}
	if got.Duration != 1250*time.Millisecond {
		t.Errorf("expected duration 1.25s, got %v", got.Duration)
	}
	if len(got.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got.Results))
	}
	first := got.Results[0]
	if first.Path != "/music/a.mp3" || !first.MissingAlbumArt || !first.MissingAlbum || first.MissingArtist {
		t.Errorf("unexpected first result: %+v", first)
	}
	if got.Results[2].Error != "Error reading file: truncated" {
		t.Errorf("error does not round-trip: %q", got.Results[2].Error)
	}
	if got.FilesWithIssues() != 1 || got.FilesWithErrors() != 1 {
		t.Errorf("unexpected counts: issues=%d errors=%d", got.FilesWithIssues(), got.FilesWithErrors())
	}
}

func TestGetRunByPrefix(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := sampleRun()
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := store.GetRun(ctx, run.ID[:8])
	if err != nil {
		t.Fatalf("GetRun by prefix failed: %v", err)
	}
	if got.ID != run.ID {
		t.Errorf("expected run %s, got %s", run.ID, got.ID)
	}
}

func TestGetRunNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRun(context.Background(), "deadbeef")
	if !errors.Is(err, music.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := music.NewScanRun("/old", false)
	older.StartedAt = time.Now().Add(-time.Hour)
	newer := music.NewScanRun("/new", true)
	if err := store.SaveRun(ctx, older); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := store.SaveRun(ctx, newer); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Root != "/new" || runs[1].Root != "/old" {
		t.Errorf("runs not sorted newest first: %s, %s", runs[0].Root, runs[1].Root)
	}
	if len(runs[0].Results) != 0 {
		t.Error("ListRuns should not load results")
	}
}

func TestRunStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := sampleRun()
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	total, issues, errored, err := store.RunStats(ctx, run.ID)
	if err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	if total != 3 || issues != 1 || errored != 1 {
		t.Errorf("expected counts 3/1/1, got %d/%d/%d", total, issues, errored)
	}
}
