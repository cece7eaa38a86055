package history

import (
	"context"
	"errors"
	"testing"

	"github.com/contre95/rattlesnake/src/music"
)

// fakeStore is an in-memory music.ValidationStore.
type fakeStore struct {
	music.ValidationStore
	runs []*music.ScanRun
}

func (f *fakeStore) SaveRun(ctx context.Context, run *music.ScanRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeStore) GetRun(ctx context.Context, id string) (*music.ScanRun, error) {
	for _, run := range f.runs {
		if run.ID == id {
			return run, nil
		}
	}
	return nil, music.ErrRunNotFound
}

func (f *fakeStore) ListRuns(ctx context.Context, limit int) ([]*music.ScanRun, error) {
	runs := f.runs
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func TestRecordAndFetch(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store)
	ctx := context.Background()

	run := music.NewScanRun("/music", true)
	run.Results = []music.ValidationResult{
		{Path: "/music/a.mp3", Type: music.FileTypeMP3, MissingArtist: true},
	}
	if err := service.Record(ctx, run); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := service.Run(ctx, run.ID)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got.ID != run.ID || len(got.Results) != 1 {
		t.Errorf("unexpected run: %+v", got)
	}
}

func TestDisabledService(t *testing.T) {
	service := NewService(nil)
	ctx := context.Background()

	if service.Enabled() {
		t.Error("expected service to be disabled")
	}
	if err := service.Record(ctx, music.NewScanRun("/music", true)); err != nil {
		t.Errorf("Record on disabled service should be a no-op, got %v", err)
	}
	if _, err := service.Run(ctx, "abc"); !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
	if _, err := service.Summaries(ctx, 5); !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}

func TestSummariesCounts(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store)
	ctx := context.Background()

	run := music.NewScanRun("/music", false)
	run.Results = []music.ValidationResult{
		{Path: "/music/a.mp3", Type: music.FileTypeMP3, MissingAlbum: true},
		{Path: "/music/b.mp3", Type: music.FileTypeMP3},
		{Path: "/music/c.m4a", Type: music.FileTypeM4A, Error: "Unable to read file or unsupported format"},
	}
	if err := service.Record(ctx, run); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	summaries, err := service.Summaries(ctx, 10)
	if err != nil {
		t.Fatalf("Summaries failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	summary := summaries[0]
	if summary.Total != 3 || summary.Issues != 1 || summary.Errors != 1 {
		t.Errorf("expected counts 3/1/1, got %d/%d/%d", summary.Total, summary.Issues, summary.Errors)
	}
}
