package history

import (
	"context"
	"errors"

	"github.com/contre95/rattlesnake/src/music"
)

// ErrDisabled is returned when no backing store is configured.
var ErrDisabled = errors.New("validation history is disabled")

// StatsProvider is implemented by stores that can count run results
// without loading them.
type StatsProvider interface {
	RunStats(ctx context.Context, id string) (total, issues, errored int, err error)
}

// RunSummary pairs a stored run with its file counts.
type RunSummary struct {
	Run    *music.ScanRun
	Total  int
	Issues int
	Errors int
}

// Service records finished scans and reads them back.
type Service struct {
	store music.ValidationStore
}

// NewService creates a new history service. A nil store disables it.
func NewService(store music.ValidationStore) *Service {
	return &Service{store: store}
}

// Enabled reports whether a backing store is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.store != nil
}

// Record persists a finished run. A disabled service drops it silently.
func (s *Service) Record(ctx context.Context, run *music.ScanRun) error {
	if !s.Enabled() {
		return nil
	}
	return s.store.SaveRun(ctx, run)
}

// Run fetches a stored run with its results. Short unambiguous ID
// prefixes are accepted.
func (s *Service) Run(ctx context.Context, id string) (*music.ScanRun, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	return s.store.GetRun(ctx, id)
}

// Summaries returns the most recent runs, newest first, with counts.
func (s *Service) Summaries(ctx context.Context, limit int) ([]RunSummary, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	runs, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	stats, _ := s.store.(StatsProvider)
	summaries := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		summary := RunSummary{Run: run}
		if stats != nil {
			if total, issues, errored, err := stats.RunStats(ctx, run.ID); err == nil {
				summary.Total, summary.Issues, summary.Errors = total, issues, errored
			}
		} else if full, err := s.store.GetRun(ctx, run.ID); err == nil {
			summary.Total = full.TotalFiles()
			summary.Issues = full.FilesWithIssues()
			summary.Errors = full.FilesWithErrors()
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Close releases the backing store.
func (s *Service) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.store.Close()
}
