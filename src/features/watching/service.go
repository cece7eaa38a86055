package watching

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/contre95/rattlesnake/src/features/config"
	"github.com/contre95/rattlesnake/src/features/history"
	"github.com/contre95/rattlesnake/src/features/validating"
	"github.com/contre95/rattlesnake/src/infra/watcher"
	"github.com/contre95/rattlesnake/src/music"
)

// Notifier delivers scan summaries to an external channel.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Service reruns validation whenever the watched library changes.
type Service struct {
	scans    *validating.Service
	history  *history.Service
	config   *config.Manager
	notifier Notifier // nil when notifications are disabled
	watcher  *watcher.Watcher
}

// NewService creates a new watching service.
func NewService(scans *validating.Service, hist *history.Service, cfg *config.Manager, notifier Notifier) *Service {
	return &Service{scans: scans, history: hist, config: cfg, notifier: notifier}
}

// Run watches the configured library path until the context is cancelled.
// Every debounced change burst triggers a fresh validation pass.
func (s *Service) Run(ctx context.Context) error {
	cfg := s.config.Get()
	events := make(chan watcher.FileEvent, 10)

	w, err := watcher.NewWatcher(events, cfg.Validation.Extensions,
		time.Duration(cfg.Watch.DebounceSeconds)*time.Second)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	s.watcher = w

	if err := w.Start(ctx, cfg.LibraryPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.LibraryPath, err)
	}
	defer w.Stop()

	// Baseline pass so later deltas have something to compare against.
	if _, err := s.rescan(ctx, watcher.FileEvent{Path: cfg.LibraryPath}); err != nil {
		return err
	}

	for {
		select {
		case event := <-events:
			if _, err := s.rescan(ctx, event); err != nil {
				slog.Error("Rescan after library change failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// rescan validates the library and records, logs and notifies the outcome.
func (s *Service) rescan(ctx context.Context, event watcher.FileEvent) (*music.ScanRun, error) {
	cfg := s.config.Get()

	previous := s.scans.Latest()
	run, err := s.scans.ScanDirectory(ctx, cfg.LibraryPath, cfg.Validation.Recursive)
	if err != nil {
		return nil, err
	}

	if err := s.history.Record(ctx, run); err != nil {
		slog.Warn("Failed to record scan run", "error", err, "runID", run.ID)
	}

	if previous != nil {
		logDelta(previous, run)
	}

	if event.Changes > 0 {
		s.notify(ctx, event, run)
	}
	return run, nil
}

func logDelta(previous, current *music.ScanRun) {
	slog.Info("Library changed",
		"files", current.TotalFiles(),
		"filesDelta", current.TotalFiles()-previous.TotalFiles(),
		"issues", current.FilesWithIssues(),
		"issuesDelta", current.FilesWithIssues()-previous.FilesWithIssues(),
		"errors", current.FilesWithErrors(),
	)
}

func (s *Service) notify(ctx context.Context, event watcher.FileEvent, run *music.ScanRun) {
	if s.notifier == nil {
		return
	}
	message := fmt.Sprintf("Library %s: %d change(s) detected. %d files checked, %d with missing metadata, %d unreadable.",
		event.Path, event.Changes, run.TotalFiles(), run.FilesWithIssues(), run.FilesWithErrors())
	if err := s.notifier.Notify(ctx, message); err != nil {
		slog.Warn("Failed to send change notification", "error", err)
	}
}
