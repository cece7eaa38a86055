package music

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned by a ValidationStore when no run matches an ID.
var ErrRunNotFound = errors.New("run not found")

// ScanRun is one recorded validation pass over a library root.
type ScanRun struct {
	ID        string
	Root      string
	Recursive bool
	StartedAt time.Time
	Duration  time.Duration
	Results   []ValidationResult
}

// NewScanRun creates a run with a fresh ID, stamped at the current time.
func NewScanRun(root string, recursive bool) *ScanRun {
	return &ScanRun{
		ID:        uuid.New().String(),
		Root:      root,
		Recursive: recursive,
		StartedAt: time.Now(),
	}
}

// TotalFiles returns the number of scanned files.
func (s *ScanRun) TotalFiles() int {
	return len(s.Results)
}

// FilesWithIssues returns the number of files missing at least one field.
func (s *ScanRun) FilesWithIssues() int {
	count := 0
	for _, r := range s.Results {
		if r.HasIssues() {
			count++
		}
	}
	return count
}

// FilesWithErrors returns the number of files that could not be read.
func (s *ScanRun) FilesWithErrors() int {
	count := 0
	for _, r := range s.Results {
		if r.Error != "" {
			count++
		}
	}
	return count
}

// ValidationStore persists scan runs for later inspection.
type ValidationStore interface {
	// SaveRun stores a run together with its per-file results.
	SaveRun(ctx context.Context, run *ScanRun) error
	// GetRun fetches a single run with its results. Short ID prefixes are
	// accepted as long as they are unambiguous.
	GetRun(ctx context.Context, id string) (*ScanRun, error)
	// ListRuns returns the most recent runs, newest first, without results.
	ListRuns(ctx context.Context, limit int) ([]*ScanRun, error)
	// Close releases the underlying storage.
	Close() error
}
