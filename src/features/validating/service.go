package validating

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/contre95/rattlesnake/src/features/config"
	"github.com/contre95/rattlesnake/src/music"
)

// Errors reported before any file is touched.
var (
	ErrNotFound     = errors.New("directory not found")
	ErrNotDirectory = errors.New("path is not a directory")
)

// Messages recorded on results for files that could not be inspected.
const (
	msgUnreadable = "Unable to read file or unsupported format"
	msgReadError  = "Error reading file"
)

// Service is the domain service for the validating feature.
type Service struct {
	reader TagReader
	config *config.Manager

	mu        sync.RWMutex
	latest    *music.ScanRun
	observers []func(*music.ScanRun)
}

// NewService creates a new validating service.
func NewService(reader TagReader, cfg *config.Manager) *Service {
	return &Service{reader: reader, config: cfg}
}

// supportedExtensions builds the extension lookup set from config.
func (s *Service) supportedExtensions() map[string]bool {
	exts := make(map[string]bool)
	for _, ext := range s.config.Get().Validation.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}
	return exts
}

// ScanDirectory validates every supported file under dir and returns the
// completed run, with one result per file in walk order. A file that cannot
// be read never aborts the scan; its result carries the error instead.
func (s *Service) ScanDirectory(ctx context.Context, dir string, recursive bool) (*music.ScanRun, error) {
	return s.scan(ctx, dir, recursive, nil)
}

func (s *Service) scan(ctx context.Context, dir string, recursive bool, progress func(done, total int, path string)) (*music.ScanRun, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	slog.Info("Scanning directory", "path", dir, "recursive", recursive)

	files, err := s.collectFiles(dir, recursive)
	if err != nil {
		return nil, err
	}

	slog.Info("Processing files", "total", len(files))
	run := music.NewScanRun(dir, recursive)
	run.Results = make([]music.ValidationResult, 0, len(files))
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		run.Results = append(run.Results, s.ValidateFile(ctx, path))
		if progress != nil {
			progress(i+1, len(files), path)
		}
	}
	run.Duration = time.Since(run.StartedAt)

	s.setLatest(run)
	for _, observe := range s.snapshotObservers() {
		observe(run)
	}
	slog.Info("Scan complete", "files", run.TotalFiles(), "issues", run.FilesWithIssues(), "errors", run.FilesWithErrors(), "duration", run.Duration.Round(time.Millisecond))
	return run, nil
}

// collectFiles lists the supported files under dir, in lexical walk order.
func (s *Service) collectFiles(dir string, recursive bool) ([]string, error) {
	exts := s.supportedExtensions()
	var files []string

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if exts[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
		}
		return files, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if exts[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// ValidateFile checks a single file. It never fails; read problems are
// recorded on the result and leave every missing flag false.
func (s *Service) ValidateFile(ctx context.Context, path string) music.ValidationResult {
	result := music.ValidationResult{
		Path: path,
		Type: music.FileTypeFromPath(path),
	}

	tags, err := s.reader.ReadTags(ctx, path)
	switch {
	case errors.Is(err, music.ErrUnsupportedFormat):
		result.Error = msgUnreadable
	case errors.Is(err, music.ErrNoTags):
		result.MissingAlbumArt = true
		result.MissingAlbum = true
		result.MissingArtist = true
		result.MissingTrackNumber = true
	case err != nil:
		result.Error = fmt.Sprintf("%s: %v", msgReadError, err)
	default:
		result.MissingAlbumArt = !tags.HasArtwork()
		result.MissingAlbum = !tags.HasAlbum()
		result.MissingArtist = !tags.HasArtist()
		result.MissingTrackNumber = !tags.HasTrackNumber()
	}

	slog.Debug("Validated file", "path", path, "missing", result.MissingFields(), "error", result.Error)
	return result
}

// AddObserver registers a callback invoked after every completed scan,
// whichever surface triggered it.
func (s *Service) AddObserver(fn func(*music.ScanRun)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// snapshotObservers copies the observer list so callbacks run unlocked.
func (s *Service) snapshotObservers() []func(*music.ScanRun) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]func(*music.ScanRun)(nil), s.observers...)
}

// Latest returns the most recently completed run, or nil before any scan.
func (s *Service) Latest() *music.ScanRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *Service) setLatest(run *music.ScanRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = run
}
