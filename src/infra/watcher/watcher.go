package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounceSecs = 5

// Watcher monitors a library tree for audio file changes and emits one
// debounced event per burst of changes.
type Watcher struct {
	watcher       *fsnotify.Watcher
	watchPath     string
	extensions    map[string]bool
	debounce      time.Duration
	debounceTimer *time.Timer
	debounceMutex sync.Mutex
	pendingCount  int
	pendingType   FileEventType
	running       bool
	stopChan      chan struct{}
	eventChan     chan<- FileEvent
}

// NewWatcher creates a new file system watcher for the given audio extensions.
func NewWatcher(eventChan chan<- FileEvent, extensions []string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounceSecs * time.Second
	}
	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet["."+strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	return &Watcher{
		watcher:    fsWatcher,
		eventChan:  eventChan,
		extensions: extSet,
		debounce:   debounce,
		stopChan:   make(chan struct{}),
	}, nil
}

// Start begins watching the library tree for file changes.
func (w *Watcher) Start(ctx context.Context, watchPath string) error {
	w.watchPath = watchPath
	slog.Info("Starting file watcher", "path", watchPath)

	if err := w.addRecursive(watchPath); err != nil {
		return err
	}

	w.running = true

	// Start the event loop
	go w.watchLoop(ctx)

	slog.Info("File watcher started successfully")
	return nil
}

// Stop stops the file watcher
func (w *Watcher) Stop() {
	if !w.running {
		return
	}

	slog.Info("Stopping file watcher")
	w.running = false
	close(w.stopChan)

	// Cancel any pending debounce timer
	w.debounceMutex.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.debounceMutex.Unlock()

	w.watcher.Close()
}

// addRecursive registers a directory and every directory below it.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// watchLoop processes file system events
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)

		case <-w.stopChan:
			return

		case <-ctx.Done():
			return
		}
	}
}

// handleEvent processes a single file system event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New directories join the watch so files created inside them are seen.
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				slog.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	// Chmod alone doesn't change content.
	if event.Op == fsnotify.Chmod {
		return
	}

	if !w.isSupportedFile(event.Name) {
		return
	}

	eventType := FileModified
	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		eventType = FileCreated
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		eventType = FileRemoved
	}

	slog.Debug("Detected library change", "file", event.Name, "op", event.Op.String())

	// Start or reset the debounce timer
	w.debounceMutex.Lock()
	defer w.debounceMutex.Unlock()

	w.pendingCount++
	w.pendingType = eventType

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		w.emitDebounceEvent()
	})
}

// isSupportedFile checks if the file is a watched audio format
func (w *Watcher) isSupportedFile(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	return w.extensions[ext]
}

// emitDebounceEvent emits one aggregated event after the debounce period
func (w *Watcher) emitDebounceEvent() {
	w.debounceMutex.Lock()
	changes := w.pendingCount
	eventType := w.pendingType
	w.pendingCount = 0
	w.debounceMutex.Unlock()

	event := FileEvent{
		Path:      w.watchPath,
		EventType: eventType,
		Changes:   changes,
		Timestamp: time.Now(),
	}

	select {
	case w.eventChan <- event:
		slog.Info("Emitted change event after debounce", "path", event.Path, "changes", changes)
	default:
		slog.Warn("Event channel full, dropping change event", "path", event.Path)
	}
}
