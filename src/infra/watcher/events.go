package watcher

import (
	"time"
)

// FileEventType represents the type of file system event
type FileEventType string

const (
	FileCreated  FileEventType = "created"
	FileRemoved  FileEventType = "removed"
	FileModified FileEventType = "modified"
)

// FileEvent is one debounced burst of library changes.
type FileEvent struct {
	Path      string
	EventType FileEventType
	Changes   int
	Timestamp time.Time
}
