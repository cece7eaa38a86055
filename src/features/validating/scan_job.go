package validating

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/contre95/rattlesnake/src/features/jobs"
	"github.com/contre95/rattlesnake/src/music"
)

// ScanTask implements jobs.Task for library scans started in the background.
type ScanTask struct {
	service *Service
	store   music.ValidationStore // nil when scan history is disabled
}

// NewScanTask creates a new ScanTask.
func NewScanTask(service *Service, store music.ValidationStore) *ScanTask {
	return &ScanTask{service: service, store: store}
}

// MetadataKeys returns the required metadata keys for a scan job.
func (t *ScanTask) MetadataKeys() []string {
	return []string{"path"}
}

// Execute runs the scan and reports per-file progress.
func (t *ScanTask) Execute(ctx context.Context, job *jobs.Job, progressUpdater func(int, string)) (map[string]any, error) {
	path := job.Metadata["path"].(string)
	recursive := true
	if v, ok := job.Metadata["recursive"].(bool); ok {
		recursive = v
	}

	run, err := t.service.scan(ctx, path, recursive, func(done, total int, file string) {
		if progressUpdater == nil || total == 0 {
			return
		}
		progress := (done * 100) / total
		if progress > 100 {
			progress = 100
		}
		progressUpdater(progress, fmt.Sprintf("Checked: %s", filepath.Base(file)))
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	if t.store != nil {
		if err := t.store.SaveRun(ctx, run); err != nil {
			job.Logger.Warn("Failed to record scan run", "error", err, "runID", run.ID)
		}
	}

	msg := fmt.Sprintf("Scan finished. Checked %d files (%d with issues, %d read errors).",
		run.TotalFiles(), run.FilesWithIssues(), run.FilesWithErrors())
	job.Logger.Info(msg)
	return map[string]any{
		"runID":  run.ID,
		"total":  run.TotalFiles(),
		"issues": run.FilesWithIssues(),
		"errors": run.FilesWithErrors(),
		"msg":    msg,
	}, nil
}

// Cleanup does nothing for scans.
func (t *ScanTask) Cleanup(job *jobs.Job) error {
	return nil
}
