package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/contre95/rattlesnake/src/features/config"
)

// stubHandler blocks inside Execute until released, so tests control when
// jobs finish and with what outcome.
type stubHandler struct {
	started chan *Job
	release chan error
}

func newStubHandler() *stubHandler {
	return &stubHandler{
		started: make(chan *Job, 4),
		release: make(chan error, 4),
	}
}

func (h *stubHandler) Execute(ctx context.Context, job *Job, _ chan<- JobProgress) error {
	h.started <- job
	select {
	case err := <-h.release:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *stubHandler) Cancel(jobID string) error { return nil }

func newTestJobService() *Service {
	return NewService(&config.Jobs{Log: false})
}

func waitForStarted(t *testing.T, handler *stubHandler) *Job {
	t.Helper()
	select {
	case job := <-handler.started:
		return job
	case <-time.After(2 * time.Second):
		t.Fatal("handler never started")
		return nil
	}
}

func waitForStatus(t *testing.T, s *Service, id string, want JobStatus) *Job {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if job, ok := s.GetJob(id); ok && job.Status == want {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	job, _ := s.GetJob(id)
	t.Fatalf("job %s never reached %s, last state: %+v", id, want, job)
	return nil
}

func TestStartJobRunsHandler(t *testing.T) {
	service := newTestJobService()
	handler := newStubHandler()
	service.RegisterHandler("library_scan", handler)

	id, err := service.StartJob("library_scan", "Library Scan", map[string]any{"path": "/music"})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	started := waitForStarted(t, handler)
	if started.ID != id {
		t.Fatalf("expected job %s to start, got %s", id, started.ID)
	}
	handler.release <- nil

	job := waitForStatus(t, service, id, JobStatusCompleted)
	if job.Progress != 100 {
		t.Fatalf("expected completed job at 100%%, got %d", job.Progress)
	}
}

func TestJobFailureCarriesError(t *testing.T) {
	service := newTestJobService()
	handler := newStubHandler()
	service.RegisterHandler("library_scan", handler)

	id, err := service.StartJob("library_scan", "Library Scan", nil)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	waitForStarted(t, handler)
	handler.release <- errors.New("disk detached")

	job := waitForStatus(t, service, id, JobStatusFailed)
	if job.Error != "disk detached" {
		t.Fatalf("expected error to be recorded, got %q", job.Error)
	}
}

func TestStartJobWithoutHandlerFails(t *testing.T) {
	service := newTestJobService()

	id, err := service.StartJob("unknown", "Nope", nil)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	job := waitForStatus(t, service, id, JobStatusFailed)
	if job.Message != "No handler registered" {
		t.Fatalf("unexpected message %q", job.Message)
	}
}

func TestSecondJobOfSameTypeQueues(t *testing.T) {
	service := newTestJobService()
	handler := newStubHandler()
	service.RegisterHandler("library_scan", handler)

	first, err := service.StartJob("library_scan", "First", nil)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	waitForStarted(t, handler)

	second, err := service.StartJob("library_scan", "Second", nil)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if job, _ := service.GetJob(second); job.Status != JobStatusPending {
		t.Fatalf("expected second job to queue, got %s", job.Status)
	}

	// Finishing the first starts the queued one.
	handler.release <- nil
	waitForStatus(t, service, first, JobStatusCompleted)
	started := waitForStarted(t, handler)
	if started.ID != second {
		t.Fatalf("expected queued job to start, got %s", started.ID)
	}
	handler.release <- nil
	waitForStatus(t, service, second, JobStatusCompleted)
}

func TestCancelJob(t *testing.T) {
	service := newTestJobService()
	handler := newStubHandler()
	service.RegisterHandler("library_scan", handler)

	id, err := service.StartJob("library_scan", "Library Scan", nil)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	waitForStarted(t, handler)

	if err := service.CancelJob(id); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	job := waitForStatus(t, service, id, JobStatusCancelled)
	if job.Message != "Job cancelled" {
		t.Fatalf("unexpected message %q", job.Message)
	}

	if err := service.CancelJob("missing"); err == nil {
		t.Fatal("expected cancel of unknown job to fail")
	}
}

func TestClearFinished(t *testing.T) {
	service := newTestJobService()
	handler := newStubHandler()
	service.RegisterHandler("library_scan", handler)

	done, _ := service.StartJob("library_scan", "Done", nil)
	waitForStarted(t, handler)
	handler.release <- nil
	waitForStatus(t, service, done, JobStatusCompleted)

	running, _ := service.StartJob("library_scan", "Running", nil)
	waitForStarted(t, handler)

	if cleared := service.ClearFinished(); cleared != 1 {
		t.Fatalf("expected 1 cleared job, got %d", cleared)
	}
	if _, ok := service.GetJob(done); ok {
		t.Fatal("expected finished job to be gone")
	}
	if _, ok := service.GetJob(running); !ok {
		t.Fatal("expected running job to survive")
	}

	handler.release <- nil
	waitForStatus(t, service, running, JobStatusCompleted)
}

func TestCompletionWebhook(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "hook.out")
	service := NewService(&config.Jobs{
		Log: false,
		Webhooks: config.WebhookConfig{
			Enabled:  true,
			JobTypes: []string{"*"},
			Command:  "printf '%s' '{{.Status}}' > " + marker,
		},
	})
	handler := newStubHandler()
	service.RegisterHandler("library_scan", handler)

	id, err := service.StartJob("library_scan", "Library Scan", nil)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	waitForStarted(t, handler)
	handler.release <- nil
	waitForStatus(t, service, id, JobStatusCompleted)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(marker); err == nil {
			if string(data) != "completed" {
				t.Fatalf("unexpected webhook payload %q", data)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("webhook command never ran")
}
