package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/contre95/rattlesnake/src/features/history"
	"github.com/contre95/rattlesnake/src/features/hosting"
	"github.com/contre95/rattlesnake/src/features/jobs"
	"github.com/contre95/rattlesnake/src/features/metrics"
	"github.com/contre95/rattlesnake/src/features/validating"
	"github.com/contre95/rattlesnake/src/features/watching"
	"github.com/contre95/rattlesnake/src/infra/artwork"
	"github.com/contre95/rattlesnake/src/infra/database"
	"github.com/contre95/rattlesnake/src/infra/notify"
	"github.com/contre95/rattlesnake/src/infra/tag"
	"github.com/contre95/rattlesnake/src/music"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Serve starts the HTTP server: an HTML report view on /, report downloads
on /report, background scan jobs on /scan and /jobs, artwork thumbnails,
scan history, Prometheus metrics on /metrics and a health check. With
watch.auto_start enabled the library watcher runs alongside it.`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	reader := tag.NewReader()
	scans := validating.NewService(reader, cfg)
	art := artwork.NewService()

	var store music.ValidationStore
	hist := history.NewService(nil)
	if cfg.Get().Database.Enabled {
		sqlite, err := database.NewSqliteStore(cfg.Get().Database.Path)
		if err != nil {
			return err
		}
		store = sqlite
		hist = history.NewService(sqlite)
		defer hist.Close()
	}

	metricsService := metrics.NewService()
	scans.AddObserver(metricsService.Observe)

	jobService := jobs.NewService(&cfg.Get().Jobs)
	scanTask := validating.NewScanTask(scans, store)
	jobService.RegisterHandler("library_scan", jobs.NewBaseTaskHandler(scanTask))
	go sweepOldJobs(ctx, jobService)

	if cfg.Get().Watch.AutoStart {
		var notifier watching.Notifier
		tn, err := notify.NewTelegramNotifier(&cfg.Get().Telegram)
		if err != nil {
			slog.Error("Failed to set up Telegram notifier", "error", err)
		} else if tn != nil {
			notifier = tn
		}
		watchService := watching.NewService(scans, hist, cfg, notifier)
		go func() {
			if err := watchService.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("Watcher stopped", "error", err)
			}
		}()
	}

	server := hosting.NewServer(cfg, scans, reader, art, hist, jobService, metricsService)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("Server stopped", "error", err)
			cancel()
		}
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfg.Get().Server.Port)

	<-ctx.Done()
	slog.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		return err
	}
	slog.Info("Server gracefully shut down.")
	return nil
}

// sweepOldJobs drops finished jobs older than a day, once an hour.
func sweepOldJobs(ctx context.Context, jobService *jobs.Service) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			jobService.CleanupOldJobs(24 * time.Hour)
		}
	}
}
