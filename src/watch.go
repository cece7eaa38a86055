package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/contre95/rattlesnake/src/features/history"
	"github.com/contre95/rattlesnake/src/features/validating"
	"github.com/contre95/rattlesnake/src/features/watching"
	"github.com/contre95/rattlesnake/src/infra/database"
	"github.com/contre95/rattlesnake/src/infra/notify"
	"github.com/contre95/rattlesnake/src/infra/tag"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [directory]",
		Short: "Watch a library and revalidate it on changes",
		Long: `Watch keeps an eye on the library directory and reruns the validation
whenever audio files are created, changed or removed. Change bursts are
debounced so one album copy triggers one rescan. With Telegram configured,
each triggered rescan sends a summary message.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatchCmd,
	}
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		updated := *cfg.Get()
		updated.LibraryPath = args[0]
		cfg.Update(&updated)
	}
	if cfg.Get().LibraryPath == "" {
		return errors.New("no directory given and no libraryPath configured")
	}

	reader := tag.NewReader()
	scans := validating.NewService(reader, cfg)

	hist := history.NewService(nil)
	if cfg.Get().Database.Enabled {
		store, err := database.NewSqliteStore(cfg.Get().Database.Path)
		if err != nil {
			return err
		}
		hist = history.NewService(store)
		defer hist.Close()
	}

	var notifier watching.Notifier
	tn, err := notify.NewTelegramNotifier(&cfg.Get().Telegram)
	if err != nil {
		slog.Error("Failed to set up Telegram notifier", "error", err)
	} else if tn != nil {
		notifier = tn
	}

	ctx, cancel := signalContext()
	defer cancel()

	service := watching.NewService(scans, hist, cfg, notifier)
	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("Watch stopped")
	return nil
}
