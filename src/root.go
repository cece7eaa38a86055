package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/contre95/rattlesnake/src/features/config"
	"github.com/contre95/rattlesnake/src/features/history"
	"github.com/contre95/rattlesnake/src/features/logging"
	"github.com/contre95/rattlesnake/src/features/reporting"
	"github.com/contre95/rattlesnake/src/features/validating"
	"github.com/contre95/rattlesnake/src/infra/database"
	"github.com/contre95/rattlesnake/src/infra/tag"
	"github.com/contre95/rattlesnake/src/music"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Running it with a directory performs
// a validation scan, so the everyday invocation stays a single argument.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rattlesnake [directory]",
		Short: "Validate metadata of a music library",
		Long: `Rattlesnake walks a music library and checks every audio file for the
metadata a well-kept collection needs: album artwork, album, artist and
track number. Files that cannot be read are reported instead of skipped
silently.

Examples:
  # Validate a library and print the text report
  rattlesnake ~/Music

  # Only the current directory level, as JSON, into a file
  rattlesnake --no-recursive --format json --output report.json ~/Music

  # Just the paths missing album artwork
  rattlesnake --condensed ~/Music

  # Record the run so it shows up in 'rattlesnake history'
  rattlesnake --save ~/Music`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runRootCmd,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "config.yaml", "Configuration file path (created with defaults when missing)")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress logging, errors are still shown")

	cmd.Flags().BoolP("recursive", "r", true, "Scan subdirectories")
	cmd.Flags().Bool("no-recursive", false, "Only scan the top level (wins over --recursive)")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file or directory instead of stdout")
	cmd.Flags().StringP("format", "f", "", "Report format: text or json")
	cmd.Flags().BoolP("condensed", "c", false, "Only list paths missing album artwork")
	cmd.Flags().Bool("save", false, "Record the run in the history database")

	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and installs the default logger. Every
// subcommand starts here.
func setup(cmd *cobra.Command) (*config.Manager, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logging.SetupLogger(cfg, quiet))
	return cfg, nil
}

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// runRootCmd executes a scan over the given directory and emits the report.
func runRootCmd(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	dir := cfg.Get().LibraryPath
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return errors.New("no directory given and no libraryPath configured")
	}

	recursive := cfg.Get().Validation.Recursive
	if cmd.Flags().Changed("recursive") {
		recursive, _ = cmd.Flags().GetBool("recursive")
	}
	if noRecursive, _ := cmd.Flags().GetBool("no-recursive"); noRecursive {
		recursive = false
	}

	condensed := cfg.Get().Report.Condensed
	if cmd.Flags().Changed("condensed") {
		condensed, _ = cmd.Flags().GetBool("condensed")
	}

	formatName, _ := cmd.Flags().GetString("format")
	if formatName == "" {
		formatName = cfg.Get().Report.Format
	}
	if formatName == "" {
		formatName = string(reporting.FormatText)
	}
	format, err := reporting.ParseFormat(formatName)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	reader := tag.NewReader()
	scans := validating.NewService(reader, cfg)

	run, err := scans.ScanDirectory(ctx, dir, recursive)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("validation cancelled by user")
		}
		return err
	}

	report, err := reporting.Render(run.Results, format, condensed)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = cfg.Get().Report.OutputDir
	}
	path, err := reporting.WriteReport(report, output, dir, format)
	if err != nil {
		return err
	}
	if path != "" {
		slog.Info("Report saved", "path", path)
		if condensed {
			fmt.Printf("Total files missing album artwork: %d\n", reporting.MissingArtworkCount(run.Results))
		}
	}

	save, _ := cmd.Flags().GetBool("save")
	if save || cfg.Get().Database.Enabled {
		if err := recordRun(ctx, cfg, run); err != nil {
			return err
		}
	}
	return nil
}

// recordRun stores a completed run in the history database.
func recordRun(ctx context.Context, cfg *config.Manager, run *music.ScanRun) error {
	store, err := database.NewSqliteStore(cfg.Get().Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	hist := history.NewService(store)
	defer hist.Close()

	if err := hist.Record(ctx, run); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	slog.Info("Run recorded", "runID", run.ID)
	return nil
}
