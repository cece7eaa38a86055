package main

import (
	"fmt"
	"time"

	"github.com/contre95/rattlesnake/src/features/history"
	"github.com/contre95/rattlesnake/src/features/reporting"
	"github.com/contre95/rattlesnake/src/infra/database"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded validation runs",
		Long: `History lists the runs recorded in the history database, newest first.
With --run, one stored run is rendered through the normal reporter, so
old scans can be re-read in any format. Unambiguous ID prefixes work.`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 10, "Number of runs to list")
	cmd.Flags().String("run", "", "Render the report of one recorded run (ID or unique prefix)")
	cmd.Flags().StringP("format", "f", string(reporting.FormatText), "Report format: text or json")
	cmd.Flags().BoolP("condensed", "c", false, "Only list paths missing album artwork")

	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	hist := history.NewService(nil)
	if cfg.Get().Database.Enabled {
		store, err := database.NewSqliteStore(cfg.Get().Database.Path)
		if err != nil {
			return err
		}
		hist = history.NewService(store)
		defer hist.Close()
	}

	if runID, _ := cmd.Flags().GetString("run"); runID != "" {
		return renderStoredRun(cmd, hist, runID)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	summaries, err := hist.Summaries(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("%-36s  %-19s  %10s  %6s  %6s  %6s\n", "RUN", "STARTED", "DURATION", "FILES", "ISSUES", "ERRORS")
	for _, s := range summaries {
		fmt.Printf("%-36s  %-19s  %10s  %6d  %6d  %6d\n",
			s.Run.ID,
			s.Run.StartedAt.Format("2006-01-02 15:04:05"),
			s.Run.Duration.Round(time.Millisecond),
			s.Total, s.Issues, s.Errors)
	}
	return nil
}

// renderStoredRun re-renders one recorded run through the reporter.
func renderStoredRun(cmd *cobra.Command, hist *history.Service, runID string) error {
	run, err := hist.Run(cmd.Context(), runID)
	if err != nil {
		return err
	}

	formatName, _ := cmd.Flags().GetString("format")
	format, err := reporting.ParseFormat(formatName)
	if err != nil {
		return err
	}
	condensed, _ := cmd.Flags().GetBool("condensed")

	report, err := reporting.Render(run.Results, format, condensed)
	if err != nil {
		return err
	}
	fmt.Println(report)
	return nil
}
