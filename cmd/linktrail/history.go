package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linktrail/linktrail/internal/config"
	"github.com/linktrail/linktrail/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past crawl runs from the local database",
		Long: `History lists crawl runs stored in the local database, newest first.

Examples:
  # List all stored runs
  linktrail history

  # Only runs whose seed mentions a host
  linktrail history --host example.com

  # Show the URLs visited during a specific run
  linktrail history --run 12`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("host", "", "Only show runs whose seed contains this host")
	cmd.Flags().Int64("run", 0, "Show the visited URLs of a specific run ID")
	cmd.Flags().String("db-dir", "", "Database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	host, err := cmd.Flags().GetString("host")
	if err != nil {
		return err
	}

	runID, err := cmd.Flags().GetInt64("run")
	if err != nil {
		return err
	}

	// Never create an empty database just to list nothing
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no crawl history found (run a crawl first): %w", err)
	}
	defer db.Close()

	if runID > 0 {
		return printRunVisits(cmd, db, runID)
	}

	return printRuns(cmd, db, host)
}

// printRuns lists stored runs in a fixed-width table.
func printRuns(cmd *cobra.Command, db *database.VisitDB, host string) error {
	runs, err := db.ListRuns(cmd.Context(), host)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()

	if len(runs) == 0 {
		fmt.Fprintln(out, "No crawl runs recorded.")
		return nil
	}

	fmt.Fprintf(out, "%-6s %-20s %-9s %-7s %s\n", "ID", "STARTED", "VISITED", "FAILED", "SEED")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	for _, run := range runs {
		started := "-"
		if !run.StartedAt.IsZero() {
			started = run.StartedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(out, "%-6d %-20s %-9d %-7d %s\n",
			run.ID, started, run.PagesVisited, run.PagesFailed, run.Seed)
	}

	return nil
}

// printRunVisits lists every URL visited during one run.
func printRunVisits(cmd *cobra.Command, db *database.VisitDB, runID int64) error {
	urls, err := db.RunVisits(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("failed to list visits: %w", err)
	}

	out := cmd.OutOrStdout()

	if len(urls) == 0 {
		fmt.Fprintf(out, "No visits recorded for run %d.\n", runID)
		return nil
	}

	for _, u := range urls {
		fmt.Fprintln(out, u)
	}

	return nil
}
