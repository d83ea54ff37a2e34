package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tracksort/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [RUN_ID]",
		Short: "Show recent runs, or the per-file results of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				return printRunResults(cmd, store, args[0])
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				mode := "apply"
				if run.DryRun {
					mode = "dry-run"
				}
				state := "running"
				if run.Finished() {
					state = run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
				}
				rows = append(rows, []string{
					run.ID[:8],
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					mode,
					state,
					strconv.Itoa(run.Counts.Succeeded),
					strconv.Itoa(run.Counts.Unmatched),
					strconv.Itoa(run.Counts.Failed),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Mode", "Duration", "OK", "Unmatched", "Errors"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to list")

	return cmd
}

func printRunResults(cmd *cobra.Command, store *journal.Store, runPrefix string) error {
	runs, err := store.RecentRuns(cmd.Context(), 1000)
	if err != nil {
		return err
	}
	var runID string
	for _, run := range runs {
		if run.ID == runPrefix || (len(runPrefix) >= 4 && len(run.ID) >= len(runPrefix) && run.ID[:len(runPrefix)] == runPrefix) {
			runID = run.ID
			break
		}
	}
	if runID == "" {
		return fmt.Errorf("no run matches %q", runPrefix)
	}

	results, err := store.RunResults(cmd.Context(), runID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintf(out, "Run %s recorded no files.\n", runID)
		return nil
	}

	rows := make([][]string, 0, len(results))
	for _, result := range results {
		detail := result.Destination
		if result.Error != "" {
			detail = result.Error
		}
		rows = append(rows, []string{
			filepath.Base(result.File),
			result.Status,
			result.Artist,
			result.Title,
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"File", "Status", "Artist", "Title", "Destination / Error"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	))
	return nil
}
