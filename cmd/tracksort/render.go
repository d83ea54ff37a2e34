package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"tracksort/internal/pipeline"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiDim    = "\x1b[2m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorize(enabled bool, color, s string) string {
	if !enabled || color == "" {
		return s
	}
	return color + s + ansiReset
}

// printResult writes the one-line outcome for a processed file.
func printResult(out io.Writer, result pipeline.Result, verbose, color bool) {
	name := filepath.Base(result.File)
	switch result.Status {
	case pipeline.StatusSuccess:
		label := "resolved"
		if result.Track != nil {
			label = result.Track.DisplayName()
		}
		fmt.Fprintf(out, "  %s %s -> %s\n", colorize(color, ansiGreen, "+"), name, label)
		if verbose && result.Move.Destination != "" && !result.Move.Skipped {
			fmt.Fprintf(out, "    %s\n", colorize(color, ansiDim, "-> "+result.Move.Destination))
		}
	case pipeline.StatusUnmatched:
		reason := result.Err
		if reason == "" {
			reason = "no confident match"
		}
		fmt.Fprintf(out, "  %s %s - %s\n", colorize(color, ansiYellow, "?"), name, reason)
	default:
		reason := result.Err
		if reason == "" {
			reason = "unknown error"
		}
		fmt.Fprintf(out, "  %s %s - %s\n", colorize(color, ansiRed, "x"), name, reason)
	}
}

func printSummary(out io.Writer, summary pipeline.Summary, dryRun bool) {
	rows := [][]string{
		{"Succeeded", fmt.Sprintf("%d", summary.Succeeded)},
		{"Unmatched", fmt.Sprintf("%d", summary.Unmatched)},
		{"Errors", fmt.Sprintf("%d", summary.Failed)},
		{"Total", fmt.Sprintf("%d", summary.Processed)},
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable([]string{"Status", "Files"}, rows, []columnAlignment{alignLeft, alignRight}))

	if dryRun {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Dry-run mode: no changes were applied.")
		fmt.Fprintln(out, "Re-run with --apply (or set options.dry_run = false) to apply them.")
	}
}
