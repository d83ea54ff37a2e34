package main

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"tracksort/internal/config"
	"tracksort/internal/journal"
	"tracksort/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		sourceFlag string
		dryRunFlag bool
		applyFlag  bool
		limitFlag  int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scan the source directory and organize every MP3 file",
		Long: `Scan the configured source directory, identify each MP3 file by acoustic
fingerprint, resolve its canonical metadata, update ID3 tags, and move the
file into the library layout. Runs in dry-run mode unless --apply is given
or options.dry_run is false in the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if sourceFlag != "" {
				expanded, err := config.ExpandPath(sourceFlag)
				if err != nil {
					return fmt.Errorf("resolve source path: %w", err)
				}
				cfg.Paths.SourceDir = expanded
			}

			dryRun := cfg.Options.DryRun
			if dryRunFlag {
				dryRun = true
			}
			if applyFlag {
				dryRun = false
			}

			logger, err := ctx.newLogger(cfg, verbose)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			// One run at a time keeps the MusicBrainz rate limit
			// process-wide in practice, not just per process.
			runLock := flock.New(filepath.Join(cfg.Paths.LogDir, "tracksort.lock"))
			locked, err := runLock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another tracksort run is already in progress")
			}
			defer func() { _ = runLock.Unlock() }()

			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			p, err := pipeline.New(cfg, store, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color := shouldColorize(out)
			mode := "apply"
			if dryRun {
				mode = "dry-run"
			}
			fmt.Fprintf(out, "Source: %s\n", cfg.Paths.SourceDir)
			fmt.Fprintf(out, "Mode:   %s\n\n", mode)

			report, err := p.Run(cmd.Context(), pipeline.Options{
				DryRun: dryRun,
				Limit:  limitFlag,
				OnResult: func(result pipeline.Result) {
					printResult(out, result, verbose, color)
				},
			})
			if err != nil {
				return err
			}

			if report.Summary.Processed == 0 {
				fmt.Fprintln(out, "No MP3 files found.")
				return nil
			}

			printSummary(out, report.Summary, dryRun)

			if report.Summary.Unmatched > 0 && !dryRun {
				fmt.Fprintf(out, "\n%d unidentified file(s) moved under %s\n",
					report.Summary.Unmatched,
					filepath.Join(cfg.OutputRoot(), cfg.Organizer.UnmatchedDir))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "Source directory to scan (overrides config)")
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Preview changes without applying them")
	cmd.Flags().BoolVar(&applyFlag, "apply", false, "Apply changes even when the config defaults to dry-run")
	cmd.Flags().IntVar(&limitFlag, "limit", 0, "Process at most this many files")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show destinations and mirror logs to stderr")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "apply")

	return cmd
}
