package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracksort/internal/config"
	"tracksort/internal/scanner"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var sourceFlag string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the MP3 files a run would process",
		Args:  cobra.NoArgs,
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
			if cfg.Paths.SourceDir == "" {
				return fmt.Errorf("source directory not configured; set paths.source_dir or pass --source")
			}

			files, err := scanner.Scan(cfg.Paths.SourceDir, scanner.Options{ExcludeDirs: cfg.Scanner.ExcludeDirs})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found %d MP3 file(s) under %s\n", len(files), cfg.Paths.SourceDir)
			if verbose {
				for _, file := range files {
					fmt.Fprintf(out, "  %s\n", file)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "Source directory to scan (overrides config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every file path")

	return cmd
}
