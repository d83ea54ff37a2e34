package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tracksort/internal/config"
	"tracksort/internal/pipeline"
)

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "identify FILE",
		Short: "Preview identification and resolution for one file",
		Long: `Fingerprint a single MP3 file, look it up, and show the metadata and
destination a run would produce. Nothing is written or moved; this is a
per-file dry run for troubleshooting identification issues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve file path: %w", err)
			}

			logger, err := ctx.newLogger(cfg, verbose)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			p, err := pipeline.New(cfg, nil, logger)
			if err != nil {
				return err
			}

			result := p.ProcessFile(cmd.Context(), path, true)
			out := cmd.OutOrStdout()

			switch result.Status {
			case pipeline.StatusUnmatched:
				reason := result.Err
				if reason == "" {
					reason = "no confident match"
				}
				fmt.Fprintf(out, "Unmatched: %s\n", reason)
				return nil
			case pipeline.StatusError:
				return fmt.Errorf("%s", result.Err)
			}

			track := result.Track
			rows := [][]string{
				{"Title", track.Title},
				{"Artist", track.Artist},
				{"Album artist", track.AlbumArtist},
				{"Album", track.Album},
				{"Track", track.TrackString()},
			}
			if track.DiscNumber > 0 {
				rows = append(rows, []string{"Disc", strconv.Itoa(track.DiscNumber)})
			}
			if track.Year > 0 {
				rows = append(rows, []string{"Year", strconv.Itoa(track.Year)})
			}
			rows = append(rows,
				[]string{"Score", fmt.Sprintf("%.2f", result.Score)},
				[]string{"Recording ID", track.RecordingID},
				[]string{"Release ID", track.ReleaseID},
				[]string{"Destination", result.Move.Destination},
			)
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))

			if len(result.TagChanges) > 0 {
				changeRows := make([][]string, 0, len(result.TagChanges))
				for _, change := range result.TagChanges {
					changeRows = append(changeRows, []string{change.Field, change.Old, change.New})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable([]string{"Tag", "Current", "Resolved"}, changeRows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft}))
			} else {
				fmt.Fprintln(out, "Tags are already up to date.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Mirror logs to stderr")

	return cmd
}
