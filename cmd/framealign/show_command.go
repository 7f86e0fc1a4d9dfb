package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"framealign/internal/align"
	"framealign/internal/config"
	"framealign/internal/pipeline"
	"framealign/internal/subtitles"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <output-dir>",
		Short: "Display the alignment record and run metadata from an output directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve output directory: %w", err)
			}

			entries, err := pipeline.ReadAlignment(outputDir)
			if err != nil {
				return err
			}
			metadata, err := pipeline.ReadMetadata(outputDir)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, struct {
					Metadata  pipeline.Metadata `json:"metadata"`
					Alignment []align.Entry     `json:"alignment"`
				}{Metadata: metadata, Alignment: entries})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Video:      %s\n", metadata.VideoPath)
			fmt.Fprintf(out, "Native fps: %g  Sampling fps: %g  Frames: %d\n",
				metadata.VideoFPS, metadata.ExtractionFPS, metadata.FrameCount)

			if len(entries) == 0 {
				fmt.Fprintln(out, "Alignment record is empty (no speech detected).")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for i, entry := range entries {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					subtitles.FormatTimestamp(entry.StartTime),
					subtitles.FormatTimestamp(entry.EndTime),
					fmt.Sprintf("%d-%d", entry.StartFrame, entry.EndFrame),
					entry.Text,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Start", "End", "Frames", "Text"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
				isTerminal(os.Stdout),
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON instead of a table")

	return cmd
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
