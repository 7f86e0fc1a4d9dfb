package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"framealign/internal/config"
	"framealign/internal/subtitles"
)

func newSRTCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "srt <alignment.json>",
		Short: "Render a persisted alignment record as an SRT subtitle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alignmentPath, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve alignment path: %w", err)
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = strings.TrimSuffix(alignmentPath, ".json") + ".srt"
			} else if target, err = config.ExpandPath(target); err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}

			if err := subtitles.RenderFile(alignmentPath, target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination SRT path (defaults to the alignment path with a .srt extension)")

	return cmd
}
