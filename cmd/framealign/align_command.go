package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"framealign/internal/config"
	"framealign/internal/language"
	"framealign/internal/media/extract"
	"framealign/internal/pipeline"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var model string
	var languageHint string
	var backendName string
	var samplingFPS float64

	cmd := &cobra.Command{
		Use:   "align <video>",
		Short: "Run the full alignment pipeline for a video",
		Long: `Extract audio, transcribe it, sample frames, and align transcript
segments with frame indices. Writes alignment.json and metadata.json to the
output directory alongside audio.wav and the frames/ directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			outDir := strings.TrimSpace(outputDir)
			if outDir == "" {
				outDir = cfg.Paths.OutputDir
			}
			outDir, err = config.ExpandPath(outDir)
			if err != nil {
				return fmt.Errorf("resolve output directory: %w", err)
			}

			fps := samplingFPS
			if fps == 0 {
				fps = cfg.Extraction.SamplingFPS
			}

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			hint := strings.TrimSpace(languageHint)
			if hint == "" {
				hint = cfg.Transcription.Language
			}

			backend, err := newTranscriptionBackend(cfg, backendName, model, hint)
			if err != nil {
				return err
			}

			media := extract.NewService(cfg.FFmpegBinary(), cfg.FFprobeBinary(), cfg.Extraction.SampleRateHz)
			p := pipeline.New(media, backend, logger)

			out := cmd.OutOrStdout()
			if code := language.Normalize(hint); code != "" {
				fmt.Fprintf(out, "Language hint: %s\n", language.DisplayName(code))
			}

			result, err := p.Run(cmd.Context(), pipeline.Request{
				VideoPath:   args[0],
				OutputDir:   outDir,
				SamplingFPS: fps,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Aligned %d segments (%d frames sampled at %g fps)\n",
				len(result.Entries), result.Metadata.FrameCount, result.Metadata.ExtractionFPS)
			fmt.Fprintf(out, "Alignment: %s\n", result.AlignmentPath)
			fmt.Fprintf(out, "Metadata:  %s\n", result.MetadataPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for pipeline artifacts (defaults to paths.output_dir)")
	cmd.Flags().StringVar(&model, "model", "", "Transcription model (defaults to the configured model)")
	cmd.Flags().StringVar(&languageHint, "language", "", "Language hint for transcription (e.g. en, german)")
	cmd.Flags().StringVar(&backendName, "backend", "", "Transcription backend: whisper or openai")
	cmd.Flags().Float64Var(&samplingFPS, "fps", 0, "Frame sampling rate (defaults to extraction.sampling_fps)")

	return cmd
}
