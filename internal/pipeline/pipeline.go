package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"framealign/internal/align"
	"framealign/internal/logging"
	"framealign/internal/media/extract"
	"framealign/internal/services"
	"framealign/internal/transcribe"
)

// MediaService is the media tooling the pipeline depends on. *extract.Service
// provides the real implementation; tests substitute an in-memory fake.
type MediaService interface {
	Probe(ctx context.Context, videoPath string) (extract.ProbeInfo, error)
	ExtractAudio(ctx context.Context, videoPath, outputPath string) (string, error)
	SampleFrames(ctx context.Context, videoPath, outputDir string, fps float64) ([]string, int, error)
}

// Request describes one pipeline invocation.
type Request struct {
	VideoPath   string
	OutputDir   string
	SamplingFPS float64
}

// Result is the terminal state of a completed run.
type Result struct {
	Entries       []align.Entry
	Metadata      Metadata
	AlignmentPath string
	MetadataPath  string
}

// Pipeline sequences audio extraction, transcription, frame sampling,
// alignment, and artifact persistence for a single video. Each invocation is
// independent: there is no checkpointing, retrying, or cross-run state, and
// concurrent runs must target distinct output directories.
type Pipeline struct {
	media       MediaService
	transcriber transcribe.Backend
	logger      *slog.Logger
}

// New creates a pipeline. A nil logger disables logging.
func New(media MediaService, transcriber transcribe.Backend, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		media:       media,
		transcriber: transcriber,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run executes the full alignment pipeline. The returned result carries the
// alignment record that was persisted to the output directory. Zero-byte
// audio is a recoverable condition producing an empty record; every other
// stage failure aborts the run.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	if req.SamplingFPS <= 0 {
		return Result{}, services.Wrap(services.ErrConfiguration, "validate", "", fmt.Sprintf("sampling fps must be positive, got %v", req.SamplingFPS), nil)
	}

	videoPath, err := filepath.Abs(req.VideoPath)
	if err != nil {
		return Result{}, services.Wrap(services.ErrConfiguration, "validate", "resolve video path", req.VideoPath, err)
	}
	if _, err := os.Stat(videoPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, services.Wrap(services.ErrNotFound, "validate", "", videoPath, err)
		}
		return Result{}, services.Wrap(services.ErrConfiguration, "validate", "inspect video", videoPath, err)
	}
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return Result{}, services.Wrap(services.ErrOutput, "validate", "create output dir", req.OutputDir, err)
	}

	logger := p.logger.With(
		logging.String(logging.FieldRunID, uuid.NewString()),
		logging.String("video", videoPath),
	)
	logger.Info("run started",
		logging.String("output_dir", req.OutputDir),
		logging.Float64("sampling_fps", req.SamplingFPS),
	)

	audioPath := filepath.Join(req.OutputDir, AudioFileName)
	if _, err := p.media.ExtractAudio(ctx, videoPath, audioPath); err != nil {
		return Result{}, err
	}

	segments, err := p.transcribeIfAudible(ctx, logger, audioPath)
	if err != nil {
		return Result{}, err
	}

	// Frames are extracted even when the transcript is empty so frame
	// artifacts are always available.
	frameDir := filepath.Join(req.OutputDir, FramesDirName)
	_, frameCount, err := p.media.SampleFrames(ctx, videoPath, frameDir, req.SamplingFPS)
	if err != nil {
		return Result{}, err
	}
	info, err := p.media.Probe(ctx, videoPath)
	if err != nil {
		return Result{}, err
	}
	logger.Info("frames extracted",
		logging.String(logging.FieldStage, "frames"),
		logging.Int("frame_count", frameCount),
		logging.Float64("native_fps", info.NativeFPS),
		logging.Bool("has_audio", info.HasAudioStream),
		logging.Duration("video_duration", time.Duration(info.DurationSeconds*float64(time.Second))),
	)

	entries := make([]align.Entry, 0)
	if len(segments) > 0 {
		entries, err = align.Align(segments, info.NativeFPS, req.SamplingFPS)
		if err != nil {
			return Result{}, err
		}
	}

	metadata := Metadata{
		VideoPath:     videoPath,
		AudioPath:     audioPath,
		FrameDir:      frameDir,
		FrameCount:    frameCount,
		VideoFPS:      info.NativeFPS,
		ExtractionFPS: req.SamplingFPS,
	}

	result := Result{
		Entries:       entries,
		Metadata:      metadata,
		AlignmentPath: AlignmentPath(req.OutputDir),
		MetadataPath:  MetadataPath(req.OutputDir),
	}

	// Both artifacts must land; a partial write is not rolled back.
	if err := writeJSONFile(result.AlignmentPath, entries); err != nil {
		return Result{}, services.Wrap(services.ErrOutput, "persist", "alignment", result.AlignmentPath, err)
	}
	if err := writeJSONFile(result.MetadataPath, metadata); err != nil {
		return Result{}, services.Wrap(services.ErrOutput, "persist", "metadata", result.MetadataPath, err)
	}

	logger.Info("run completed",
		logging.Int("segments", len(segments)),
		logging.Int("entries", len(entries)),
	)
	return result, nil
}

// transcribeIfAudible returns the transcript for the extracted audio, or nil
// when the artifact is a zero-byte placeholder. The size is re-checked right
// before the model is invoked so a placeholder never reaches it.
func (p *Pipeline) transcribeIfAudible(ctx context.Context, logger *slog.Logger, audioPath string) ([]transcribe.Segment, error) {
	empty, err := isEmptyFile(audioPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExtraction, "transcribe", "inspect audio", audioPath, err)
	}
	if empty {
		logger.Warn("no audio content found; alignment will be empty",
			logging.String(logging.FieldStage, "transcribe"),
			logging.String("audio", audioPath),
		)
		return nil, nil
	}

	if empty, err = isEmptyFile(audioPath); err != nil {
		return nil, services.Wrap(services.ErrExtraction, "transcribe", "inspect audio", audioPath, err)
	}
	if empty {
		logger.Warn("audio became empty before transcription; alignment will be empty",
			logging.String(logging.FieldStage, "transcribe"),
			logging.String("audio", audioPath),
		)
		return nil, nil
	}

	segments, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	logger.Info("transcription complete",
		logging.String(logging.FieldStage, "transcribe"),
		logging.Int("segments", len(segments)),
	)
	return segments, nil
}

func isEmptyFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Size() == 0, nil
}
