package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"framealign/internal/media/ffprobe"
	"framealign/internal/services"
)

// Service runs ffmpeg-backed audio and frame extraction.
type Service struct {
	ffmpegBinary  string
	ffprobeBinary string
	sampleRateHz  int
	commandRunner func(ctx context.Context, name string, args ...string) error
	prober        func(ctx context.Context, binary, path string) (ffprobe.Result, error)
}

// NewService creates an extraction service using the given binaries and
// audio sample rate.
func NewService(ffmpegBinary, ffprobeBinary string, sampleRateHz int) *Service {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	if ffprobeBinary == "" {
		ffprobeBinary = "ffprobe"
	}
	if sampleRateHz <= 0 {
		sampleRateHz = 16000
	}
	return &Service{
		ffmpegBinary:  ffmpegBinary,
		ffprobeBinary: ffprobeBinary,
		sampleRateHz:  sampleRateHz,
		prober:        ffprobe.Inspect,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// WithProber sets a custom ffprobe implementation (for testing).
func (s *Service) WithProber(prober func(ctx context.Context, binary, path string) (ffprobe.Result, error)) {
	s.prober = prober
}

// Probe inspects the video and reports audio presence plus native frame rate.
func (s *Service) Probe(ctx context.Context, videoPath string) (ProbeInfo, error) {
	result, err := s.prober(ctx, s.ffprobeBinary, videoPath)
	if err != nil {
		return ProbeInfo{}, services.Wrap(services.ErrProbe, "probe", "ffprobe", videoPath, err)
	}
	fps, err := result.FrameRate()
	if err != nil {
		return ProbeInfo{}, services.Wrap(services.ErrProbe, "probe", "frame rate", videoPath, err)
	}
	return ProbeInfo{
		HasAudioStream:  result.HasAudioStream(),
		NativeFPS:       fps,
		DurationSeconds: result.DurationSeconds(),
	}, nil
}

// ProbeInfo summarizes the container properties the pipeline needs.
type ProbeInfo struct {
	HasAudioStream  bool
	NativeFPS       float64
	DurationSeconds float64
}

// ExtractAudio produces a mono WAV file at the configured sample rate. When
// the container has no audio stream a zero-byte placeholder is written
// instead, signaling "no audio" to downstream stages without failing.
func (s *Service) ExtractAudio(ctx context.Context, videoPath, outputPath string) (string, error) {
	result, err := s.prober(ctx, s.ffprobeBinary, videoPath)
	if err != nil {
		return "", services.Wrap(services.ErrProbe, "extract-audio", "ffprobe", videoPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", services.Wrap(services.ErrExtraction, "extract-audio", "ensure output dir", outputPath, err)
	}

	if !result.HasAudioStream() {
		if err := os.WriteFile(outputPath, nil, 0o644); err != nil {
			return "", services.Wrap(services.ErrExtraction, "extract-audio", "write placeholder", outputPath, err)
		}
		return outputPath, nil
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", s.sampleRateHz),
		"-c:a", "pcm_s16le",
		outputPath,
	}
	if err := s.run(ctx, s.ffmpegBinary, args...); err != nil {
		return "", services.Wrap(services.ErrExtraction, "extract-audio", "ffmpeg", videoPath, err)
	}
	return outputPath, nil
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
