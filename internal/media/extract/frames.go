package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"framealign/internal/services"
)

// framePattern yields fixed-width zero-padded frame names so lexical and
// temporal order coincide.
const framePattern = "frame_%04d.jpg"

// SampleFrames extracts still frames from the video at the requested rate.
// Frames are written as frame_0000.jpg, frame_0001.jpg, ... under outputDir.
// Returns the sorted frame paths and their count.
func (s *Service) SampleFrames(ctx context.Context, videoPath, outputDir string, fps float64) ([]string, int, error) {
	if fps <= 0 {
		return nil, 0, services.Wrap(services.ErrConfiguration, "extract-frames", "", fmt.Sprintf("sampling fps must be positive, got %v", fps), nil)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, 0, services.Wrap(services.ErrExtraction, "extract-frames", "ensure output dir", outputDir, err)
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vf", "fps=" + strconv.FormatFloat(fps, 'f', -1, 64),
		"-qscale:v", "2",
		"-start_number", "0",
		filepath.Join(outputDir, framePattern),
	}
	if err := s.run(ctx, s.ffmpegBinary, args...); err != nil {
		return nil, 0, services.Wrap(services.ErrExtraction, "extract-frames", "ffmpeg", videoPath, err)
	}

	return ListFrames(outputDir)
}

// ListFrames returns the sorted frame paths present in dir along with their count.
func ListFrames(dir string) ([]string, int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "frame_*.jpg"))
	if err != nil {
		return nil, 0, services.Wrap(services.ErrExtraction, "extract-frames", "list frames", dir, err)
	}
	sort.Strings(matches)
	return matches, len(matches), nil
}
