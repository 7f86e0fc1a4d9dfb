package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"framealign/internal/align"
	"framealign/internal/services"
)

// Artifact names inside a run's output directory.
const (
	AudioFileName     = "audio.wav"
	FramesDirName     = "frames"
	AlignmentFileName = "alignment.json"
	MetadataFileName  = "metadata.json"
)

// Metadata describes one pipeline execution. Written once per run and never
// updated afterwards.
type Metadata struct {
	VideoPath     string  `json:"video_path"`
	AudioPath     string  `json:"audio_path"`
	FrameDir      string  `json:"frame_dir"`
	FrameCount    int     `json:"frame_count"`
	VideoFPS      float64 `json:"video_fps"`
	ExtractionFPS float64 `json:"extraction_fps"`
}

// AlignmentPath returns the alignment artifact path for an output directory.
func AlignmentPath(outputDir string) string {
	return filepath.Join(outputDir, AlignmentFileName)
}

// MetadataPath returns the metadata artifact path for an output directory.
func MetadataPath(outputDir string) string {
	return filepath.Join(outputDir, MetadataFileName)
}

// ReadAlignment loads a persisted alignment record.
func ReadAlignment(outputDir string) ([]align.Entry, error) {
	path := AlignmentPath(outputDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "artifacts", "", path, err)
		}
		return nil, services.Wrap(services.ErrOutput, "artifacts", "read alignment", path, err)
	}
	var entries []align.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, services.Wrap(services.ErrOutput, "artifacts", "parse alignment", path, err)
	}
	return entries, nil
}

// ReadMetadata loads a persisted run metadata record.
func ReadMetadata(outputDir string) (Metadata, error) {
	path := MetadataPath(outputDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Metadata{}, services.Wrap(services.ErrNotFound, "artifacts", "", path, err)
		}
		return Metadata{}, services.Wrap(services.ErrOutput, "artifacts", "read metadata", path, err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, services.Wrap(services.ErrOutput, "artifacts", "parse metadata", path, err)
	}
	return meta, nil
}

func writeJSONFile(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
