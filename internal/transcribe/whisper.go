package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	langpkg "framealign/internal/language"
	"framealign/internal/services"
)

// DefaultWhisperModel is used when no model size is configured.
const DefaultWhisperModel = "small"

// WhisperCLI transcribes audio by invoking the local Whisper command-line
// tool with JSON output.
type WhisperCLI struct {
	binary        string
	model         string
	language      string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewWhisperCLI creates a local Whisper backend. language is an optional
// hint; any recognized form is normalized to ISO 639-1.
func NewWhisperCLI(binary, model, language string) *WhisperCLI {
	if binary == "" {
		binary = "whisper"
	}
	if model == "" {
		model = DefaultWhisperModel
	}
	return &WhisperCLI{
		binary:   binary,
		model:    model,
		language: langpkg.Normalize(language),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (w *WhisperCLI) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	w.commandRunner = runner
}

// Model returns the configured model size for logging.
func (w *WhisperCLI) Model() string {
	return w.model
}

// Transcribe runs Whisper on the audio file and parses the segment payload.
func (w *WhisperCLI) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	if _, err := os.Stat(audioPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "transcribe", "", audioPath, err)
		}
		return nil, services.Wrap(services.ErrTranscription, "transcribe", "stat audio", audioPath, err)
	}

	outputDir, err := os.MkdirTemp("", "framealign-whisper-")
	if err != nil {
		return nil, services.Wrap(services.ErrTranscription, "transcribe", "create work dir", "", err)
	}
	defer os.RemoveAll(outputDir)

	if err := w.run(ctx, w.binary, w.buildArgs(audioPath, outputDir)...); err != nil {
		return nil, services.Wrap(services.ErrTranscription, "transcribe", "whisper", audioPath, err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	payloadPath := filepath.Join(outputDir, baseName+".json")
	segments, err := LoadSegments(payloadPath)
	if err != nil {
		return nil, services.Wrap(services.ErrTranscription, "transcribe", "parse output", payloadPath, err)
	}
	return segments, nil
}

func (w *WhisperCLI) buildArgs(audioPath, outputDir string) []string {
	args := []string{
		audioPath,
		"--model", w.model,
		"--output_format", "json",
		"--output_dir", outputDir,
		"--word_timestamps", "True",
		"--verbose", "False",
	}
	if w.language != "" {
		args = append(args, "--language", w.language)
	}
	return args
}

func (w *WhisperCLI) run(ctx context.Context, name string, args ...string) error {
	if w.commandRunner != nil {
		return w.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// whisperPayload is the JSON structure Whisper writes alongside the audio.
type whisperPayload struct {
	Segments []Segment `json:"segments"`
}

// LoadSegments loads segments from a Whisper JSON file, trimming text and
// dropping segments with empty or whitespace-only text.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var payload whisperPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisper json: %w", err)
	}
	segments := make([]Segment, 0, len(payload.Segments))
	for _, seg := range payload.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, Segment{Text: text, Start: seg.Start, End: seg.End})
	}
	return segments, nil
}
