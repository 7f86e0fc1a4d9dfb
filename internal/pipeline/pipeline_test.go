package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"framealign/internal/media/extract"
	"framealign/internal/services"
	"framealign/internal/testsupport"
	"framealign/internal/transcribe"
)

type fakeMedia struct {
	probeInfo     extract.ProbeInfo
	probeErr      error
	audioBytes    []byte
	extractErr    error
	frameCount    int
	samplesErr    error
	sampledFrames bool
}

func (f *fakeMedia) Probe(ctx context.Context, videoPath string) (extract.ProbeInfo, error) {
	if f.probeErr != nil {
		return extract.ProbeInfo{}, f.probeErr
	}
	return f.probeInfo, nil
}

func (f *fakeMedia) ExtractAudio(ctx context.Context, videoPath, outputPath string) (string, error) {
	if f.extractErr != nil {
		return "", f.extractErr
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(outputPath, f.audioBytes, 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}

func (f *fakeMedia) SampleFrames(ctx context.Context, videoPath, outputDir string, fps float64) ([]string, int, error) {
	if f.samplesErr != nil {
		return nil, 0, f.samplesErr
	}
	f.sampledFrames = true
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, 0, err
	}
	paths := make([]string, 0, f.frameCount)
	for i := 0; i < f.frameCount; i++ {
		path := filepath.Join(outputDir, fmt.Sprintf("frame_%04d.jpg", i))
		if err := os.WriteFile(path, []byte{0xff}, 0o644); err != nil {
			return nil, 0, err
		}
		paths = append(paths, path)
	}
	return paths, f.frameCount, nil
}

type fakeBackend struct {
	segments []transcribe.Segment
	err      error
	calls    int
}

func (f *fakeBackend) Transcribe(ctx context.Context, audioPath string) ([]transcribe.Segment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.segments, nil
}

func writeVideo(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "clip.mp4")
	testsupport.WriteVideo(t, path)
	return path
}

func TestRunCompletes(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir)
	outputDir := filepath.Join(dir, "out")

	media := &fakeMedia{
		probeInfo:  extract.ProbeInfo{HasAudioStream: true, NativeFPS: 24},
		audioBytes: testsupport.WAVBytes(256),
		frameCount: 5,
	}
	backend := &fakeBackend{segments: []transcribe.Segment{
		{Text: "hello", Start: 1.5, End: 2.5},
		{Text: "hi", Start: 2.5, End: 3.1},
	}}

	p := New(media, backend, nil)
	result, err := p.Run(context.Background(), Request{VideoPath: video, OutputDir: outputDir, SamplingFPS: 1.0})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(result.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(result.Entries))
	}
	if result.Entries[0].StartFrame != 1 || result.Entries[0].EndFrame != 2 {
		t.Fatalf("unexpected frames %+v", result.Entries[0])
	}
	if result.Entries[0].VideoFPS != 24 {
		t.Fatalf("video fps = %v, want 24", result.Entries[0].VideoFPS)
	}
	if result.Metadata.FrameCount != 5 {
		t.Fatalf("frame count = %d, want 5", result.Metadata.FrameCount)
	}
	if result.Metadata.ExtractionFPS != 1.0 {
		t.Fatalf("extraction fps = %v, want 1.0", result.Metadata.ExtractionFPS)
	}
}

func TestRunPersistsExactFieldNames(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir)
	outputDir := filepath.Join(dir, "out")

	media := &fakeMedia{
		probeInfo:  extract.ProbeInfo{HasAudioStream: true, NativeFPS: 30},
		audioBytes: testsupport.WAVBytes(16),
		frameCount: 1,
	}
	backend := &fakeBackend{segments: []transcribe.Segment{{Text: "x", Start: 0, End: 1}}}

	if _, err := New(media, backend, nil).Run(context.Background(), Request{VideoPath: video, OutputDir: outputDir, SamplingFPS: 2.0}); err != nil {
		t.Fatalf("run: %v", err)
	}

	alignmentRaw, err := os.ReadFile(AlignmentPath(outputDir))
	if err != nil {
		t.Fatalf("read alignment: %v", err)
	}
	var alignmentDoc []map[string]any
	if err := json.Unmarshal(alignmentRaw, &alignmentDoc); err != nil {
		t.Fatalf("parse alignment: %v", err)
	}
	for _, key := range []string{"text", "start_time", "end_time", "start_frame", "end_frame", "video_fps"} {
		if _, ok := alignmentDoc[0][key]; !ok {
			t.Fatalf("alignment entry missing field %q: %v", key, alignmentDoc[0])
		}
	}
	if !strings.Contains(string(alignmentRaw), "\n  {") {
		t.Fatalf("alignment should use 2-space indentation: %q", alignmentRaw)
	}

	metadataRaw, err := os.ReadFile(MetadataPath(outputDir))
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	var metadataDoc map[string]any
	if err := json.Unmarshal(metadataRaw, &metadataDoc); err != nil {
		t.Fatalf("parse metadata: %v", err)
	}
	for _, key := range []string{"video_path", "audio_path", "frame_dir", "frame_count", "video_fps", "extraction_fps"} {
		if _, ok := metadataDoc[key]; !ok {
			t.Fatalf("metadata missing field %q: %v", key, metadataDoc)
		}
	}
}

func TestRunEmptyAudioSkipsTranscriptionButSamplesFrames(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir)
	outputDir := filepath.Join(dir, "out")

	media := &fakeMedia{
		probeInfo:  extract.ProbeInfo{HasAudioStream: false, NativeFPS: 25},
		audioBytes: nil, // zero-byte placeholder
		frameCount: 3,
	}
	backend := &fakeBackend{segments: []transcribe.Segment{{Text: "should not appear", Start: 0, End: 1}}}

	result, err := New(media, backend, nil).Run(context.Background(), Request{VideoPath: video, OutputDir: outputDir, SamplingFPS: 1.0})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if backend.calls != 0 {
		t.Fatalf("transcriber should not run on empty audio, got %d calls", backend.calls)
	}
	if !media.sampledFrames {
		t.Fatal("frame sampling must still run")
	}
	if len(result.Entries) != 0 {
		t.Fatalf("expected empty record, got %d entries", len(result.Entries))
	}

	raw, err := os.ReadFile(AlignmentPath(outputDir))
	if err != nil {
		t.Fatalf("read alignment: %v", err)
	}
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Fatalf("alignment for silent media should be [], got %q", raw)
	}

	meta, err := ReadMetadata(outputDir)
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	if meta.FrameCount != 3 {
		t.Fatalf("frame count = %d, want 3", meta.FrameCount)
	}
}

func TestRunMissingVideo(t *testing.T) {
	media := &fakeMedia{}
	_, err := New(media, &fakeBackend{}, nil).Run(context.Background(), Request{
		VideoPath:   filepath.Join(t.TempDir(), "missing.mp4"),
		OutputDir:   t.TempDir(),
		SamplingFPS: 1.0,
	})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found marker, got %v", err)
	}
}

func TestRunRejectsNonPositiveSamplingFPS(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir)
	_, err := New(&fakeMedia{}, &fakeBackend{}, nil).Run(context.Background(), Request{
		VideoPath:   video,
		OutputDir:   filepath.Join(dir, "out"),
		SamplingFPS: 0,
	})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
}

func TestRunTranscriberFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir)

	media := &fakeMedia{
		probeInfo:  extract.ProbeInfo{HasAudioStream: true, NativeFPS: 24},
		audioBytes: testsupport.WAVBytes(16),
		frameCount: 2,
	}
	backendErr := services.Wrap(services.ErrTranscription, "transcribe", "whisper", "model crashed", nil)
	backend := &fakeBackend{err: backendErr}

	_, err := New(media, backend, nil).Run(context.Background(), Request{
		VideoPath:   video,
		OutputDir:   filepath.Join(dir, "out"),
		SamplingFPS: 1.0,
	})
	if !errors.Is(err, services.ErrTranscription) {
		t.Fatalf("expected transcription failure to propagate, got %v", err)
	}
	if media.sampledFrames {
		t.Fatal("frame sampling should not run after fatal transcription failure")
	}
}

func TestRunProbeFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir)

	media := &fakeMedia{
		probeErr:   services.Wrap(services.ErrProbe, "probe", "ffprobe", "corrupt", nil),
		audioBytes: testsupport.WAVBytes(16),
		frameCount: 1,
	}
	backend := &fakeBackend{segments: []transcribe.Segment{{Text: "x", Start: 0, End: 1}}}

	_, err := New(media, backend, nil).Run(context.Background(), Request{
		VideoPath:   video,
		OutputDir:   filepath.Join(dir, "out"),
		SamplingFPS: 1.0,
	})
	if !errors.Is(err, services.ErrProbe) {
		t.Fatalf("expected probe failure to propagate, got %v", err)
	}
}

func TestReadAlignmentMissing(t *testing.T) {
	_, err := ReadAlignment(t.TempDir())
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found marker, got %v", err)
	}
}
