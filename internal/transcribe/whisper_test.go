package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"framealign/internal/services"
)

func TestWhisperCLIBuildArgs(t *testing.T) {
	backend := NewWhisperCLI("whisper", "base", "English")
	args := backend.buildArgs("/tmp/audio.wav", "/tmp/out")
	joined := strings.Join(args, " ")
	for _, want := range []string{"--model base", "--output_format json", "--language en"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args %q missing %q", joined, want)
		}
	}
}

func TestWhisperCLIOmitsLanguageWhenUnset(t *testing.T) {
	backend := NewWhisperCLI("", "", "")
	if backend.Model() != DefaultWhisperModel {
		t.Fatalf("model = %q, want %q", backend.Model(), DefaultWhisperModel)
	}
	joined := strings.Join(backend.buildArgs("a.wav", "out"), " ")
	if strings.Contains(joined, "--language") {
		t.Fatalf("args %q should omit language", joined)
	}
}

func TestWhisperCLITranscribeParsesRunnerOutput(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}

	backend := NewWhisperCLI("", "small", "")
	backend.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		// The runner stands in for the whisper CLI: write the JSON payload
		// into the requested output directory.
		var outputDir string
		for i, arg := range args {
			if arg == "--output_dir" && i+1 < len(args) {
				outputDir = args[i+1]
			}
		}
		if outputDir == "" {
			t.Fatal("missing --output_dir argument")
		}
		payload := `{"text":"hello there","segments":[
			{"text":" hello ","start":0.0,"end":1.2},
			{"text":"   ","start":1.2,"end":1.8},
			{"text":"there","start":1.8,"end":2.5}
		]}`
		return os.WriteFile(filepath.Join(outputDir, "audio.json"), []byte(payload), 0o644)
	})

	segments, err := backend.Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected whitespace segment dropped, got %d segments", len(segments))
	}
	if segments[0].Text != "hello" || segments[0].Start != 0.0 || segments[0].End != 1.2 {
		t.Fatalf("unexpected first segment %+v", segments[0])
	}
	if segments[1].Text != "there" {
		t.Fatalf("unexpected second segment %+v", segments[1])
	}
}

func TestWhisperCLITranscribeMissingAudio(t *testing.T) {
	backend := NewWhisperCLI("", "", "")
	_, err := backend.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found marker, got %v", err)
	}
}

func TestWhisperCLITranscribeToolFailure(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	backend := NewWhisperCLI("", "", "")
	backend.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("model load failed")
	})
	_, err := backend.Transcribe(context.Background(), audio)
	if !errors.Is(err, services.ErrTranscription) {
		t.Fatalf("expected transcription marker, got %v", err)
	}
}

func TestParseVerboseSegments(t *testing.T) {
	payload := `{"text":"hi all","segments":[
		{"id":0,"start":0.2,"end":0.9,"text":" hi "},
		{"id":1,"start":0.9,"end":1.1,"text":"  "},
		{"id":2,"start":1.1,"end":2.0,"text":"all"}
	]}`
	segments := ParseVerboseSegments(payload)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Text != "hi" || segments[0].Start != 0.2 || segments[0].End != 0.9 {
		t.Fatalf("unexpected segment %+v", segments[0])
	}
}

func TestParseVerboseSegmentsEmptyPayload(t *testing.T) {
	if got := ParseVerboseSegments(`{"text":""}`); len(got) != 0 {
		t.Fatalf("expected no segments, got %v", got)
	}
}
