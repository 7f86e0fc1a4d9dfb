package transcribe

import (
	"context"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"

	langpkg "framealign/internal/language"
	"framealign/internal/services"
)

// OpenAIBackend transcribes audio through the hosted audio.transcriptions
// endpoint, requesting verbose JSON so segment timestamps are available.
type OpenAIBackend struct {
	client   openai.Client
	model    string
	language string
}

// NewOpenAIBackend creates a hosted transcription backend. baseURL is
// optional and overrides the default API endpoint.
func NewOpenAIBackend(apiKey, baseURL, model, language string) *OpenAIBackend {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}
	return &OpenAIBackend{
		client:   openai.NewClient(opts...),
		model:    model,
		language: langpkg.Normalize(language),
	}
}

// Transcribe uploads the audio file and parses the returned segments.
func (o *OpenAIBackend) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrNotFound, "transcribe", "", audioPath, err)
		}
		return nil, services.Wrap(services.ErrTranscription, "transcribe", "open audio", audioPath, err)
	}
	defer file.Close()

	params := openai.AudioTranscriptionNewParams{
		File:           file,
		Model:          openai.AudioModel(o.model),
		ResponseFormat: openai.AudioResponseFormatVerboseJSON,
	}
	if o.language != "" {
		params.Language = openai.String(o.language)
	}

	resp, err := o.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, services.Wrap(services.ErrTranscription, "transcribe", "openai", audioPath, err)
	}

	return ParseVerboseSegments(resp.RawJSON()), nil
}

// ParseVerboseSegments extracts segments from a verbose_json transcription
// payload. Empty and whitespace-only segments are dropped.
func ParseVerboseSegments(payload string) []Segment {
	var segments []Segment
	gjson.Get(payload, "segments").ForEach(func(_, value gjson.Result) bool {
		text := strings.TrimSpace(value.Get("text").String())
		if text == "" {
			return true
		}
		segments = append(segments, Segment{
			Text:  text,
			Start: value.Get("start").Float(),
			End:   value.Get("end").Float(),
		})
		return true
	})
	return segments
}
