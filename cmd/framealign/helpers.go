package main

import (
	"errors"
	"fmt"
	"strings"

	"framealign/internal/config"
	"framealign/internal/transcribe"
)

// newTranscriptionBackend resolves CLI overrides against the configuration
// and constructs the requested backend.
func newTranscriptionBackend(cfg *config.Config, backendName, model, languageHint string) (transcribe.Backend, error) {
	name := strings.ToLower(strings.TrimSpace(backendName))
	if name == "" {
		name = cfg.Transcription.Backend
	}
	language := strings.TrimSpace(languageHint)
	if language == "" {
		language = cfg.Transcription.Language
	}

	switch name {
	case config.BackendWhisper:
		resolved := strings.TrimSpace(model)
		if resolved == "" {
			resolved = cfg.Transcription.Model
		}
		return transcribe.NewWhisperCLI(cfg.WhisperBinary(), resolved, language), nil
	case config.BackendOpenAI:
		if cfg.Transcription.OpenAIAPIKey == "" {
			return nil, errors.New("the openai backend requires transcription.openai_api_key or OPENAI_API_KEY")
		}
		resolved := strings.TrimSpace(model)
		if resolved == "" {
			resolved = cfg.Transcription.OpenAIModel
		}
		return transcribe.NewOpenAIBackend(
			cfg.Transcription.OpenAIAPIKey,
			cfg.Transcription.OpenAIBaseURL,
			resolved,
			language,
		), nil
	default:
		return nil, fmt.Errorf("unknown transcription backend %q (expected %q or %q)", name, config.BackendWhisper, config.BackendOpenAI)
	}
}
