package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.Backend {
	case BackendWhisper:
		if c.Transcription.Model == "" {
			return errors.New("transcription.model must be set for the whisper backend")
		}
	case BackendOpenAI:
		if c.Transcription.OpenAIAPIKey == "" {
			return errors.New("transcription.openai_api_key is required for the openai backend. Set OPENAI_API_KEY or edit the config file (create with 'framealign config init')")
		}
		if c.Transcription.OpenAIModel == "" {
			return errors.New("transcription.openai_model must be set for the openai backend")
		}
	default:
		return fmt.Errorf("transcription.backend must be %q or %q, got %q", BackendWhisper, BackendOpenAI, c.Transcription.Backend)
	}
	return nil
}

func (c *Config) validateExtraction() error {
	if c.Extraction.SamplingFPS <= 0 {
		return errors.New("extraction.sampling_fps must be positive")
	}
	if c.Extraction.SampleRateHz <= 0 {
		return errors.New("extraction.sample_rate_hz must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
