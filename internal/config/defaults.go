package config

const (
	defaultOutputDir    = "~/.local/share/framealign/output"
	defaultBackend      = BackendWhisper
	defaultWhisperModel = "small"
	defaultOpenAIModel  = "whisper-1"
	defaultSamplingFPS  = 1.0
	defaultSampleRateHz = 16000
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Transcription backend names.
const (
	BackendWhisper = "whisper"
	BackendOpenAI  = "openai"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		Transcription: Transcription{
			Backend:     defaultBackend,
			Model:       defaultWhisperModel,
			OpenAIModel: defaultOpenAIModel,
		},
		Extraction: Extraction{
			SamplingFPS:  defaultSamplingFPS,
			SampleRateHz: defaultSampleRateHz,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
