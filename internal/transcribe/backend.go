package transcribe

import "context"

// Segment is a contiguous span of recognized speech.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Backend is a pluggable speech-to-text engine. Implementations return
// segments ordered by start time and drop segments whose text is empty or
// whitespace-only.
type Backend interface {
	Transcribe(ctx context.Context, audioPath string) ([]Segment, error)
}
