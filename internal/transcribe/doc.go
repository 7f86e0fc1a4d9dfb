// Package transcribe converts audio into timestamped text segments. Two
// backends implement the Backend interface: a local Whisper CLI invocation
// and the hosted OpenAI transcription API. Both normalize language hints and
// drop empty segments before anything downstream sees them.
package transcribe
