// Package pipeline orchestrates the alignment run: validate input, extract
// audio, transcribe, sample frames, align, persist. The sequence is strictly
// linear with two terminal states (completed or failed); absent audio is the
// only recoverable condition and yields an empty alignment record.
package pipeline
