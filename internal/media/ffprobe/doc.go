// Package ffprobe wraps the ffprobe binary for container inspection: stream
// listing, audio-stream detection, and native frame rate extraction.
package ffprobe
