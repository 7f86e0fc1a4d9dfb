// Package subtitles renders persisted alignment records as SRT subtitle
// files. The transform is mechanical and stateless; timestamp parsing is
// exposed for round-trip verification.
package subtitles
