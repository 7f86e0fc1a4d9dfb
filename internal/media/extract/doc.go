// Package extract shells out to ffmpeg and ffprobe for the media work the
// pipeline depends on: container probing, mono WAV audio extraction, and
// still-frame sampling. The command runner and prober are injectable so the
// pipeline stays testable without real media files.
package extract
