// Command framealign aligns spoken-word transcripts with frames sampled from
// a video. The align subcommand runs the full pipeline; srt and show operate
// on a previous run's persisted artifacts.
package main
