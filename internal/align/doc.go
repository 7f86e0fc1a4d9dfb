// Package align maps timestamped transcript segments onto frame-index
// intervals. It is a pure computation with no I/O; the pipeline feeds it the
// sampling rate used for frame extraction and persists the result.
package align
