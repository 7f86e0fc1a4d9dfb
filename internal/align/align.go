package align

import (
	"fmt"
	"math"

	"framealign/internal/services"
	"framealign/internal/transcribe"
)

// Entry associates one transcript segment with a frame-index interval.
// StartFrame and EndFrame are indices into the sampled frame sequence, not
// the native video frames; VideoFPS is carried through for reference only.
type Entry struct {
	Text       string  `json:"text"`
	StartTime  float64 `json:"start_time"`
	EndTime    float64 `json:"end_time"`
	StartFrame int     `json:"start_frame"`
	EndFrame   int     `json:"end_frame"`
	VideoFPS   float64 `json:"video_fps"`
}

// Align maps each segment's time interval onto a frame-index interval given
// the rate frames were actually sampled at. Entries come back in input
// order, one per segment. Segments are assumed to be ordered by start time;
// this is not verified.
//
// Frame indices truncate toward zero and are clamped so that
// EndFrame >= StartFrame >= 0, which silently tolerates end times earlier
// than start times in the source data.
func Align(segments []transcribe.Segment, videoFPS, extractionFPS float64) ([]Entry, error) {
	if extractionFPS <= 0 {
		return nil, services.Wrap(services.ErrConfiguration, "align", "", fmt.Sprintf("extraction fps must be positive, got %v", extractionFPS), nil)
	}

	entries := make([]Entry, 0, len(segments))
	for _, segment := range segments {
		startFrame := int(math.Floor(segment.Start * extractionFPS))
		if startFrame < 0 {
			startFrame = 0
		}
		endFrame := int(math.Floor(segment.End * extractionFPS))
		if endFrame < startFrame {
			endFrame = startFrame
		}
		entries = append(entries, Entry{
			Text:       segment.Text,
			StartTime:  segment.Start,
			EndTime:    segment.End,
			StartFrame: startFrame,
			EndFrame:   endFrame,
			VideoFPS:   videoFPS,
		})
	}
	return entries, nil
}
