package ffprobe

import "testing"

func TestHasAudioStream(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio"},
		},
	}
	if !result.HasAudioStream() {
		t.Fatal("expected audio stream")
	}

	silent := Result{Streams: []Stream{{CodecType: "video"}}}
	if silent.HasAudioStream() {
		t.Fatal("expected no audio stream")
	}
}

func TestFrameRatePrefersAvgFrameRate(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", AvgFrameRate: "30000/1001", RFrameRate: "60/1"},
		},
	}
	fps, err := result.FrameRate()
	if err != nil {
		t.Fatalf("frame rate: %v", err)
	}
	want := 30000.0 / 1001.0
	if fps != want {
		t.Fatalf("fps = %v, want %v", fps, want)
	}
}

func TestFrameRateFallsBackToRFrameRate(t *testing.T) {
	cases := []struct {
		name string
		avg  string
		want float64
	}{
		{"missing avg", "", 25},
		{"zero ratio avg", "0/0", 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Result{
				Streams: []Stream{
					{CodecType: "video", AvgFrameRate: tc.avg, RFrameRate: "25/1"},
				},
			}
			fps, err := result.FrameRate()
			if err != nil {
				t.Fatalf("frame rate: %v", err)
			}
			if fps != tc.want {
				t.Fatalf("fps = %v, want %v", fps, tc.want)
			}
		})
	}
}

func TestFrameRateNoVideoStream(t *testing.T) {
	result := Result{Streams: []Stream{{CodecType: "audio"}}}
	if _, err := result.FrameRate(); err == nil {
		t.Fatal("expected error without video stream")
	}
}

func TestParse(t *testing.T) {
	payload := []byte(`{
		"streams": [
			{"index": 0, "codec_type": "video", "codec_name": "h264", "avg_frame_rate": "24/1", "r_frame_rate": "24/1", "width": 1920, "height": 1080},
			{"index": 1, "codec_type": "audio", "codec_name": "aac", "sample_rate": "48000", "channels": 2}
		],
		"format": {"filename": "clip.mp4", "nb_streams": 2, "duration": "12.480000"}
	}`)
	result, err := Parse(payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(result.Streams) != 2 {
		t.Fatalf("expected 2 streams, got %d", len(result.Streams))
	}
	if !result.HasAudioStream() {
		t.Fatal("expected audio stream")
	}
	fps, err := result.FrameRate()
	if err != nil || fps != 24 {
		t.Fatalf("fps = %v (%v), want 24", fps, err)
	}
	if result.DurationSeconds() != 12.48 {
		t.Fatalf("duration = %v, want 12.48", result.DurationSeconds())
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}
