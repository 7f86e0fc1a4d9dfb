package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	underlying := fmt.Errorf("exit status 1")
	err := Wrap(ErrExtraction, "extract-audio", "ffmpeg", "audio stream", underlying)
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected extraction marker, got %v", err)
	}
	if !errors.Is(err, underlying) {
		t.Fatalf("expected wrapped cause to survive, got %v", err)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "align", "", "", nil)
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("nil marker should default to extraction, got %v", err)
	}
}

func TestWrapBuildsDetail(t *testing.T) {
	err := Wrap(ErrNotFound, "validate", "stat", "video missing", nil)
	want := "not found: validate: stat: video missing"
	if err.Error() != want {
		t.Fatalf("unexpected message %q, want %q", err.Error(), want)
	}
}

func TestIsFatalInput(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{Wrap(ErrNotFound, "validate", "", "", nil), true},
		{Wrap(ErrConfiguration, "align", "", "fps", nil), true},
		{Wrap(ErrProbe, "probe", "", "", nil), false},
		{Wrap(ErrOutput, "persist", "", "", nil), false},
	}
	for _, tc := range cases {
		if got := IsFatalInput(tc.err); got != tc.want {
			t.Fatalf("IsFatalInput(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
