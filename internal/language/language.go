package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// wordCodes maps full language names to ISO 639-1 for inputs BCP 47 parsing
// does not accept (e.g. "english" instead of "en").
var wordCodes = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"dutch":      "nl",
	"polish":     "pl",
	"swedish":    "sv",
	"danish":     "da",
	"norwegian":  "no",
	"finnish":    "fi",
}

// Normalize converts a user-supplied language hint to the ISO 639-1 code the
// transcription backends expect. Returns empty string for empty or
// unrecognizable input so callers can fall back to language auto-detection.
func Normalize(hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return ""
	}
	if code, ok := wordCodes[hint]; ok {
		return code
	}
	tag, err := language.Parse(hint)
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	code := base.String()
	if len(code) != 2 {
		return ""
	}
	return code
}

// DisplayName returns a human-readable language name for a recognized hint.
// Returns "Unknown" for empty input and the uppercased input when the hint
// cannot be parsed.
func DisplayName(hint string) string {
	trimmed := strings.TrimSpace(hint)
	if trimmed == "" {
		return "Unknown"
	}
	code := Normalize(trimmed)
	if code == "" {
		return strings.ToUpper(trimmed)
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToUpper(trimmed)
	}
	return display.English.Languages().Name(tag)
}
