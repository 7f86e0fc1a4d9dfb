package subtitles

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"framealign/internal/align"
	"framealign/internal/services"
)

// inaudiblePlaceholder stands in for cues whose text is empty or blank.
const inaudiblePlaceholder = "[inaudible]"

// FormatTimestamp converts seconds to the SRT HH:MM:SS,mmm form,
// millisecond-rounded and zero-padded.
func FormatTimestamp(seconds float64) string {
	millis := int(math.Round(seconds * 1000))
	hours := millis / 3_600_000
	remainder := millis % 3_600_000
	minutes := remainder / 60_000
	remainder %= 60_000
	secs := remainder / 1000
	millis = remainder % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseTimestamp converts an SRT timestamp back to seconds. Periods are
// accepted in place of the standard comma before the milliseconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// Render converts alignment entries to SRT subtitle text: 1-based index,
// timing line, text line, blank separator.
func Render(entries []align.Entry) string {
	var lines []string
	for i, entry := range entries {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			text = inaudiblePlaceholder
		}
		lines = append(lines,
			strconv.Itoa(i+1),
			FormatTimestamp(entry.StartTime)+" --> "+FormatTimestamp(entry.EndTime),
			text,
			"",
		)
	}
	return strings.Join(lines, "\n")
}

// RenderFile reads a persisted alignment record and writes its SRT rendering
// to outputPath.
func RenderFile(alignmentPath, outputPath string) error {
	data, err := os.ReadFile(alignmentPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "srt", "", alignmentPath, err)
		}
		return services.Wrap(services.ErrOutput, "srt", "read alignment", alignmentPath, err)
	}

	var entries []align.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return services.Wrap(services.ErrOutput, "srt", "parse alignment", alignmentPath, err)
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrOutput, "srt", "ensure output dir", dir, err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(Render(entries)), 0o644); err != nil {
		return services.Wrap(services.ErrOutput, "srt", "write srt", outputPath, err)
	}
	return nil
}
