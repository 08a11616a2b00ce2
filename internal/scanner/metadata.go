package scanner

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gazecat/internal/recording"
	"gazecat/internal/recording/info"
)

// deriveLabel produces a display name for a classified recording. Marker
// metadata wins when present; otherwise the directory name is cleaned up and
// title-cased.
func deriveLabel(dir string, format recording.Type) string {
	switch format {
	case recording.NewStyle:
		if parsed, err := info.ReadPlayerInfo(dir); err == nil {
			if name := strings.TrimSpace(parsed.RecordingName); name != "" {
				return name
			}
		}
	case recording.OldStyle, recording.Mobile:
		if values, err := info.ReadLegacyInfo(dir); err == nil {
			if name := strings.TrimSpace(values[info.KeyRecordingName]); name != "" {
				return name
			}
		}
	case recording.Invisible:
		if parsed, err := info.ReadInvisibleInfo(dir); err == nil {
			if name, ok := parsed.Fields["template_data"].(map[string]any); ok {
				if value, ok := name["recording_name"].(string); ok && strings.TrimSpace(value) != "" {
					return strings.TrimSpace(value)
				}
			}
		}
	}
	return titleFromPath(dir)
}

// titleFromPath turns a directory name like "2020_01_01_room_b" into
// "2020 01 01 Room B".
func titleFromPath(dir string) string {
	base := filepath.Base(dir)
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		title = "Unnamed Recording"
	}
	return cases.Title(language.Und).String(title)
}

// deriveRecordedAt extracts the capture start time from marker metadata when
// the format records one. Legacy CSV date fields are too inconsistent across
// capture versions to parse reliably, so old-style and mobile recordings
// return nil.
func deriveRecordedAt(dir string, format recording.Type) *time.Time {
	switch format {
	case recording.NewStyle:
		parsed, err := info.ReadPlayerInfo(dir)
		if err != nil || parsed.StartTimeSystemSeconds <= 0 {
			return nil
		}
		ts := time.Unix(0, int64(parsed.StartTimeSystemSeconds*float64(time.Second))).UTC()
		return &ts
	case recording.Invisible:
		parsed, err := info.ReadInvisibleInfo(dir)
		if err != nil {
			return nil
		}
		// The companion app stores start_time as nanoseconds since epoch.
		value, ok := parsed.Fields["start_time"].(float64)
		if !ok || value <= 0 {
			return nil
		}
		ts := time.Unix(0, int64(value)).UTC()
		return &ts
	default:
		return nil
	}
}
