package info

import "strings"

// Marker filenames probed inside a recording directory. Each capture
// generation wrote exactly one of these.
const (
	PlayerInfoName    = "info.player.json"
	LegacyInfoName    = "info.csv"
	InvisibleInfoName = "info.json"
)

// Well-known info.csv keys.
const (
	KeyDataFormatVersion = "Data Format Version"
	KeyCaptureSoftware   = "Capture Software"
	KeyRecordingName     = "Recording Name"
	KeyDurationTime      = "Duration Time"
	KeyStartDate         = "Start Date"
	KeyStartTime         = "Start Time"
)

// CaptureSoftwareMobile is the Capture Software value written by the mobile
// capture app.
const CaptureSoftwareMobile = "Pupil Mobile"

// videoExtensions lists container extensions produced by the capture
// pipeline. Recordings ship their video as individual files with these
// extensions; a path ending in one of them is a video, not a recording
// directory.
var videoExtensions = []string{"mp4", "mkv", "avi", "h264", "mjpeg", "fake"}

// IsVideoExtension reports whether ext names a known video container. The
// comparison is case-insensitive and tolerates a leading dot.
func IsVideoExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, known := range videoExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// VideoExtensions returns a copy of the known video extension set.
func VideoExtensions() []string {
	out := make([]string, len(videoExtensions))
	copy(out, videoExtensions)
	return out
}
