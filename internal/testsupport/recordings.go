package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteNewStyleRecording creates dir with a versioned info.player.json
// marker and returns the directory path.
func WriteNewStyleRecording(t testing.TB, dir string) string {
	t.Helper()
	payload := map[string]any{
		"meta_version":            "2.3",
		"min_player_version":      "2.0",
		"recording_uuid":          "6d7b0000-5e1f-4e57-ba33-6f2d00000000",
		"recording_name":          "Test Recording",
		"recording_software_name": "Pupil Capture",
		"start_time_system_s":     1577836800.0,
		"start_time_synced_s":     1234.5,
		"duration_s":              42.0,
	}
	WriteJSONFile(t, filepath.Join(dir, "info.player.json"), payload)
	return dir
}

// WriteOldStyleRecording creates dir with a legacy info.csv that carries a
// Data Format Version key.
func WriteOldStyleRecording(t testing.TB, dir string) string {
	t.Helper()
	WriteKeyValueCSV(t, filepath.Join(dir, "info.csv"), [][2]string{
		{"Recording Name", "2020_01_01"},
		{"Capture Software", "Pupil Capture"},
		{"Data Format Version", "1.16"},
		{"Duration Time", "00:00:42"},
	})
	return dir
}

// WriteInvisibleRecording creates dir with the fixed info.json marker used
// by the Invisible companion app.
func WriteInvisibleRecording(t testing.TB, dir string) string {
	t.Helper()
	payload := map[string]any{
		"data_format_version":  "1.0",
		"app_version":          "1.4.28",
		"device_serial_number": "PI-1234",
		"recording_id":         "f00f0000-5e1f-4e57-ba33-6f2d00000000",
		"duration":             42000000000,
	}
	WriteJSONFile(t, filepath.Join(dir, "info.json"), payload)
	return dir
}

// WriteMobileRecording creates dir with an info.csv naming Pupil Mobile as
// capture software and no Data Format Version key.
func WriteMobileRecording(t testing.TB, dir string) string {
	t.Helper()
	WriteKeyValueCSV(t, filepath.Join(dir, "info.csv"), [][2]string{
		{"Recording Name", "mobile_session"},
		{"Capture Software", "Pupil Mobile"},
		{"Start Date", "01.01.2020"},
	})
	return dir
}

// WriteKeyValueCSV writes a legacy key-value CSV with the provided pairs in
// order, prefixed by the standard header line.
func WriteKeyValueCSV(t testing.TB, path string, pairs [][2]string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("key,value\n")
	for _, pair := range pairs {
		b.WriteString(pair[0])
		b.WriteByte(',')
		b.WriteString(pair[1])
		b.WriteByte('\n')
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteJSONFile marshals payload and writes it to path.
func WriteJSONFile(t testing.TB, path string, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload for %s: %v", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
