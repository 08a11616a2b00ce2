package info

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// InvisibleInfo models the info.json marker written by the Invisible
// companion app. The app has shipped several schema revisions, so only a few
// stable fields are typed; everything else stays available in Fields.
type InvisibleInfo struct {
	DataFormatVersion string
	AppVersion        string
	DeviceSerial      string
	RecordingID       string
	Fields            map[string]any
}

// ReadInvisibleInfo parses the info.json marker from dir. A missing file is
// returned as the raw os.ReadFile error so callers can distinguish absence
// (not an Invisible recording) from a corrupt or unreadable marker, which is
// a real fault.
func ReadInvisibleInfo(dir string) (*InvisibleInfo, error) {
	path := filepath.Join(dir, InvisibleInfoName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	parsed := &InvisibleInfo{Fields: fields}
	parsed.DataFormatVersion = stringField(fields, "data_format_version")
	parsed.AppVersion = stringField(fields, "app_version")
	parsed.DeviceSerial = stringField(fields, "device_serial_number")
	if parsed.DeviceSerial == "" {
		parsed.DeviceSerial = stringField(fields, "glasses_serial_number")
	}
	parsed.RecordingID = stringField(fields, "recording_id")
	return parsed, nil
}

func stringField(fields map[string]any, key string) string {
	value, ok := fields[key].(string)
	if !ok {
		return ""
	}
	return value
}
