package info

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PlayerInfo models the versioned info.player.json marker written by modern
// capture and player releases.
type PlayerInfo struct {
	MetaVersion              string  `json:"meta_version"`
	MinPlayerVersion         string  `json:"min_player_version"`
	RecordingUUID            string  `json:"recording_uuid"`
	RecordingName            string  `json:"recording_name"`
	RecordingSoftwareName    string  `json:"recording_software_name"`
	RecordingSoftwareVersion string  `json:"recording_software_version"`
	StartTimeSystemSeconds   float64 `json:"start_time_system_s"`
	StartTimeSyncedSeconds   float64 `json:"start_time_synced_s"`
	DurationSeconds          float64 `json:"duration_s"`
	SystemInfo               string  `json:"system_info"`
}

// HasPlayerInfo reports whether dir contains the info.player.json marker.
// Presence alone decides new-style classification; the file is only parsed
// when callers ask for its contents.
func HasPlayerInfo(dir string) bool {
	stat, err := os.Stat(filepath.Join(dir, PlayerInfoName))
	return err == nil && stat.Mode().IsRegular()
}

// ReadPlayerInfo parses the info.player.json marker from dir.
func ReadPlayerInfo(dir string) (*PlayerInfo, error) {
	path := filepath.Join(dir, PlayerInfoName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var parsed PlayerInfo
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &parsed, nil
}
