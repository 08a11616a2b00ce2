package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"gazecat/internal/recording"
	"gazecat/internal/recording/info"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "info <path>",
		Short:       "Show the marker-file metadata of a recording directory",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := recording.Classify(args[0])
			if err != nil {
				return err
			}

			fields, err := markerFields(args[0], format)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, struct {
					Path   string         `json:"path"`
					Format string         `json:"format"`
					Fields map[string]any `json:"fields"`
				}{Path: args[0], Format: string(format), Fields: fields})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Format: %s (%s)\n", format, format.Label())
			keys := make([]string, 0, len(fields))
			for key := range fields {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(out, "  %s: %v\n", key, fields[key])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

// markerFields reads the marker file matching the classified format and
// flattens it into printable fields.
func markerFields(dir string, format recording.Type) (map[string]any, error) {
	switch format {
	case recording.NewStyle:
		parsed, err := info.ReadPlayerInfo(dir)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"meta_version":               parsed.MetaVersion,
			"min_player_version":         parsed.MinPlayerVersion,
			"recording_uuid":             parsed.RecordingUUID,
			"recording_name":             parsed.RecordingName,
			"recording_software_name":    parsed.RecordingSoftwareName,
			"recording_software_version": parsed.RecordingSoftwareVersion,
			"start_time_system_s":        parsed.StartTimeSystemSeconds,
			"start_time_synced_s":        parsed.StartTimeSyncedSeconds,
			"duration_s":                 parsed.DurationSeconds,
			"system_info":                parsed.SystemInfo,
		}, nil
	case recording.OldStyle, recording.Mobile:
		parsed, err := info.ReadLegacyInfo(dir)
		if err != nil {
			return nil, err
		}
		fields := make(map[string]any, len(parsed))
		for key, value := range parsed {
			fields[key] = value
		}
		return fields, nil
	case recording.Invisible:
		parsed, err := info.ReadInvisibleInfo(dir)
		if err != nil {
			return nil, err
		}
		return parsed.Fields, nil
	default:
		return nil, fmt.Errorf("unknown recording type %q", format)
	}
}
