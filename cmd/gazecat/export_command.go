package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"gazecat/internal/catalog"
	"gazecat/internal/config"
)

type exportEntry struct {
	ID          string     `json:"id"`
	Path        string     `json:"path"`
	Format      string     `json:"format"`
	Label       string     `json:"label"`
	SizeBytes   int64      `json:"size_bytes"`
	RecordedAt  *time.Time `json:"recorded_at,omitempty"`
	FirstSeenAt time.Time  `json:"first_seen_at"`
	ScannedAt   time.Time  `json:"scanned_at"`
}

type exportDocument struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Count       int           `json:"count"`
	Recordings  []exportEntry `json:"recordings"`
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				entries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}

				doc := exportDocument{
					GeneratedAt: time.Now().UTC(),
					Count:       len(entries),
					Recordings:  make([]exportEntry, 0, len(entries)),
				}
				for _, entry := range entries {
					doc.Recordings = append(doc.Recordings, exportEntry{
						ID:          entry.ID,
						Path:        entry.Path,
						Format:      string(entry.Format),
						Label:       entry.Label,
						SizeBytes:   entry.SizeBytes,
						RecordedAt:  entry.RecordedAt,
						FirstSeenAt: entry.FirstSeenAt,
						ScannedAt:   entry.ScannedAt,
					})
				}

				if outputPath == "" {
					return writeJSON(cmd, doc)
				}

				data, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return err
				}
				data = append(data, '\n')
				// Atomic replace keeps readers from seeing a partial export.
				if err := renameio.WriteFile(outputPath, data, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d recording(s) to %s\n", doc.Count, outputPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
