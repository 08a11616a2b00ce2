package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"gazecat/internal/catalog"
	"gazecat/internal/config"
	"gazecat/internal/recording"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var formatFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged recordings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				var filter recording.Type
				if formatFilter != "" {
					parsed, err := recording.ParseType(formatFilter)
					if err != nil {
						return err
					}
					filter = parsed
				}

				entries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(entries))
				var totalBytes int64
				for _, entry := range entries {
					if filter != "" && entry.Format != filter {
						continue
					}
					totalBytes += entry.SizeBytes
					rows = append(rows, []string{
						entry.Label,
						entry.Format.Label(),
						humanize.IBytes(uint64(entry.SizeBytes)),
						formatTimestamp(entry.RecordedAt),
						entry.Path,
					})
				}

				out := cmd.OutOrStdout()
				if len(rows) == 0 {
					fmt.Fprintln(out, "Catalog is empty")
					return nil
				}

				fmt.Fprintln(out, renderTable(
					[]string{"Label", "Format", "Size", "Recorded", "Path"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				))
				fmt.Fprintf(out, "%d recording(s), %s total\n", len(rows), humanize.IBytes(uint64(totalBytes)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&formatFilter, "format", "", "Only show one format (new_style, old_style, invisible, mobile)")
	return cmd
}
