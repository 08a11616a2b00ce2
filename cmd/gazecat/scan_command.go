package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gazecat/internal/catalog"
	"gazecat/internal/config"
	"gazecat/internal/preflight"
	"gazecat/internal/recording"
	"gazecat/internal/scanner"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [root...]",
		Short: "Scan recording roots and refresh the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				if err := runPreflight(cmd, cfg, args); err != nil {
					return err
				}

				logger, err := ctx.newLogger(cfg)
				if err != nil {
					return fmt.Errorf("setup logging: %w", err)
				}

				s, err := scanner.New(cfg, store, logger)
				if err != nil {
					return err
				}
				summary, err := s.Scan(cmd.Context(), args)
				if err != nil {
					if errors.Is(err, scanner.ErrScanInProgress) {
						return fmt.Errorf("scan aborted: %w", err)
					}
					return err
				}

				out := cmd.OutOrStdout()
				rows := make([][]string, 0, len(summary.ByFormat))
				for _, format := range recording.Types() {
					if count := summary.ByFormat[format]; count > 0 {
						rows = append(rows, []string{format.Label(), fmt.Sprintf("%d", count)})
					}
				}
				if len(rows) > 0 {
					fmt.Fprintln(out, renderTable(
						[]string{"Format", "Count"},
						rows,
						[]columnAlignment{alignLeft, alignRight},
					))
				}
				fmt.Fprintf(out, "Classified %d recording(s), %d fault(s), %d pruned in %s\n",
					summary.Classified, summary.Faults, summary.Removed, summary.Elapsed.Round(time.Millisecond))
				return nil
			})
		},
	}
}

// runPreflight checks the environment before a scan or watch starts. Explicit
// roots from the command line replace the configured ones for the check.
func runPreflight(cmd *cobra.Command, cfg *config.Config, roots []string) error {
	effective := *cfg
	if len(roots) > 0 {
		effective.Paths.Roots = roots
	}

	results := preflight.RunAll(&effective)
	if preflight.AllPassed(results) {
		return nil
	}

	out := cmd.ErrOrStderr()
	for _, result := range results {
		status := "ok"
		if !result.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(out, "%-4s %s: %s\n", status, result.Name, result.Detail)
	}
	return errors.New("preflight checks failed")
}
