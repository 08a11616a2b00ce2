package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gazecat/internal/recording"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "classify <path>",
		Short:       "Determine the format generation of a recording directory",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := recording.Classify(args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, struct {
					Path   string `json:"path"`
					Format string `json:"format"`
					Label  string `json:"label"`
				}{Path: args[0], Format: string(format), Label: format.Label()})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", format, format.Label())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}
