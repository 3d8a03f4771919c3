package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/satirist/server/satirist/feedback"
)

func newFeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Inspect collected feedback",
	}

	var output string

	export := &cobra.Command{
		Use:   "export",
		Short: "Export all feedback as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := feedback.NewStore(dataDir(cmd)).List()
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()

			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()

				w = f
			}

			if err := feedback.WriteCSV(w, entries); err != nil {
				return fmt.Errorf("failed to write CSV: %w", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d entries\n", len(entries))
			return nil
		},
	}

	export.Flags().StringVarP(&output, "output", "o", "", "output file, stdout when empty")
	cmd.AddCommand(export)

	return cmd
}
