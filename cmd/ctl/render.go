package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/satirist/server/internal/scene"
)

func newRenderCmd() *cobra.Command {
	var (
		situation   string
		dialogue    string
		description string
		output      string
	)

	cmd := &cobra.Command{
		Use:     "render",
		Short:   "Render the placeholder cartoon as SVG",
		Example: `  ctl render --situation "minister inaugurates pothole" --dialogue "A historic day for roads" -o toon.svg`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if situation == "" && dialogue == "" {
				return fmt.Errorf("--situation or --dialogue is required")
			}

			svg := scene.RenderPlaceholder(situation, dialogue, description)

			if output == "" || output == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), svg)
				return err
			}

			if err := os.WriteFile(output, []byte(svg), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s scene)\n", output, scene.Classify(situation, description))
			return nil
		},
	}

	cmd.Flags().StringVarP(&situation, "situation", "s", "", "political situation, picks the scene")
	cmd.Flags().StringVarP(&dialogue, "dialogue", "d", "", "caption text")
	cmd.Flags().StringVar(&description, "description", "", "scene description, also used to pick the scene")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout when empty")

	return cmd
}
