// Command ctl is the operator CLI for database migrations, placeholder
// rendering, test tokens and exports of the flat-file stores.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"codeberg.org/satirist/server/internal/logger"
)

func main() {
	_ = godotenv.Load() // optional outside development

	if err := newRootCmd().Execute(); err != nil {
		logger.ErrorErr(err, "command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ctl",
		Short:         "Operate a satirist deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultDataDir := os.Getenv("DATA_DIR")
	if defaultDataDir == "" {
		defaultDataDir = "."
	}

	root.PersistentFlags().String("data-dir", defaultDataDir, "directory holding feedback-data.json and waitlist-data.json")

	root.AddCommand(
		newMigrateCmd(),
		newRenderCmd(),
		newFeedbackCmd(),
		newWaitlistCmd(),
		newTokenCmd(),
	)

	return root
}

func dataDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("data-dir")
	return dir
}
