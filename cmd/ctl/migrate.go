package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/satirist/server/internal/migrations"
)

func newMigrateCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Applies the embedded goose migrations to the database.

The connection string is taken from --database-url, then DATABASE_URL,
then SUPABASE_CONNECTION_STRING.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if databaseURL == "" {
				return fmt.Errorf("no database URL: set --database-url or DATABASE_URL")
			}

			if err := migrations.RunURL(cmd.Context(), databaseURL); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	fallback := os.Getenv("DATABASE_URL")
	if fallback == "" {
		fallback = os.Getenv("SUPABASE_CONNECTION_STRING")
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", fallback, "postgres connection string")

	return cmd
}
