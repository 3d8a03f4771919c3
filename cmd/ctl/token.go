package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"codeberg.org/satirist/server/internal/auth"
	"codeberg.org/satirist/server/satirist/users"
)

const testProvider = "test"

func newTokenCmd() *cobra.Command {
	var (
		email       string
		name        string
		databaseURL string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a JWT for a test user",
		Long: `Issues a JWT signed with JWT_SECRET, for the TUI or curl.

With a database URL the user is found or created in the users table so the
postgres quota store can track it. Without one a random user ID is used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if os.Getenv("JWT_SECRET") == "" {
				return fmt.Errorf("JWT_SECRET must be set")
			}

			userID := uuid.NewString()

			if databaseURL != "" {
				pool, err := pgxpool.New(cmd.Context(), databaseURL)
				if err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer pool.Close()

				user, err := users.NewPostgresRepository(pool).FindOrCreateByProvider(cmd.Context(), users.ProviderIdentity{
					Provider:   testProvider,
					ProviderID: email,
					Email:      email,
					Name:       name,
				})
				if err != nil {
					return err
				}

				userID = user.ID
			}

			token, err := auth.GenerateJWT(userID, email, name)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "user %s (%s)\nexport SATIRIST_TOKEN=%q\n", userID, email, token)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "test@satirist.dev", "email claim")
	cmd.Flags().StringVar(&name, "name", "Test User", "name claim")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "find or create the user in this database")

	return cmd
}
