package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"eduresource-api/internal/data"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	Long: `Create every table and index the API needs. Statements use IF NOT EXISTS,
so running it against an existing schema is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	store, closeDB, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := data.Migrate(ctx, store.DB(), store.Dialect()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "schema migrated (%s)\n", store.Dialect().Name())
	return nil
}
