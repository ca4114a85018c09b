package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"eduresource-api/internal/config"
	"eduresource-api/internal/data"
	"eduresource-api/internal/infrastructure/database"
	"eduresource-api/pkg/logger"
)

var (
	// Global flags
	envFile string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "eductl",
	Short: "Operator tool for the EduResource API",
	Long: `eductl runs maintenance tasks against the EduResource database using the
same environment configuration as the API server.

Commands:
  migrate        - Create the schema
  seed           - Insert the bootstrap admin and reference data
  token issue    - Issue a bearer token for an existing account
  token inspect  - Verify a bearer token and print its claims`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading configuration")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for database operations")
}

// loadConfig reads the environment and sets up logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	return cfg, nil
}

// openStore connects to the configured database. The returned func closes it.
func openStore(ctx context.Context, cfg *config.Config) (*data.Store, func(), error) {
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return data.NewStore(db.SQL, db.Dialect), func() { _ = db.Close() }, nil
}
