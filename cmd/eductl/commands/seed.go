package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"eduresource-api/internal/data"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed an empty database",
	Long: `Insert the bootstrap admin (INITIAL_ADMIN_EMAIL, INITIAL_ADMIN_USERNAME,
INITIAL_ADMIN_PASSWORD) and the reference authors, categories, materials and
reviews. Nothing is written once any account exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command) error {
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

	seeder := data.NewSeeder(store, data.AdminAccount{
		Email:    cfg.InitialAdmin.Email,
		UserName: cfg.InitialAdmin.UserName,
		Password: cfg.InitialAdmin.Password,
	}, cfg.Security.BcryptCost)

	seeded, err := seeder.Seed(ctx)
	if err != nil {
		return err
	}

	if seeded {
		fmt.Fprintln(cmd.OutOrStdout(), "database seeded")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "accounts already exist, nothing to do")
	}
	return nil
}
