package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/spf13/cobra"

	"eduresource-api/internal/models"
	"eduresource-api/pkg/database"
	"eduresource-api/pkg/jwt"
)

var (
	// Token flags
	tokenEmail string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue and inspect bearer tokens",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a bearer token for an existing account",
	Long: `Issue a bearer token carrying the roles stored for the account, signed with
JWT_SECRET. No password is required, so keep this tool away from untrusted hands.

Examples:
  eductl token issue --email admin@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTokenIssue(cmd)
	},
}

var tokenInspectCmd = &cobra.Command{
	Use:   "inspect <token>",
	Short: "Verify a bearer token and print its claims",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTokenInspect(cmd, args[0])
	},
}

func init() {
	tokenIssueCmd.Flags().StringVar(&tokenEmail, "email", "", "Email of the account")
	_ = tokenIssueCmd.MarkFlagRequired("email")

	tokenCmd.AddCommand(tokenIssueCmd, tokenInspectCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenIssue(cmd *cobra.Command) error {
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

	email := models.NormalizeEmail(tokenEmail)
	users, err := store.NewUnitOfWork().Users.Get(ctx, sq.Eq{"email": email}, "Roles")
	if err != nil {
		return err
	}
	u, err := database.SingleOrDefault(users)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("no account with email %q", email)
	}

	manager := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	token, err := manager.Issue(jwt.Identity{
		UserID:   u.ID,
		Email:    u.Email,
		UserName: u.UserName,
		Roles:    u.RoleNames(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runTokenInspect(cmd *cobra.Command, token string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	manager := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	claims, err := manager.Validate(strings.TrimSpace(token))
	if errors.Is(err, jwt.ErrInvalidToken) {
		return fmt.Errorf("token rejected: %w", err)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(claims)
}
