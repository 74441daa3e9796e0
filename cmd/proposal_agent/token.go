package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/proposal-assistant/internal/config"
	"github.com/jonathan/proposal-assistant/internal/db"
	"github.com/jonathan/proposal-assistant/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for local testing",
	Long: `Signs a token with JWT_SECRET for the given user, so the API can be called without the
hosted identity provider. With --subscription the user's subscription status is also written
to the database.`,
	RunE: runToken,
}

var (
	tokenUserID       string
	tokenEmail        string
	tokenHours        int
	tokenSubscription string
)

var subscriptionStatuses = []string{
	db.SubscriptionActive,
	db.SubscriptionTrialing,
	db.SubscriptionPastDue,
	db.SubscriptionCanceled,
	db.SubscriptionIncomplete,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user-id", "", "User UUID (a new one is generated when empty)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "dev@local.com", "Email claim")
	tokenCmd.Flags().IntVar(&tokenHours, "hours", 0, "Token lifetime in hours (defaults to JWT_EXPIRATION_HOURS)")
	tokenCmd.Flags().StringVar(&tokenSubscription, "subscription", "", "Also set the user's subscription status (active, trialing, past_due, canceled, incomplete)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	userID, err := parseOrNewUserID(tokenUserID)
	if err != nil {
		return err
	}

	if tokenSubscription != "" {
		if !slices.Contains(subscriptionStatuses, tokenSubscription) {
			return fmt.Errorf("invalid subscription status %q", tokenSubscription)
		}
		database, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.SetSubscriptionStatus(cmd.Context(), userID, tokenSubscription); err != nil {
			return err
		}
		logger.Info("subscription updated",
			zap.String("user_id", userID.String()),
			zap.String("status", tokenSubscription))
	}

	hours := tokenHours
	if hours == 0 {
		hours = cfg.JWTExpirationHours
	}
	return mintToken(cmd.OutOrStdout(), cfg.JWTSecret, hours, userID, tokenEmail)
}

func parseOrNewUserID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --user-id: %w", err)
	}
	return id, nil
}

// mintToken signs a token and prints the user id and token.
func mintToken(out io.Writer, secret string, hours int, userID uuid.UUID, email string) error {
	jwtCfg, err := config.NewJWTConfig(secret, hours)
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(userID, email)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "user_id: %s\ntoken:   %s\n", userID, token)
	return err
}
