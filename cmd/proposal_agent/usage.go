package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/proposal-assistant/internal/access"
	"github.com/jonathan/proposal-assistant/internal/db"
	"github.com/jonathan/proposal-assistant/internal/observability"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show a user's recent analyses",
	Long:  "Lists the most recent usage logs of a user together with their remaining trial analyses.",
	RunE:  runUsage,
}

var (
	usageUserID string
	usageLimit  int
)

func init() {
	usageCmd.Flags().StringVar(&usageUserID, "user-id", "", "User UUID (required)")
	usageCmd.Flags().IntVarP(&usageLimit, "limit", "n", 20, "Number of entries to show")

	if err := usageCmd.MarkFlagRequired("user-id"); err != nil {
		panic(fmt.Sprintf("failed to mark user-id flag as required: %v", err))
	}

	rootCmd.AddCommand(usageCmd)
}

// usageStore is the part of db.DB the usage report reads.
type usageStore interface {
	access.Store
	ListUsage(ctx context.Context, userID uuid.UUID, limit int) ([]db.UsageLog, error)
}

func runUsage(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(usageUserID)
	if err != nil {
		return fmt.Errorf("invalid --user-id: %w", err)
	}

	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	return reportUsage(cmd.Context(), cmd.OutOrStdout(), database, cfg.TrialLimit, logger, userID, usageLimit)
}

func reportUsage(ctx context.Context, out io.Writer, store usageStore, trialLimit int, logger *zap.Logger, userID uuid.UUID, limit int) error {
	logs, err := store.ListUsage(ctx, userID, limit)
	if err != nil {
		return err
	}

	decision, err := access.NewService(store, trialLimit, logger).CheckAccess(ctx, userID)
	if err != nil {
		return err
	}

	observability.NewPrinter(out).PrintUsage(logs, describeAccess(decision))
	return nil
}

func describeAccess(d access.Decision) string {
	if d.Remaining != nil {
		return fmt.Sprintf("%d left", *d.Remaining)
	}
	return d.Status()
}
