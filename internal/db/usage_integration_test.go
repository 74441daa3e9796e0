package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/proposal-assistant/internal/types"
)

func setupTestDB(t *testing.T) *DB {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.Migrate(ctx))
	return db
}

func cleanupUser(t *testing.T, db *DB, userID uuid.UUID) {
	ctx := context.Background()
	_, err := db.pool.Exec(ctx, `DELETE FROM usage_logs WHERE user_id = $1`, userID)
	assert.NoError(t, err)
	_, err = db.pool.Exec(ctx, `DELETE FROM subscriptions WHERE user_id = $1`, userID)
	assert.NoError(t, err)
}

func TestIntegration_Migrate_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	assert.NoError(t, db.Migrate(context.Background()))
}

func TestIntegration_UsageCounting(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	userID := uuid.New()
	defer cleanupUser(t, db, userID)

	count, err := db.CountUsage(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	price := 925
	id, err := db.InsertUsage(ctx, userID, types.UsageRecord{
		ProjectTitle: "Landing page",
		ProjectURL:   "https://example.com/projeto/1",
		ProposalText: "Olá",
		Price:        &price,
		Deadline:     10,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	_, err = db.InsertUsage(ctx, userID, types.UsageRecord{ProjectTitle: "Sem valor"})
	require.NoError(t, err)

	count, err = db.CountUsage(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	logs, err := db.ListUsage(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	var withPrice, withoutPrice UsageLog
	for _, l := range logs {
		if l.ProjectTitle == "Landing page" {
			withPrice = l
		} else {
			withoutPrice = l
		}
	}
	require.NotNil(t, withPrice.ProposalValue)
	assert.Equal(t, 925, *withPrice.ProposalValue)
	require.NotNil(t, withPrice.ProposalDeadline)
	assert.Equal(t, 10, *withPrice.ProposalDeadline)
	assert.Equal(t, "https://example.com/projeto/1", withPrice.ProjectURL)
	assert.Nil(t, withoutPrice.ProposalValue)
	assert.Nil(t, withoutPrice.ProposalDeadline)
	assert.Empty(t, withoutPrice.ProjectURL)
}

func TestIntegration_Subscriptions(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	userID := uuid.New()
	defer cleanupUser(t, db, userID)

	active, err := db.HasActiveSubscription(ctx, userID)
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, db.SetSubscriptionStatus(ctx, userID, SubscriptionTrialing))
	active, err = db.HasActiveSubscription(ctx, userID)
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, db.SetSubscriptionStatus(ctx, userID, SubscriptionCanceled))
	active, err = db.HasActiveSubscription(ctx, userID)
	require.NoError(t, err)
	assert.False(t, active)
}
