package db

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchema_CreatesTables(t *testing.T) {
	schema := Schema()

	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS subscriptions")
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS usage_logs")
	assert.Equal(t, 2, strings.Count(schema, "CREATE TABLE IF NOT EXISTS"))
}

func TestEntitledStatuses(t *testing.T) {
	assert.Equal(t, []string{"active", "trialing"}, EntitledStatuses)
	assert.NotContains(t, EntitledStatuses, SubscriptionPastDue)
	assert.NotContains(t, EntitledStatuses, SubscriptionCanceled)
}

func TestConnect_InvalidURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Connect(ctx, "not a url ::")
	assert.ErrorContains(t, err, "invalid database URL")
}
