package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/proposal-assistant/internal/types"
)

// HasActiveSubscription reports whether the user has an entitled subscription.
func (db *DB) HasActiveSubscription(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM subscriptions WHERE user_id = $1 AND status = ANY($2)
		)`,
		userID, EntitledStatuses,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return exists, nil
}

// SetSubscriptionStatus creates or updates the user's subscription.
func (db *DB) SetSubscriptionStatus(ctx context.Context, userID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO subscriptions (user_id, status)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET status = $2, updated_at = NOW()`,
		userID, status,
	)
	if err != nil {
		return fmt.Errorf("failed to set subscription status: %w", err)
	}
	return nil
}

// CountUsage returns how many analyses the user has recorded.
func (db *DB) CountUsage(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM usage_logs WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count usage: %w", err)
	}
	return count, nil
}

// InsertUsage records a completed analysis and returns the log ID.
func (db *DB) InsertUsage(ctx context.Context, userID uuid.UUID, record types.UsageRecord) (uuid.UUID, error) {
	id := uuid.New()

	var deadline *int
	if record.Deadline != 0 {
		deadline = &record.Deadline
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO usage_logs (id, user_id, project_title, project_url, proposal_text, proposal_value, proposal_deadline)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`,
		id, userID, record.ProjectTitle, record.ProjectURL, record.ProposalText, record.Price, deadline,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert usage log: %w", err)
	}
	return id, nil
}

// ListUsage returns the user's most recent usage logs, newest first.
func (db *DB) ListUsage(ctx context.Context, userID uuid.UUID, limit int) ([]UsageLog, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, project_title, COALESCE(project_url, ''), COALESCE(proposal_text, ''),
		        proposal_value, proposal_deadline, created_at
		 FROM usage_logs
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage logs: %w", err)
	}
	defer rows.Close()

	var logs []UsageLog
	for rows.Next() {
		var l UsageLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProjectTitle, &l.ProjectURL, &l.ProposalText,
			&l.ProposalValue, &l.ProposalDeadline, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan usage log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate usage logs: %w", err)
	}
	return logs, nil
}
