package db

import (
	"time"

	"github.com/google/uuid"
)

// Subscription statuses, as written by the billing provider
const (
	SubscriptionActive     = "active"
	SubscriptionTrialing   = "trialing"
	SubscriptionPastDue    = "past_due"
	SubscriptionCanceled   = "canceled"
	SubscriptionIncomplete = "incomplete"
)

// EntitledStatuses are the subscription statuses that grant unlimited use.
var EntitledStatuses = []string{SubscriptionActive, SubscriptionTrialing}

// UsageLog is one recorded analysis.
type UsageLog struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	ProjectTitle     string    `json:"project_title"`
	ProjectURL       string    `json:"project_url,omitempty"`
	ProposalText     string    `json:"proposal_text,omitempty"`
	ProposalValue    *int      `json:"proposal_value,omitempty"`
	ProposalDeadline *int      `json:"proposal_deadline,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
