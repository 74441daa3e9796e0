// Package access decides whether a user may run another analysis and
// records the analyses they run.
package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/proposal-assistant/internal/types"
)

// DefaultTrialLimit is the number of free analyses without a subscription.
const DefaultTrialLimit = 10

// Reason explains an access decision.
type Reason string

// Access decision reasons
const (
	ReasonSubscription Reason = "subscription"
	ReasonTrial        Reason = "trial"
	ReasonLimitReached Reason = "limit_reached"
	ReasonErrorBypass  Reason = "error_bypass"
	ReasonUnlimited    Reason = "unlimited"
)

// Account statuses reported to the extension
const (
	StatusPremium = "premium"
	StatusTrial   = "trial"
	StatusExpired = "expired"
)

// Decision is the outcome of an access check. Remaining is set only for
// trial users.
type Decision struct {
	Allowed   bool
	Reason    Reason
	Remaining *int
	Limit     int
}

// Status maps the decision onto the account status shown to the user.
func (d Decision) Status() string {
	switch {
	case d.Reason == ReasonSubscription || d.Reason == ReasonUnlimited:
		return StatusPremium
	case d.Allowed:
		return StatusTrial
	default:
		return StatusExpired
	}
}

// Checker gates analyses and records them.
type Checker interface {
	CheckAccess(ctx context.Context, userID uuid.UUID) (Decision, error)
	LogUsage(ctx context.Context, userID uuid.UUID, record types.UsageRecord) error
	TrialLimit() int
}

// Store is the persistence the Service needs; *db.DB satisfies it.
type Store interface {
	HasActiveSubscription(ctx context.Context, userID uuid.UUID) (bool, error)
	CountUsage(ctx context.Context, userID uuid.UUID) (int, error)
	InsertUsage(ctx context.Context, userID uuid.UUID, record types.UsageRecord) (uuid.UUID, error)
}

// Service meters trial usage against a Store.
type Service struct {
	store      Store
	trialLimit int
	logger     *zap.Logger
}

// NewService creates a Service. A non-positive limit selects DefaultTrialLimit.
func NewService(store Store, trialLimit int, logger *zap.Logger) *Service {
	if trialLimit <= 0 {
		trialLimit = DefaultTrialLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, trialLimit: trialLimit, logger: logger}
}

// TrialLimit implements Checker.
func (s *Service) TrialLimit() int {
	return s.trialLimit
}

// CheckAccess allows subscribers, then trial users under the limit. When
// usage cannot be counted the user is let through rather than blocked by
// our own failure.
func (s *Service) CheckAccess(ctx context.Context, userID uuid.UUID) (Decision, error) {
	subscribed, err := s.store.HasActiveSubscription(ctx, userID)
	if err != nil {
		s.logger.Warn("subscription lookup failed, falling back to trial count",
			zap.String("user_id", userID.String()), zap.Error(err))
	}
	if subscribed {
		return Decision{Allowed: true, Reason: ReasonSubscription, Limit: s.trialLimit}, nil
	}

	count, err := s.store.CountUsage(ctx, userID)
	if err != nil {
		s.logger.Error("usage count failed, allowing request",
			zap.String("user_id", userID.String()), zap.Error(err))
		return Decision{Allowed: true, Reason: ReasonErrorBypass, Limit: s.trialLimit}, nil
	}

	if count < s.trialLimit {
		remaining := s.trialLimit - count
		return Decision{Allowed: true, Reason: ReasonTrial, Remaining: &remaining, Limit: s.trialLimit}, nil
	}

	return Decision{Allowed: false, Reason: ReasonLimitReached, Limit: s.trialLimit}, nil
}

// LogUsage implements Checker.
func (s *Service) LogUsage(ctx context.Context, userID uuid.UUID, record types.UsageRecord) error {
	id, err := s.store.InsertUsage(ctx, userID, record)
	if err != nil {
		return fmt.Errorf("failed to log usage: %w", err)
	}
	s.logger.Debug("usage logged", zap.String("user_id", userID.String()), zap.String("usage_id", id.String()))
	return nil
}

// Unlimited allows everything and records nothing. It serves deployments
// without a database.
type Unlimited struct{}

// CheckAccess implements Checker.
func (Unlimited) CheckAccess(context.Context, uuid.UUID) (Decision, error) {
	return Decision{Allowed: true, Reason: ReasonUnlimited}, nil
}

// LogUsage implements Checker.
func (Unlimited) LogUsage(context.Context, uuid.UUID, types.UsageRecord) error {
	return nil
}

// TrialLimit implements Checker.
func (Unlimited) TrialLimit() int {
	return 0
}
