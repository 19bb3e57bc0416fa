package subscription

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"dropstore/internal/domain"
	"dropstore/internal/plan"
)

type repo interface {
	GetCurrentByUser(ctx context.Context, userID string) (*domain.Subscription, error)
	ExpireIfDue(ctx context.Context, id string, now time.Time) (bool, error)
}

// State is the derived view of a user's subscription slot at one instant.
type State struct {
	Subscription  *domain.Subscription `json:"subscription"`
	IsActive      bool                 `json:"is_active"`
	IsExpired     bool                 `json:"is_expired"`
	DaysRemaining int                  `json:"days_remaining"`
	PlanLimits    *plan.Limits         `json:"plan_limits"`
}

// CanCreateStore reports whether one more store fits the current plan.
func (st State) CanCreateStore(currentCount int) bool {
	return st.IsActive && st.PlanLimits != nil && withinLimit(currentCount, st.PlanLimits.MaxStores)
}

// CanAddProduct reports whether one more product fits the current plan.
func (st State) CanAddProduct(currentCount int) bool {
	return st.IsActive && st.PlanLimits != nil && withinLimit(currentCount, st.PlanLimits.MaxProductsPerStore)
}

// HasFeature reports whether the active plan enables a named feature.
func (st State) HasFeature(name string) bool {
	return st.IsActive && st.PlanLimits != nil && st.PlanLimits.HasFeature(name)
}

func withinLimit(current, limit int) bool {
	return limit == plan.Unlimited || current < limit
}

// Derive computes the subscription state for a record at a given time. Pure:
// the expire transition is only signalled through the returned view, never
// written here. A nil record means the user never subscribed.
func Derive(sub *domain.Subscription, plans plan.Catalog, now time.Time) State {
	if sub == nil {
		return State{}
	}

	view := *sub
	due := !sub.ExpiresAt.After(now)

	if sub.Status != domain.SubscriptionActive {
		return State{Subscription: &view, IsExpired: due}
	}

	if due {
		view.Status = domain.SubscriptionExpired
		return State{Subscription: &view, IsExpired: true}
	}

	return State{
		Subscription:  &view,
		IsActive:      true,
		DaysRemaining: daysUntil(now, sub.ExpiresAt),
		PlanLimits:    plans.Lookup(sub.PlanType),
	}
}

// daysUntil rounds partial days up so a subscription never reads as having
// fewer days left than it does.
func daysUntil(now, expiresAt time.Time) int {
	return int(math.Ceil(expiresAt.Sub(now).Hours() / 24))
}

// Service resolves subscription state against the record store, applying the
// expire transition as a side effect when it observes a past-due active
// record.
type Service struct {
	repo   repo
	plans  plan.Catalog
	logger *log.Logger
	now    func() time.Time
}

func New(r repo, plans plan.Catalog, logger *log.Logger) *Service {
	return &Service{repo: r, plans: plans, logger: logger, now: time.Now}
}

// Current returns the state of the user's most recent subscription. When a
// previously active record has passed its expiry, the expired status is
// written back as a single conditional update; the returned view is
// optimistic, so a failed write only logs.
func (s *Service) Current(ctx context.Context, userID string) (State, error) {
	sub, err := s.repo.GetCurrentByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return State{}, nil
		}
		return State{}, err
	}

	now := s.now().UTC()
	state := Derive(sub, s.plans, now)

	if sub.Status == domain.SubscriptionActive && state.IsExpired {
		if _, err := s.repo.ExpireIfDue(ctx, sub.ID, now); err != nil && s.logger != nil {
			s.logger.Printf("expire subscription %s: %v", sub.ID, err)
		}
	}

	return state, nil
}
