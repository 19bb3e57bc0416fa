package domain

import "time"

// Subscription status values the resolver understands. Other lifecycle
// states (trialing, cancelled, ...) are written by external billing flows
// and treated as non-active here.
const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PlanType  string    `json:"plan_type"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
