package subscription

import (
	"context"
	"time"

	"dropstore/internal/domain"
)

type Repository interface {
	// GetCurrentByUser returns the user's subscription with the latest
	// expiry, regardless of status.
	GetCurrentByUser(ctx context.Context, userID string) (*domain.Subscription, error)
	// ExpireIfDue flips an active, past-due subscription to expired in a
	// single conditional update. It reports whether the transition was
	// applied; re-applying it is a no-op.
	ExpireIfDue(ctx context.Context, id string, now time.Time) (bool, error)
}
