package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrSubscriptionRequired indicates the caller has no active subscription.
	ErrSubscriptionRequired = errors.New("active subscription required")
	// ErrPlanLimitReached indicates the current plan quota is exhausted.
	ErrPlanLimitReached = errors.New("plan limit reached")
	// ErrGiftCardInactive indicates the gift card is not redeemable.
	ErrGiftCardInactive = errors.New("gift card not active")
	// ErrInsufficientBalance indicates a redemption exceeds the remaining balance.
	ErrInsufficientBalance = errors.New("insufficient gift card balance")
)
