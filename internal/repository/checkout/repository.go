package checkout

import (
	"context"

	"dropstore/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p domain.CheckoutPayload) error
	GetByID(ctx context.Context, checkoutID string) (*domain.CheckoutPayload, error)
	GetByIdempotencyKey(ctx context.Context, storeID, key string) (*domain.CheckoutPayload, error)
	UpdatePaymentStatus(ctx context.Context, checkoutID, status, transactionID string) error
}
