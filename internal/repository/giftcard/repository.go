package giftcard

import (
	"context"

	"dropstore/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, card domain.GiftCard) (*domain.GiftCard, error)
	GetByCode(ctx context.Context, code string) (*domain.GiftCard, error)
	// Redeem deducts amount from an active card with sufficient balance in
	// one conditional update, flipping the card to redeemed when the
	// balance reaches zero.
	Redeem(ctx context.Context, code string, amount float64) (*domain.GiftCard, error)
}
