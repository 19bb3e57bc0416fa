package giftcard

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"math"
	"strings"

	"dropstore/internal/domain"
)

type repo interface {
	Create(ctx context.Context, card domain.GiftCard) (*domain.GiftCard, error)
	GetByCode(ctx context.Context, code string) (*domain.GiftCard, error)
	Redeem(ctx context.Context, code string, amount float64) (*domain.GiftCard, error)
}

// Service issues and redeems store gift cards.
type Service struct {
	repo repo
}

func New(r repo) *Service {
	return &Service{repo: r}
}

// Issue mints a gift card with a fresh random code, retrying on the
// unlikely code collision.
func (s *Service) Issue(ctx context.Context, storeID string, amount float64) (*domain.GiftCard, error) {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return nil, errors.New("store id required")
	}
	amount = round2(amount)
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	for i := 0; i < 5; i++ {
		code, err := randomCode()
		if err != nil {
			return nil, err
		}
		card, err := s.repo.Create(ctx, domain.GiftCard{
			StoreID:        storeID,
			Code:           code,
			InitialBalance: amount,
			Balance:        amount,
			Currency:       domain.PiCurrency,
			Status:         domain.GiftCardActive,
		})
		if err == nil {
			return card, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return nil, err
	}
	return nil, errors.New("gift card code collision")
}

// Redeem deducts amount from the card's balance. The deduction is a single
// conditional update in the repository, so two concurrent redemptions cannot
// overdraw the card.
func (s *Service) Redeem(ctx context.Context, code string, amount float64) (*domain.GiftCard, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errors.New("code required")
	}
	amount = round2(amount)
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	return s.repo.Redeem(ctx, code, amount)
}

func (s *Service) Get(ctx context.Context, code string) (*domain.GiftCard, error) {
	return s.repo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

var codeEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

func randomCode() (string, error) {
	b := make([]byte, 10)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "GIFT-" + codeEncoding.EncodeToString(b), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
