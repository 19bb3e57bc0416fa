package checkout

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"dropstore/internal/domain"
)

// maxMintAttempts bounds the retry loop when a freshly minted checkout id
// collides with a stored one.
const maxMintAttempts = 5

type repo interface {
	Create(ctx context.Context, p domain.CheckoutPayload) error
	GetByID(ctx context.Context, checkoutID string) (*domain.CheckoutPayload, error)
	GetByIdempotencyKey(ctx context.Context, storeID, key string) (*domain.CheckoutPayload, error)
	UpdatePaymentStatus(ctx context.Context, checkoutID, status, transactionID string) error
}

// Service turns validated checkout payloads into stored checkouts. Create
// never returns a Go error: every failure, validation or infrastructure,
// is reported through the response's success flag so callers only ever
// inspect the result.
type Service struct {
	repo   repo
	logger *log.Logger
	now    func() time.Time
}

func New(r repo, logger *log.Logger) *Service {
	return &Service{repo: r, logger: logger, now: time.Now}
}

func (s *Service) Create(ctx context.Context, p domain.CheckoutPayload) domain.CheckoutResponse {
	valid, errs := Validate(p)
	if !valid {
		return domain.CheckoutResponse{
			Success: false,
			Message: joinMessages(errs),
		}
	}

	clean := Sanitize(p)
	key := strings.TrimSpace(clean.Metadata.IdempotencyKey)

	if key != "" {
		existing, err := s.repo.GetByIdempotencyKey(ctx, clean.StoreID, key)
		switch {
		case err == nil:
			return replayResponse(existing)
		case !errors.Is(err, domain.ErrNotFound):
			return s.failure(err)
		}
	}

	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		id, err := newCheckoutID()
		if err != nil {
			return s.failure(err)
		}
		clean.Metadata.CheckoutID = id
		clean.Metadata.OrderID = orderIDFrom(id)
		clean.Metadata.CreatedAt = s.now().UTC()

		if err := s.repo.Create(ctx, clean); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				// The violated uniqueness may be the idempotency index,
				// not the checkout id: a concurrent request with the
				// same key won the insert. Replay its checkout instead
				// of re-minting with a key that can never go through.
				if key != "" {
					existing, lookupErr := s.repo.GetByIdempotencyKey(ctx, clean.StoreID, key)
					if lookupErr == nil {
						return replayResponse(existing)
					}
					if !errors.Is(lookupErr, domain.ErrNotFound) {
						return s.failure(lookupErr)
					}
				}
				continue
			}
			return s.failure(err)
		}

		return domain.CheckoutResponse{
			Success:    true,
			CheckoutID: id,
			OrderID:    clean.Metadata.OrderID,
			Message:    "checkout created",
			Data:       &clean,
		}
	}

	return s.failure(errors.New("checkout id collision"))
}

func (s *Service) Get(ctx context.Context, checkoutID string) (*domain.CheckoutPayload, error) {
	return s.repo.GetByID(ctx, checkoutID)
}

// MarkPayment records the outcome reported by the payment network against a
// stored checkout.
func (s *Service) MarkPayment(ctx context.Context, checkoutID, status, transactionID string) error {
	switch status {
	case domain.PaymentPaid, domain.PaymentFailed, domain.PaymentCancelled:
	default:
		return errors.New("unsupported payment status")
	}
	return s.repo.UpdatePaymentStatus(ctx, checkoutID, status, transactionID)
}

// replayResponse answers a duplicate submission with the checkout the
// original request stored.
func replayResponse(existing *domain.CheckoutPayload) domain.CheckoutResponse {
	return domain.CheckoutResponse{
		Success:    true,
		CheckoutID: existing.Metadata.CheckoutID,
		OrderID:    existing.Metadata.OrderID,
		Message:    "checkout already created",
		Data:       existing,
	}
}

func (s *Service) failure(err error) domain.CheckoutResponse {
	if s.logger != nil {
		s.logger.Printf("create checkout: %v", err)
	}
	return domain.CheckoutResponse{
		Success: false,
		Message: "Failed to create checkout: " + err.Error(),
	}
}

func joinMessages(errs []domain.FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

// newCheckoutID mints a 128-bit random identifier from a secure source.
func newCheckoutID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// orderIDFrom derives the order identifier from a prefix of the checkout id.
// The coupling is intentional; order ids are references, not secrets.
func orderIDFrom(checkoutID string) string {
	prefix := checkoutID
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return "ORD-" + strings.ToUpper(prefix)
}
