package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"dropstore/internal/domain"
	"dropstore/internal/plan"
)

type stubRepo struct {
	sub         *domain.Subscription
	getErr      error
	expireCalls int
	lastExpired string
	expireErr   error
	expired     bool
}

func (s *stubRepo) GetCurrentByUser(_ context.Context, _ string) (*domain.Subscription, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.sub, nil
}

func (s *stubRepo) ExpireIfDue(_ context.Context, id string, _ time.Time) (bool, error) {
	s.expireCalls++
	s.lastExpired = id
	return s.expired, s.expireErr
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newService(repo *stubRepo) *Service {
	svc := New(repo, plan.Default(), nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestDeriveNoRecord(t *testing.T) {
	state := Derive(nil, plan.Default(), testNow)
	if state.IsActive || state.IsExpired || state.DaysRemaining != 0 {
		t.Fatalf("unexpected state for missing record: %+v", state)
	}
	if state.Subscription != nil || state.PlanLimits != nil {
		t.Fatalf("expected empty state, got %+v", state)
	}
}

func TestDeriveActiveSubscription(t *testing.T) {
	sub := &domain.Subscription{
		ID:        "s1",
		PlanType:  "basic",
		Status:    domain.SubscriptionActive,
		ExpiresAt: testNow.AddDate(0, 0, 10),
	}
	state := Derive(sub, plan.Default(), testNow)
	if !state.IsActive || state.IsExpired {
		t.Fatalf("unexpected state: %+v", state)
	}
	if state.DaysRemaining != 10 {
		t.Fatalf("expected 10 days remaining, got %d", state.DaysRemaining)
	}
	if state.PlanLimits == nil || state.PlanLimits.MaxStores != 1 {
		t.Fatalf("expected basic plan limits, got %+v", state.PlanLimits)
	}
}

func TestDeriveFractionalDaysRoundUp(t *testing.T) {
	sub := &domain.Subscription{
		ID:        "s1",
		PlanType:  "basic",
		Status:    domain.SubscriptionActive,
		ExpiresAt: testNow.Add(36 * time.Hour),
	}
	state := Derive(sub, plan.Default(), testNow)
	if state.DaysRemaining != 2 {
		t.Fatalf("expected fractional days to round up to 2, got %d", state.DaysRemaining)
	}
}

func TestDeriveActivePastDue(t *testing.T) {
	sub := &domain.Subscription{
		ID:        "s1",
		PlanType:  "basic",
		Status:    domain.SubscriptionActive,
		ExpiresAt: testNow.AddDate(0, 0, -1),
	}
	state := Derive(sub, plan.Default(), testNow)
	if state.IsActive || !state.IsExpired {
		t.Fatalf("expected expired state, got %+v", state)
	}
	if state.DaysRemaining != 0 || state.PlanLimits != nil {
		t.Fatalf("expired state must carry no limits, got %+v", state)
	}
	if state.Subscription.Status != domain.SubscriptionExpired {
		t.Fatalf("returned view should reflect the expired status, got %q", state.Subscription.Status)
	}
	if sub.Status != domain.SubscriptionActive {
		t.Fatal("Derive must not mutate the input record")
	}
}

func TestDeriveUnknownPlanType(t *testing.T) {
	sub := &domain.Subscription{
		ID:        "s1",
		PlanType:  "legacy-gold",
		Status:    domain.SubscriptionActive,
		ExpiresAt: testNow.AddDate(0, 0, 5),
	}
	state := Derive(sub, plan.Default(), testNow)
	if !state.IsActive {
		t.Fatal("unknown plan type still counts as active")
	}
	if state.PlanLimits != nil {
		t.Fatalf("unknown plan type must resolve to nil limits, got %+v", state.PlanLimits)
	}
}

func TestDeriveNonActiveStatus(t *testing.T) {
	sub := &domain.Subscription{
		ID:        "s1",
		PlanType:  "basic",
		Status:    "cancelled",
		ExpiresAt: testNow.AddDate(0, 0, 5),
	}
	state := Derive(sub, plan.Default(), testNow)
	if state.IsActive || state.IsExpired {
		t.Fatalf("unexpected state: %+v", state)
	}

	sub.ExpiresAt = testNow.AddDate(0, 0, -5)
	state = Derive(sub, plan.Default(), testNow)
	if state.IsActive || !state.IsExpired {
		t.Fatalf("past-due non-active record should read as expired: %+v", state)
	}
}

func TestCurrentTriggersExactlyOneExpireWrite(t *testing.T) {
	repo := &stubRepo{
		sub: &domain.Subscription{
			ID:        "s1",
			PlanType:  "basic",
			Status:    domain.SubscriptionActive,
			ExpiresAt: testNow.AddDate(0, 0, -1),
		},
		expired: true,
	}
	svc := newService(repo)

	state, err := svc.Current(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.IsActive || !state.IsExpired {
		t.Fatalf("unexpected state: %+v", state)
	}
	if repo.expireCalls != 1 || repo.lastExpired != "s1" {
		t.Fatalf("expected exactly one expire write for s1, got %d for %q", repo.expireCalls, repo.lastExpired)
	}
}

func TestCurrentNoWriteWhenStillActive(t *testing.T) {
	repo := &stubRepo{
		sub: &domain.Subscription{
			ID:        "s1",
			PlanType:  "growth",
			Status:    domain.SubscriptionActive,
			ExpiresAt: testNow.AddDate(0, 0, 10),
		},
	}
	svc := newService(repo)

	state, err := svc.Current(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.IsActive || state.DaysRemaining != 10 {
		t.Fatalf("unexpected state: %+v", state)
	}
	if repo.expireCalls != 0 {
		t.Fatalf("no expire write expected, got %d", repo.expireCalls)
	}
}

func TestCurrentNoWriteWhenAlreadyExpired(t *testing.T) {
	repo := &stubRepo{
		sub: &domain.Subscription{
			ID:        "s1",
			PlanType:  "basic",
			Status:    domain.SubscriptionExpired,
			ExpiresAt: testNow.AddDate(0, 0, -30),
		},
	}
	svc := newService(repo)

	if _, err := svc.Current(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.expireCalls != 0 {
		t.Fatalf("already-expired record must not be rewritten, got %d writes", repo.expireCalls)
	}
}

func TestCurrentExpireWriteFailureIsOptimistic(t *testing.T) {
	repo := &stubRepo{
		sub: &domain.Subscription{
			ID:        "s1",
			PlanType:  "basic",
			Status:    domain.SubscriptionActive,
			ExpiresAt: testNow.AddDate(0, 0, -1),
		},
		expireErr: errors.New("db down"),
	}
	svc := newService(repo)

	state, err := svc.Current(context.Background(), "u1")
	if err != nil {
		t.Fatalf("a failed expire write must not fail the read: %v", err)
	}
	if !state.IsExpired || state.Subscription.Status != domain.SubscriptionExpired {
		t.Fatalf("returned view must be optimistic, got %+v", state)
	}
}

func TestCurrentMissingRecord(t *testing.T) {
	repo := &stubRepo{getErr: domain.ErrNotFound}
	svc := newService(repo)

	state, err := svc.Current(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.IsActive || state.IsExpired || state.Subscription != nil {
		t.Fatalf("expected empty state, got %+v", state)
	}
}

func TestCanCreateStoreAgainstBasicPlan(t *testing.T) {
	sub := &domain.Subscription{
		ID:        "s1",
		PlanType:  "basic",
		Status:    domain.SubscriptionActive,
		ExpiresAt: testNow.AddDate(0, 0, 30),
	}
	state := Derive(sub, plan.Default(), testNow)
	if state.CanCreateStore(3) {
		t.Fatal("basic plan caps stores at 1; count 3 must be rejected")
	}
	if !state.CanCreateStore(0) {
		t.Fatal("first store should be allowed on basic plan")
	}
}

func TestCanAddProductUnlimited(t *testing.T) {
	sub := &domain.Subscription{
		ID:        "s1",
		PlanType:  "pro",
		Status:    domain.SubscriptionActive,
		ExpiresAt: testNow.AddDate(0, 0, 30),
	}
	state := Derive(sub, plan.Default(), testNow)
	if !state.CanAddProduct(100000) {
		t.Fatal("pro plan products are unlimited")
	}
}

func TestHasFeatureRequiresActive(t *testing.T) {
	sub := &domain.Subscription{
		ID:        "s1",
		PlanType:  "pro",
		Status:    domain.SubscriptionActive,
		ExpiresAt: testNow.AddDate(0, 0, -1),
	}
	state := Derive(sub, plan.Default(), testNow)
	if state.HasFeature(plan.FeatureGiftCards) {
		t.Fatal("expired subscription must not keep features")
	}
}
