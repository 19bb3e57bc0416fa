package store

import (
	"context"
	"errors"
	"strings"

	"dropstore/internal/domain"
	storerepo "dropstore/internal/repository/store"
	subscriptionsvc "dropstore/internal/service/subscription"
)

type storeRepo interface {
	Create(ctx context.Context, in storerepo.CreateStoreInput) (*domain.Store, error)
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	AddProduct(ctx context.Context, storeID, title string, price float64) (*domain.StoreProduct, error)
	CountProducts(ctx context.Context, storeID string) (int, error)
}

type subscriptionResolver interface {
	Current(ctx context.Context, userID string) (subscriptionsvc.State, error)
}

// Service creates stores and products, gating each write on the owner's
// plan limits.
type Service struct {
	repo          storeRepo
	subscriptions subscriptionResolver
}

func New(repo storerepo.Repository, subscriptions subscriptionResolver) *Service {
	return &Service{repo: repo, subscriptions: subscriptions}
}

type CreateInput struct {
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
}

type AddProductInput struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Store, error) {
	ownerID := strings.TrimSpace(in.OwnerID)
	if ownerID == "" {
		return nil, errors.New("owner id required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name required")
	}
	storeType := strings.TrimSpace(in.Type)
	if storeType == "" {
		storeType = domain.StoreOnline
	}
	switch storeType {
	case domain.StorePhysical, domain.StoreOnline, domain.StoreDigital:
	default:
		return nil, errors.New("unsupported store type")
	}

	state, err := s.subscriptions.Current(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !state.IsActive {
		return nil, domain.ErrSubscriptionRequired
	}
	count, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !state.CanCreateStore(count) {
		return nil, domain.ErrPlanLimitReached
	}

	return s.repo.Create(ctx, storerepo.CreateStoreInput{
		OwnerID: ownerID,
		Name:    name,
		Slug:    slugify(name),
		Type:    storeType,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) AddProduct(ctx context.Context, storeID string, in AddProductInput) (*domain.StoreProduct, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.New("title required")
	}
	if in.Price < 0 {
		return nil, errors.New("price must not be negative")
	}

	st, err := s.repo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	state, err := s.subscriptions.Current(ctx, st.OwnerID)
	if err != nil {
		return nil, err
	}
	if !state.IsActive {
		return nil, domain.ErrSubscriptionRequired
	}
	count, err := s.repo.CountProducts(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	if !state.CanAddProduct(count) {
		return nil, domain.ErrPlanLimitReached
	}

	return s.repo.AddProduct(ctx, st.ID, title, in.Price)
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
