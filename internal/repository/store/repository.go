package store

import (
	"context"

	"dropstore/internal/domain"
)

type CreateStoreInput struct {
	OwnerID string
	Name    string
	Slug    string
	Type    string
}

type Repository interface {
	Create(ctx context.Context, in CreateStoreInput) (*domain.Store, error)
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	AddProduct(ctx context.Context, storeID, title string, price float64) (*domain.StoreProduct, error)
	CountProducts(ctx context.Context, storeID string) (int, error)
}
