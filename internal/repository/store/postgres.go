package store

import (
	"context"
	"errors"

	"dropstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateStoreInput) (*domain.Store, error) {
	const q = `
INSERT INTO stores (owner_id, name, slug, type)
VALUES ($1, $2, $3, $4)
RETURNING id::text, owner_id::text, name, slug, type, created_at
`
	var st domain.Store
	if err := r.pool.QueryRow(ctx, q, in.OwnerID, in.Name, in.Slug, in.Type).Scan(
		&st.ID,
		&st.OwnerID,
		&st.Name,
		&st.Slug,
		&st.Type,
		&st.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	const q = `
SELECT id::text, owner_id::text, name, slug, type, created_at
FROM stores
WHERE id = $1
`
	var st domain.Store
	if err := r.pool.QueryRow(ctx, q, id).Scan(
		&st.ID,
		&st.OwnerID,
		&st.Name,
		&st.Slug,
		&st.Type,
		&st.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (r *postgresRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stores WHERE owner_id = $1`, ownerID).Scan(&count)
	return count, err
}

func (r *postgresRepo) AddProduct(ctx context.Context, storeID, title string, price float64) (*domain.StoreProduct, error) {
	const q = `
INSERT INTO store_products (store_id, title, price)
VALUES ($1, $2, $3)
RETURNING id::text, store_id::text, title, price, created_at
`
	var p domain.StoreProduct
	if err := r.pool.QueryRow(ctx, q, storeID, title, price).Scan(
		&p.ID,
		&p.StoreID,
		&p.Title,
		&p.Price,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) CountProducts(ctx context.Context, storeID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM store_products WHERE store_id = $1`, storeID).Scan(&count)
	return count, err
}
