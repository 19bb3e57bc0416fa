package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Demo owner used by the seeded store and subscription.
var demoOwnerID = uuid.MustParse("2f0d7f94-4d6e-4c5a-9d3a-5a8b3a1f6b42").String()

// Apply inserts basic seed data for manual testing. Re-running it is a no-op.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	storeID, err := ensureStore(ctx, pool, demoOwnerID, "Demo Drop Store", "demo-drop-store")
	if err != nil {
		return fmt.Errorf("ensure store: %w", err)
	}

	if err := ensureSubscription(ctx, pool, demoOwnerID, "growth"); err != nil {
		return fmt.Errorf("ensure subscription: %w", err)
	}

	products := []struct {
		Title string
		Price float64
	}{
		{Title: "Creator T-Shirt", Price: 12.50},
		{Title: "Sticker Pack", Price: 3.14},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, storeID, p.Title, p.Price); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Title, err)
		}
	}

	return nil
}

func ensureStore(ctx context.Context, pool *pgxpool.Pool, ownerID, name, slug string) (string, error) {
	const existing = `
SELECT id::text FROM stores WHERE owner_id = $1 AND slug = $2
`
	var id string
	if err := pool.QueryRow(ctx, existing, ownerID, slug).Scan(&id); err == nil {
		return id, nil
	}

	const q = `
INSERT INTO stores (owner_id, name, slug, type)
VALUES ($1, $2, $3, 'online')
RETURNING id::text
`
	if err := pool.QueryRow(ctx, q, ownerID, name, slug).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureSubscription(ctx context.Context, pool *pgxpool.Pool, userID, planType string) error {
	const existing = `
SELECT COUNT(*) FROM subscriptions WHERE user_id = $1 AND status = 'active'
`
	var count int
	if err := pool.QueryRow(ctx, existing, userID).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	const q = `
INSERT INTO subscriptions (id, user_id, plan_type, status, started_at, expires_at)
VALUES ($1, $2, $3, 'active', $4, $5)
`
	now := time.Now().UTC()
	_, err := pool.Exec(ctx, q, uuid.NewString(), userID, planType, now, now.AddDate(0, 1, 0))
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, storeID, title string, price float64) error {
	const existing = `
SELECT COUNT(*) FROM store_products WHERE store_id = $1 AND title = $2
`
	var count int
	if err := pool.QueryRow(ctx, existing, storeID, title).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	const q = `
INSERT INTO store_products (store_id, title, price)
VALUES ($1, $2, $3)
`
	_, err := pool.Exec(ctx, q, storeID, title, price)
	return err
}
