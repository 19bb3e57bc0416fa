package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dropstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// The full payload is stored as jsonb; the columns exist for lookups and
// conditional updates, not as the source of truth for the wire shape.
func (r *postgresRepo) Create(ctx context.Context, p domain.CheckoutPayload) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}

	var idempotencyKey *string
	if p.Metadata.IdempotencyKey != "" {
		idempotencyKey = &p.Metadata.IdempotencyKey
	}

	const q = `
INSERT INTO checkouts (checkout_id, order_id, store_id, idempotency_key, payment_status, payload, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err = r.pool.Exec(ctx, q,
		p.Metadata.CheckoutID,
		p.Metadata.OrderID,
		p.StoreID,
		idempotencyKey,
		p.Payment.Status,
		payload,
		p.Metadata.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, checkoutID string) (*domain.CheckoutPayload, error) {
	const q = `
SELECT payload
FROM checkouts
WHERE checkout_id = $1
`
	return r.fetchPayload(ctx, q, checkoutID)
}

func (r *postgresRepo) GetByIdempotencyKey(ctx context.Context, storeID, key string) (*domain.CheckoutPayload, error) {
	const q = `
SELECT payload
FROM checkouts
WHERE store_id = $1 AND idempotency_key = $2
ORDER BY created_at DESC
LIMIT 1
`
	return r.fetchPayload(ctx, q, storeID, key)
}

func (r *postgresRepo) UpdatePaymentStatus(ctx context.Context, checkoutID, status, transactionID string) error {
	const q = `
UPDATE checkouts
SET payment_status = $1,
    payload = jsonb_set(
        jsonb_set(payload, '{payment,status}', to_jsonb($1::text)),
        '{payment,transaction_id}', to_jsonb($2::text)),
    updated_at = $3
WHERE checkout_id = $4
`
	cmd, err := r.pool.Exec(ctx, q, status, transactionID, time.Now().UTC(), checkoutID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetchPayload(ctx context.Context, query string, args ...interface{}) (*domain.CheckoutPayload, error) {
	var raw []byte
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var p domain.CheckoutPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
