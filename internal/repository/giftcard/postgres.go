package giftcard

import (
	"context"
	"errors"

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

const giftCardColumns = `id::text, store_id::text, code, initial_balance, balance, currency, status, created_at`

func (r *postgresRepo) Create(ctx context.Context, card domain.GiftCard) (*domain.GiftCard, error) {
	const q = `
INSERT INTO gift_cards (store_id, code, initial_balance, balance, currency, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + giftCardColumns + `
`
	var out domain.GiftCard
	if err := r.pool.QueryRow(ctx, q,
		card.StoreID,
		card.Code,
		card.InitialBalance,
		card.Balance,
		card.Currency,
		card.Status,
	).Scan(
		&out.ID,
		&out.StoreID,
		&out.Code,
		&out.InitialBalance,
		&out.Balance,
		&out.Currency,
		&out.Status,
		&out.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, domain.ErrAlreadyExists
			case "23503":
				// store_id references a store that does not exist
				return nil, domain.ErrNotFound
			}
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.GiftCard, error) {
	const q = `
SELECT ` + giftCardColumns + `
FROM gift_cards
WHERE code = $1
`
	return r.scanOne(r.pool.QueryRow(ctx, q, code))
}

func (r *postgresRepo) Redeem(ctx context.Context, code string, amount float64) (*domain.GiftCard, error) {
	const q = `
UPDATE gift_cards
SET balance = balance - $2,
    status = CASE WHEN balance - $2 <= 0 THEN 'redeemed' ELSE status END
WHERE code = $1 AND status = 'active' AND balance >= $2
RETURNING ` + giftCardColumns + `
`
	card, err := r.scanOne(r.pool.QueryRow(ctx, q, code, amount))
	if err == nil {
		return card, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// The conditional update matched nothing; classify why.
	existing, getErr := r.GetByCode(ctx, code)
	if getErr != nil {
		return nil, getErr
	}
	if existing.Status != domain.GiftCardActive {
		return nil, domain.ErrGiftCardInactive
	}
	return nil, domain.ErrInsufficientBalance
}

func (r *postgresRepo) scanOne(row pgx.Row) (*domain.GiftCard, error) {
	var out domain.GiftCard
	if err := row.Scan(
		&out.ID,
		&out.StoreID,
		&out.Code,
		&out.InitialBalance,
		&out.Balance,
		&out.Currency,
		&out.Status,
		&out.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}
