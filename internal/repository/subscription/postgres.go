package subscription

import (
	"context"
	"errors"
	"time"

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

func (r *postgresRepo) GetCurrentByUser(ctx context.Context, userID string) (*domain.Subscription, error) {
	const q = `
SELECT id::text, user_id::text, plan_type, status, started_at, expires_at
FROM subscriptions
WHERE user_id = $1
ORDER BY expires_at DESC
LIMIT 1
`
	var sub domain.Subscription
	if err := r.pool.QueryRow(ctx, q, userID).Scan(
		&sub.ID,
		&sub.UserID,
		&sub.PlanType,
		&sub.Status,
		&sub.StartedAt,
		&sub.ExpiresAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *postgresRepo) ExpireIfDue(ctx context.Context, id string, now time.Time) (bool, error) {
	const q = `
UPDATE subscriptions
SET status = 'expired'
WHERE id = $1 AND status = 'active' AND expires_at <= $2
`
	cmd, err := r.pool.Exec(ctx, q, id, now)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
