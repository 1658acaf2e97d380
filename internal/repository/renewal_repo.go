package repository

import (
	"context"
	"fmt"

	"vendorhub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RenewalRepository keeps the renewal history of subscriptions.
type RenewalRepository interface {
	CreateRenewal(ctx context.Context, rn *model.Renewal) error
	ListRenewals(ctx context.Context, subscriptionID string) ([]model.Renewal, error)
}

type renewalRepo struct {
	pool *pgxpool.Pool
}

// NewRenewalRepo creates a new RenewalRepository.
func NewRenewalRepo(pool *pgxpool.Pool) RenewalRepository {
	return &renewalRepo{pool: pool}
}

func (r *renewalRepo) CreateRenewal(ctx context.Context, rn *model.Renewal) error {
	const q = `
        INSERT INTO renewals (subscription_id, previous_cost, new_cost, previous_renewal_date,
                              new_renewal_date, status, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q,
		rn.SubscriptionID, rn.PreviousCost, rn.NewCost, rn.PreviousRenewalDate,
		rn.NewRenewalDate, rn.Status, rn.Notes,
	).Scan(&rn.ID, &rn.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert renewal for %s: %w", rn.SubscriptionID, err)
	}
	return nil
}

func (r *renewalRepo) ListRenewals(ctx context.Context, subscriptionID string) ([]model.Renewal, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, subscription_id, previous_cost, new_cost, previous_renewal_date,
               new_renewal_date, status, notes, created_at
        FROM renewals WHERE subscription_id = $1
        ORDER BY created_at DESC`, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("list renewals of %s: %w", subscriptionID, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Renewal, error) {
		var rn model.Renewal
		err := row.Scan(&rn.ID, &rn.SubscriptionID, &rn.PreviousCost, &rn.NewCost, &rn.PreviousRenewalDate,
			&rn.NewRenewalDate, &rn.Status, &rn.Notes, &rn.CreatedAt)
		return rn, err
	})
}
