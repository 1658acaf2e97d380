package repository

import (
	"context"
	"fmt"

	"vendorhub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityRepository persists the organization activity feed.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, a *model.ActivityLog) error
	ListActivity(ctx context.Context, orgID string, limit int) ([]model.ActivityLog, error)
}

type activityRepo struct {
	pool *pgxpool.Pool
}

// NewActivityRepo creates a new ActivityRepository.
func NewActivityRepo(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepo{pool: pool}
}

func (r *activityRepo) CreateActivity(ctx context.Context, a *model.ActivityLog) error {
	const q = `
        INSERT INTO activity_logs (organization_id, user_id, action, resource_type, resource_id, details)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, a.OrganizationID, a.UserID, a.Action, a.ResourceType, a.ResourceID, a.Details).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity %s: %w", a.Action, err)
	}
	return nil
}

func (r *activityRepo) ListActivity(ctx context.Context, orgID string, limit int) ([]model.ActivityLog, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, organization_id, user_id, action, resource_type, resource_id, details, created_at
        FROM activity_logs WHERE organization_id = $1
        ORDER BY created_at DESC
        LIMIT $2`, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity of %s: %w", orgID, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ActivityLog, error) {
		var a model.ActivityLog
		err := row.Scan(&a.ID, &a.OrganizationID, &a.UserID, &a.Action, &a.ResourceType, &a.ResourceID, &a.Details, &a.CreatedAt)
		return a, err
	})
}
