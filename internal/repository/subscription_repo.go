package repository

import (
	"context"
	"fmt"
	"strings"

	"vendorhub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubscriptionRepository defines methods for accessing subscription data.
// Reads join the vendor name and status. Every call is scoped to one
// organization.
type SubscriptionRepository interface {
	ListSubscriptions(ctx context.Context, orgID string) ([]model.Subscription, error)
	ListSubscriptionsByVendor(ctx context.Context, orgID, vendorID string) ([]model.Subscription, error)
	GetSubscription(ctx context.Context, orgID, subscriptionID string) (*model.Subscription, error)
	CreateSubscription(ctx context.Context, s *model.Subscription) error
	// UpdateSubscription applies patch and returns the updated row, or nil when no row matched.
	UpdateSubscription(ctx context.Context, orgID, subscriptionID string, patch model.SubscriptionPatch) (*model.Subscription, error)
	// BulkUpdateSubscriptions applies patch to every listed subscription in one statement.
	BulkUpdateSubscriptions(ctx context.Context, orgID string, ids []string, patch model.SubscriptionPatch) (int64, error)
	DeleteSubscription(ctx context.Context, orgID, subscriptionID string) (bool, error)
	CountSubscriptionsByVendor(ctx context.Context, orgID, vendorID string) (int, error)
}

type subscriptionRepo struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepo creates a new SubscriptionRepository.
func NewSubscriptionRepo(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepo{pool: pool}
}

const subscriptionSelect = `
        SELECT s.id, s.organization_id, s.vendor_id, s.name, s.description, s.cost, s.billing_cycle,
               s.currency, s.start_date, s.next_renewal_date, s.status, s.user_seats, s.auto_renew,
               s.team, s.internal_contact, s.contract_url, s.created_at, s.updated_at,
               v.name AS vendor_name, v.status AS vendor_status
        FROM subscriptions s
        LEFT JOIN vendors v ON v.id = s.vendor_id`

func scanSubscription(row pgx.Row) (*model.Subscription, error) {
	var s model.Subscription
	err := row.Scan(
		&s.ID, &s.OrganizationID, &s.VendorID, &s.Name, &s.Description, &s.Cost, &s.BillingCycle,
		&s.Currency, &s.StartDate, &s.NextRenewalDate, &s.Status, &s.UserSeats, &s.AutoRenew,
		&s.Team, &s.InternalContact, &s.ContractURL, &s.CreatedAt, &s.UpdatedAt,
		&s.VendorName, &s.VendorStatus,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subscriptionRepo) list(ctx context.Context, where string, args ...any) ([]model.Subscription, error) {
	rows, err := r.pool.Query(ctx, subscriptionSelect+" WHERE "+where+" ORDER BY s.created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, *s)
	}
	return subs, rows.Err()
}

func (r *subscriptionRepo) ListSubscriptions(ctx context.Context, orgID string) ([]model.Subscription, error) {
	subs, err := r.list(ctx, "s.organization_id = $1", orgID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions of %s: %w", orgID, err)
	}
	return subs, nil
}

func (r *subscriptionRepo) ListSubscriptionsByVendor(ctx context.Context, orgID, vendorID string) ([]model.Subscription, error) {
	subs, err := r.list(ctx, "s.organization_id = $1 AND s.vendor_id = $2", orgID, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions of vendor %s: %w", vendorID, err)
	}
	return subs, nil
}

func (r *subscriptionRepo) GetSubscription(ctx context.Context, orgID, subscriptionID string) (*model.Subscription, error) {
	q := subscriptionSelect + ` WHERE s.organization_id = $1 AND s.id = $2`
	s, err := scanSubscription(r.pool.QueryRow(ctx, q, orgID, subscriptionID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch subscription %s: %w", subscriptionID, err)
	}
	return s, nil
}

func (r *subscriptionRepo) CreateSubscription(ctx context.Context, s *model.Subscription) error {
	const q = `
        INSERT INTO subscriptions (organization_id, vendor_id, name, description, cost, billing_cycle,
                                   currency, start_date, next_renewal_date, status, user_seats,
                                   auto_renew, team, internal_contact, contract_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q,
		s.OrganizationID, s.VendorID, s.Name, s.Description, s.Cost, s.BillingCycle,
		s.Currency, s.StartDate, s.NextRenewalDate, s.Status, s.UserSeats,
		s.AutoRenew, s.Team, s.InternalContact, s.ContractURL,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert subscription %s: %w", s.Name, err)
	}
	return nil
}

// patchAssignments renders the SET list for p, numbering placeholders from next.
func patchAssignments(p model.SubscriptionPatch, next int) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, next))
		args = append(args, v)
		next++
	}
	if p.VendorID != nil {
		add("vendor_id", *p.VendorID)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Cost != nil {
		add("cost", *p.Cost)
	}
	if p.BillingCycle != nil {
		add("billing_cycle", *p.BillingCycle)
	}
	if p.Currency != nil {
		add("currency", *p.Currency)
	}
	if p.StartDate != nil {
		add("start_date", *p.StartDate)
	}
	if p.NextRenewalDate != nil {
		add("next_renewal_date", *p.NextRenewalDate)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.UserSeats != nil {
		add("user_seats", *p.UserSeats)
	}
	if p.AutoRenew != nil {
		add("auto_renew", *p.AutoRenew)
	}
	if p.Team != nil {
		add("team", *p.Team)
	}
	if p.InternalContact != nil {
		add("internal_contact", *p.InternalContact)
	}
	if p.ContractURL != nil {
		add("contract_url", *p.ContractURL)
	}
	sets = append(sets, "updated_at = now()")
	return sets, args
}

func (r *subscriptionRepo) UpdateSubscription(ctx context.Context, orgID, subscriptionID string, patch model.SubscriptionPatch) (*model.Subscription, error) {
	sets, args := patchAssignments(patch, 3)
	q := `UPDATE subscriptions SET ` + strings.Join(sets, ", ") + ` WHERE organization_id = $1 AND id = $2`
	tag, err := r.pool.Exec(ctx, q, append([]any{orgID, subscriptionID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("update subscription %s: %w", subscriptionID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetSubscription(ctx, orgID, subscriptionID)
}

func (r *subscriptionRepo) BulkUpdateSubscriptions(ctx context.Context, orgID string, ids []string, patch model.SubscriptionPatch) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	sets, args := patchAssignments(patch, 3)
	q := `UPDATE subscriptions SET ` + strings.Join(sets, ", ") + ` WHERE organization_id = $1 AND id = ANY($2)`
	tag, err := r.pool.Exec(ctx, q, append([]any{orgID, ids}, args...)...)
	if err != nil {
		return 0, fmt.Errorf("bulk update %d subscriptions: %w", len(ids), err)
	}
	return tag.RowsAffected(), nil
}

func (r *subscriptionRepo) DeleteSubscription(ctx context.Context, orgID, subscriptionID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subscriptions WHERE organization_id = $1 AND id = $2`, orgID, subscriptionID)
	if err != nil {
		return false, fmt.Errorf("delete subscription %s: %w", subscriptionID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *subscriptionRepo) CountSubscriptionsByVendor(ctx context.Context, orgID, vendorID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE organization_id = $1 AND vendor_id = $2`,
		orgID, vendorID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count subscriptions of vendor %s: %w", vendorID, err)
	}
	return n, nil
}
