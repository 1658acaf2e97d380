package repository

import (
	"context"
	"fmt"

	"vendorhub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VendorRepository defines methods for accessing vendor data. Every call is
// scoped to one organization.
type VendorRepository interface {
	ListVendors(ctx context.Context, orgID string) ([]model.VendorSummary, error)
	GetVendor(ctx context.Context, orgID, vendorID string) (*model.Vendor, error)
	CreateVendor(ctx context.Context, v *model.Vendor) error
	// UpdateVendor overwrites the editable fields and returns nil when no row matched.
	UpdateVendor(ctx context.Context, v *model.Vendor) (*model.Vendor, error)
	DeleteVendor(ctx context.Context, orgID, vendorID string) (bool, error)
	CountVendors(ctx context.Context, orgID string) (int, error)
}

type vendorRepo struct {
	pool *pgxpool.Pool
}

// NewVendorRepo creates a new VendorRepository.
func NewVendorRepo(pool *pgxpool.Pool) VendorRepository {
	return &vendorRepo{pool: pool}
}

const vendorColumns = `v.id, v.organization_id, v.name, v.website, v.contact_email, v.contact_phone,
        v.category_id, v.status, v.description, v.logo_url, v.created_at, v.updated_at`

func vendorDest(v *model.Vendor) []any {
	return []any{
		&v.ID, &v.OrganizationID, &v.Name, &v.Website, &v.ContactEmail, &v.ContactPhone,
		&v.CategoryID, &v.Status, &v.Description, &v.LogoURL, &v.CreatedAt, &v.UpdatedAt,
	}
}

func (r *vendorRepo) ListVendors(ctx context.Context, orgID string) ([]model.VendorSummary, error) {
	q := `
        SELECT ` + vendorColumns + `,
               COUNT(s.id) AS subscriptions_count,
               COALESCE(SUM(s.cost) FILTER (WHERE s.status = 'active'), 0) AS total_cost
        FROM vendors v
        LEFT JOIN subscriptions s ON s.vendor_id = v.id
        WHERE v.organization_id = $1
        GROUP BY v.id
        ORDER BY v.name`
	rows, err := r.pool.Query(ctx, q, orgID)
	if err != nil {
		return nil, fmt.Errorf("list vendors of %s: %w", orgID, err)
	}
	defer rows.Close()

	var out []model.VendorSummary
	for rows.Next() {
		var vs model.VendorSummary
		dest := append(vendorDest(&vs.Vendor), &vs.SubscriptionsCount, &vs.TotalCost)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		out = append(out, vs)
	}
	return out, rows.Err()
}

func (r *vendorRepo) GetVendor(ctx context.Context, orgID, vendorID string) (*model.Vendor, error) {
	q := `SELECT ` + vendorColumns + ` FROM vendors v WHERE v.organization_id = $1 AND v.id = $2`
	var v model.Vendor
	if err := r.pool.QueryRow(ctx, q, orgID, vendorID).Scan(vendorDest(&v)...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch vendor %s: %w", vendorID, err)
	}
	return &v, nil
}

func (r *vendorRepo) CreateVendor(ctx context.Context, v *model.Vendor) error {
	const q = `
        INSERT INTO vendors (organization_id, name, website, contact_email, contact_phone,
                             category_id, status, description, logo_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q,
		v.OrganizationID, v.Name, v.Website, v.ContactEmail, v.ContactPhone,
		v.CategoryID, v.Status, v.Description, v.LogoURL,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert vendor %s: %w", v.Name, err)
	}
	return nil
}

func (r *vendorRepo) UpdateVendor(ctx context.Context, v *model.Vendor) (*model.Vendor, error) {
	q := `
        UPDATE vendors v
        SET name = $3, website = $4, contact_email = $5, contact_phone = $6,
            category_id = $7, status = $8, description = $9, logo_url = $10, updated_at = now()
        WHERE v.organization_id = $1 AND v.id = $2
        RETURNING ` + vendorColumns
	var out model.Vendor
	err := r.pool.QueryRow(ctx, q,
		v.OrganizationID, v.ID, v.Name, v.Website, v.ContactEmail, v.ContactPhone,
		v.CategoryID, v.Status, v.Description, v.LogoURL,
	).Scan(vendorDest(&out)...)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update vendor %s: %w", v.ID, err)
	}
	return &out, nil
}

func (r *vendorRepo) DeleteVendor(ctx context.Context, orgID, vendorID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vendors WHERE organization_id = $1 AND id = $2`, orgID, vendorID)
	if err != nil {
		return false, fmt.Errorf("delete vendor %s: %w", vendorID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *vendorRepo) CountVendors(ctx context.Context, orgID string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vendors WHERE organization_id = $1`, orgID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vendors of %s: %w", orgID, err)
	}
	return n, nil
}

// CategoryRepository reads and creates the shared vendor categories.
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) error
}

type categoryRepo struct {
	pool *pgxpool.Pool
}

// NewCategoryRepo creates a new CategoryRepository.
func NewCategoryRepo(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepo{pool: pool}
}

func (r *categoryRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, color, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Category, error) {
		var c model.Category
		err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
}

func (r *categoryRepo) CreateCategory(ctx context.Context, c *model.Category) error {
	err := r.pool.QueryRow(ctx, `
        INSERT INTO categories (name, description, color)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`,
		c.Name, c.Description, c.Color,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert category %s: %w", c.Name, err)
	}
	return nil
}
