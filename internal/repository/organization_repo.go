package repository

import (
	"context"
	"fmt"

	"vendorhub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrganizationRepository covers tenants and their member profiles.
type OrganizationRepository interface {
	// EnsureProfile returns the caller's profile, creating an unassigned one on first sight.
	EnsureProfile(ctx context.Context, userID, email string) (*model.Profile, error)
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	// InitializeOrganization creates an organization and makes userID its owner.
	InitializeOrganization(ctx context.Context, userID, name string, description *string) (*model.Organization, error)
	GetOrganization(ctx context.Context, orgID string) (*model.Organization, error)
	ListOrganizations(ctx context.Context) ([]model.Organization, error)
	ListMembers(ctx context.Context, orgID string) ([]model.Profile, error)
	UpdateMemberRole(ctx context.Context, orgID, profileID string, role model.Role) (*model.Profile, error)
}

type organizationRepo struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepo creates a new OrganizationRepository.
func NewOrganizationRepo(pool *pgxpool.Pool) OrganizationRepository {
	return &organizationRepo{pool: pool}
}

const profileColumns = `id, email, full_name, avatar_url, organization_id, role, created_at, updated_at`

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var p model.Profile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.OrganizationID, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *organizationRepo) EnsureProfile(ctx context.Context, userID, email string) (*model.Profile, error) {
	q := `
        INSERT INTO profiles (id, email, role)
        VALUES ($1, $2, 'member')
        ON CONFLICT (id) DO UPDATE SET email = profiles.email
        RETURNING ` + profileColumns
	p, err := scanProfile(r.pool.QueryRow(ctx, q, userID, email))
	if err != nil {
		return nil, fmt.Errorf("ensure profile %s: %w", userID, err)
	}
	return p, nil
}

func (r *organizationRepo) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := scanProfile(r.pool.QueryRow(ctx, q, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch profile %s: %w", userID, err)
	}
	return p, nil
}

func (r *organizationRepo) InitializeOrganization(ctx context.Context, userID, name string, description *string) (*model.Organization, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin initialize organization: %w", err)
	}
	defer tx.Rollback(ctx)

	var org model.Organization
	err = tx.QueryRow(ctx, `
        INSERT INTO organizations (name, description)
        VALUES ($1, $2)
        RETURNING id, name, description, created_at, updated_at`,
		name, description,
	).Scan(&org.ID, &org.Name, &org.Description, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert organization: %w", err)
	}

	tag, err := tx.Exec(ctx, `
        UPDATE profiles
        SET organization_id = $1, role = 'owner', updated_at = now()
        WHERE id = $2`,
		org.ID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("assign owner %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("assign owner %s: profile not found", userID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit initialize organization: %w", err)
	}
	return &org, nil
}

func (r *organizationRepo) GetOrganization(ctx context.Context, orgID string) (*model.Organization, error) {
	var org model.Organization
	err := r.pool.QueryRow(ctx, `
        SELECT id, name, description, created_at, updated_at
        FROM organizations WHERE id = $1`, orgID,
	).Scan(&org.ID, &org.Name, &org.Description, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch organization %s: %w", orgID, err)
	}
	return &org, nil
}

func (r *organizationRepo) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM organizations ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []model.Organization
	for rows.Next() {
		var org model.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.Description, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

func (r *organizationRepo) ListMembers(ctx context.Context, orgID string) ([]model.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles WHERE organization_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, q, orgID)
	if err != nil {
		return nil, fmt.Errorf("list members of %s: %w", orgID, err)
	}
	defer rows.Close()

	var members []model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *p)
	}
	return members, rows.Err()
}

func (r *organizationRepo) UpdateMemberRole(ctx context.Context, orgID, profileID string, role model.Role) (*model.Profile, error) {
	q := `
        UPDATE profiles SET role = $3, updated_at = now()
        WHERE id = $2 AND organization_id = $1
        RETURNING ` + profileColumns
	p, err := scanProfile(r.pool.QueryRow(ctx, q, orgID, profileID, role))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update role of %s: %w", profileID, err)
	}
	return p, nil
}
