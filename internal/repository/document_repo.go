package repository

import (
	"context"
	"fmt"

	"vendorhub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository stores document metadata. File bytes live in object storage.
type DocumentRepository interface {
	// ListDocuments returns the organization's documents, optionally only those of one vendor.
	ListDocuments(ctx context.Context, orgID string, vendorID *string) ([]model.Document, error)
	GetDocument(ctx context.Context, orgID, documentID string) (*model.Document, error)
	CreateDocument(ctx context.Context, d *model.Document) error
	DeleteDocument(ctx context.Context, orgID, documentID string) (bool, error)
}

type documentRepo struct {
	pool *pgxpool.Pool
}

// NewDocumentRepo creates a new DocumentRepository.
func NewDocumentRepo(pool *pgxpool.Pool) DocumentRepository {
	return &documentRepo{pool: pool}
}

const documentSelect = `
        SELECT d.id, d.organization_id, d.vendor_id, d.subscription_id, d.name, d.description,
               d.file_path, d.file_size, d.mime_type, d.uploaded_by, d.created_at,
               v.name AS vendor_name, p.full_name AS uploader_name
        FROM documents d
        LEFT JOIN vendors v ON v.id = d.vendor_id
        LEFT JOIN profiles p ON p.id = d.uploaded_by`

func scanDocument(row pgx.Row) (*model.Document, error) {
	var d model.Document
	err := row.Scan(
		&d.ID, &d.OrganizationID, &d.VendorID, &d.SubscriptionID, &d.Name, &d.Description,
		&d.FilePath, &d.FileSize, &d.MimeType, &d.UploadedBy, &d.CreatedAt,
		&d.VendorName, &d.UploaderName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepo) ListDocuments(ctx context.Context, orgID string, vendorID *string) ([]model.Document, error) {
	q := documentSelect + ` WHERE d.organization_id = $1 AND ($2::uuid IS NULL OR d.vendor_id = $2) ORDER BY d.created_at DESC`
	rows, err := r.pool.Query(ctx, q, orgID, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list documents of %s: %w", orgID, err)
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

func (r *documentRepo) GetDocument(ctx context.Context, orgID, documentID string) (*model.Document, error) {
	d, err := scanDocument(r.pool.QueryRow(ctx, documentSelect+` WHERE d.organization_id = $1 AND d.id = $2`, orgID, documentID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch document %s: %w", documentID, err)
	}
	return d, nil
}

func (r *documentRepo) CreateDocument(ctx context.Context, d *model.Document) error {
	const q = `
        INSERT INTO documents (organization_id, vendor_id, subscription_id, name, description,
                               file_path, file_size, mime_type, uploaded_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q,
		d.OrganizationID, d.VendorID, d.SubscriptionID, d.Name, d.Description,
		d.FilePath, d.FileSize, d.MimeType, d.UploadedBy,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert document %s: %w", d.Name, err)
	}
	return nil
}

func (r *documentRepo) DeleteDocument(ctx context.Context, orgID, documentID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE organization_id = $1 AND id = $2`, orgID, documentID)
	if err != nil {
		return false, fmt.Errorf("delete document %s: %w", documentID, err)
	}
	return tag.RowsAffected() > 0, nil
}
