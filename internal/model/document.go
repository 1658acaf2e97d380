package model

import "time"

// Document is a file stored for a vendor or subscription.
type Document struct {
	ID             string    `db:"id" json:"id"`
	OrganizationID string    `db:"organization_id" json:"organization_id"`
	VendorID       *string   `db:"vendor_id" json:"vendor_id,omitempty"`
	SubscriptionID *string   `db:"subscription_id" json:"subscription_id,omitempty"`
	Name           string    `db:"name" json:"name"`
	Description    *string   `db:"description" json:"description,omitempty"`
	FilePath       string    `db:"file_path" json:"file_path"`
	FileSize       int64     `db:"file_size" json:"file_size"`
	MimeType       string    `db:"mime_type" json:"mime_type"`
	UploadedBy     string    `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`

	// Joined for listings.
	VendorName   *string `db:"vendor_name" json:"vendor_name,omitempty"`
	UploaderName *string `db:"uploader_name" json:"uploader_name,omitempty"`
}
