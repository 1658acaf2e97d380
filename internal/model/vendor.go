package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// VendorStatus is the relationship state with a vendor.
type VendorStatus string

const (
	VendorActive   VendorStatus = "active"
	VendorInactive VendorStatus = "inactive"
	VendorTrial    VendorStatus = "trial"
)

// Valid reports whether s is a known vendor status.
func (s VendorStatus) Valid() bool {
	switch s {
	case VendorActive, VendorInactive, VendorTrial:
		return true
	}
	return false
}

// Vendor is an external software or service provider.
type Vendor struct {
	ID             string       `db:"id" json:"id"`
	OrganizationID string       `db:"organization_id" json:"organization_id"`
	Name           string       `db:"name" json:"name"`
	Website        *string      `db:"website" json:"website,omitempty"`
	ContactEmail   *string      `db:"contact_email" json:"contact_email,omitempty"`
	ContactPhone   *string      `db:"contact_phone" json:"contact_phone,omitempty"`
	CategoryID     *string      `db:"category_id" json:"category_id,omitempty"`
	Status         VendorStatus `db:"status" json:"status"`
	Description    *string      `db:"description" json:"description,omitempty"`
	LogoURL        *string      `db:"logo_url" json:"logo_url,omitempty"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updated_at"`
}

// VendorSummary is a vendor with counts derived from its subscriptions.
// TotalCost sums the raw per-period cost of active subscriptions.
type VendorSummary struct {
	Vendor
	SubscriptionsCount int             `json:"subscriptions_count"`
	TotalCost          decimal.Decimal `json:"total_cost" swaggertype:"string"`
}

// Category groups vendors for display.
type Category struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Color       *string   `db:"color" json:"color,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
