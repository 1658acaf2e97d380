package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingCycle is how often a subscription is charged.
type BillingCycle string

const (
	BillingMonthly   BillingCycle = "monthly"
	BillingQuarterly BillingCycle = "quarterly"
	BillingYearly    BillingCycle = "yearly"
)

// BillingCycles lists every cycle in display order.
var BillingCycles = []BillingCycle{BillingMonthly, BillingQuarterly, BillingYearly}

// Valid reports whether c is a known billing cycle.
func (c BillingCycle) Valid() bool {
	switch c {
	case BillingMonthly, BillingQuarterly, BillingYearly:
		return true
	}
	return false
}

// SubscriptionStatus is the lifecycle state of a subscription.
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusInactive  SubscriptionStatus = "inactive"
	StatusTrial     SubscriptionStatus = "trial"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

// SubscriptionStatuses lists every status in display order.
var SubscriptionStatuses = []SubscriptionStatus{StatusActive, StatusInactive, StatusTrial, StatusCancelled, StatusExpired}

// Valid reports whether s is a known subscription status.
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusTrial, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// Subscription is a paid plan with a vendor.
type Subscription struct {
	ID              string             `db:"id" json:"id"`
	OrganizationID  string             `db:"organization_id" json:"organization_id"`
	VendorID        string             `db:"vendor_id" json:"vendor_id"`
	Name            string             `db:"name" json:"name"`
	Description     *string            `db:"description" json:"description,omitempty"`
	Cost            decimal.Decimal    `db:"cost" json:"cost" swaggertype:"string"`
	BillingCycle    BillingCycle       `db:"billing_cycle" json:"billing_cycle"`
	Currency        string             `db:"currency" json:"currency"`
	StartDate       time.Time          `db:"start_date" json:"start_date"`
	NextRenewalDate *time.Time         `db:"next_renewal_date" json:"next_renewal_date,omitempty"`
	Status          SubscriptionStatus `db:"status" json:"status"`
	UserSeats       *int               `db:"user_seats" json:"user_seats,omitempty"`
	AutoRenew       *bool              `db:"auto_renew" json:"auto_renew,omitempty"`
	Team            *string            `db:"team" json:"team,omitempty"`
	InternalContact *string            `db:"internal_contact" json:"internal_contact,omitempty"`
	ContractURL     *string            `db:"contract_url" json:"contract_url,omitempty"`
	CreatedAt       time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `db:"updated_at" json:"updated_at"`

	// Joined from vendors.
	VendorName   *string `db:"vendor_name" json:"vendor_name,omitempty"`
	VendorStatus *string `db:"vendor_status" json:"vendor_status,omitempty"`
}

// SubscriptionPatch carries a partial update. Nil fields are left unchanged.
type SubscriptionPatch struct {
	VendorID        *string
	Name            *string
	Description     *string
	Cost            *decimal.Decimal
	BillingCycle    *BillingCycle
	Currency        *string
	StartDate       *time.Time
	NextRenewalDate *time.Time
	Status          *SubscriptionStatus
	UserSeats       *int
	AutoRenew       *bool
	Team            *string
	InternalContact *string
	ContractURL     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p SubscriptionPatch) IsEmpty() bool {
	return p == SubscriptionPatch{}
}

// Apply copies the set fields of p onto s.
func (p SubscriptionPatch) Apply(s *Subscription) {
	if p.VendorID != nil {
		s.VendorID = *p.VendorID
	}
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = p.Description
	}
	if p.Cost != nil {
		s.Cost = *p.Cost
	}
	if p.BillingCycle != nil {
		s.BillingCycle = *p.BillingCycle
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.StartDate != nil {
		s.StartDate = *p.StartDate
	}
	if p.NextRenewalDate != nil {
		d := *p.NextRenewalDate
		s.NextRenewalDate = &d
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.UserSeats != nil {
		s.UserSeats = p.UserSeats
	}
	if p.AutoRenew != nil {
		s.AutoRenew = p.AutoRenew
	}
	if p.Team != nil {
		s.Team = p.Team
	}
	if p.InternalContact != nil {
		s.InternalContact = p.InternalContact
	}
	if p.ContractURL != nil {
		s.ContractURL = p.ContractURL
	}
}
