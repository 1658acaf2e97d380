package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RenewalStatus tracks a logged renewal.
type RenewalStatus string

const (
	RenewalPending   RenewalStatus = "pending"
	RenewalCompleted RenewalStatus = "completed"
	RenewalCancelled RenewalStatus = "cancelled"
)

// Renewal records a price or date change made when a subscription renewed.
type Renewal struct {
	ID                  string          `db:"id" json:"id"`
	SubscriptionID      string          `db:"subscription_id" json:"subscription_id"`
	PreviousCost        decimal.Decimal `db:"previous_cost" json:"previous_cost" swaggertype:"string"`
	NewCost             decimal.Decimal `db:"new_cost" json:"new_cost" swaggertype:"string"`
	PreviousRenewalDate *time.Time      `db:"previous_renewal_date" json:"previous_renewal_date,omitempty"`
	NewRenewalDate      time.Time       `db:"new_renewal_date" json:"new_renewal_date"`
	Status              RenewalStatus   `db:"status" json:"status"`
	Notes               *string         `db:"notes" json:"notes,omitempty"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
}
