package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"vendorhub/internal/model"
)

// EnhancedSubscription is a subscription with derived cost and renewal data.
// It is never persisted.
type EnhancedSubscription struct {
	model.Subscription
	DaysUntilRenewal *int            `json:"days_until_renewal"`
	MonthlyCost      decimal.Decimal `json:"monthly_cost"`
	YearlyCost       decimal.Decimal `json:"yearly_cost"`
	CostPerSeat      decimal.Decimal `json:"cost_per_seat"`
	RenewalUrgency   Urgency         `json:"renewal_urgency"`
}

// VendorLabel returns the joined vendor name or "Unknown".
func (e EnhancedSubscription) VendorLabel() string {
	if e.VendorName == nil || *e.VendorName == "" {
		return "Unknown"
	}
	return *e.VendorName
}

// TeamLabel returns the team or "Unassigned".
func (e EnhancedSubscription) TeamLabel() string {
	if e.Team == nil || *e.Team == "" {
		return "Unassigned"
	}
	return *e.Team
}

// EnhanceOne derives the computed fields for s relative to now.
// A subscription without a renewal date has no day count and normal urgency.
func EnhanceOne(s model.Subscription, now time.Time) EnhancedSubscription {
	e := EnhancedSubscription{
		Subscription:   s,
		MonthlyCost:    MonthlyCost(s.Cost, s.BillingCycle),
		YearlyCost:     YearlyCost(s.Cost, s.BillingCycle),
		CostPerSeat:    CostPerSeat(s.Cost, s.UserSeats),
		RenewalUrgency: UrgencyNormal,
	}
	if s.NextRenewalDate != nil {
		days := DaysUntilRenewal(*s.NextRenewalDate, now)
		e.DaysUntilRenewal = &days
		e.RenewalUrgency = UrgencyFor(days)
	}
	return e
}

// Enhance derives computed fields for every subscription, preserving order.
func Enhance(subs []model.Subscription, now time.Time) []EnhancedSubscription {
	out := make([]EnhancedSubscription, 0, len(subs))
	for _, s := range subs {
		out = append(out, EnhanceOne(s, now))
	}
	return out
}
