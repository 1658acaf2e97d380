package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"vendorhub/internal/model"
)

// AlertWindowDays is the horizon for renewal alerts.
const AlertWindowDays = 30

// UpcomingRenewals counts strictly future renewals within each horizon.
type UpcomingRenewals struct {
	Next7Days  int `json:"next_7_days"`
	Next30Days int `json:"next_30_days"`
	Next90Days int `json:"next_90_days"`
}

// SubscriptionStats summarises a set of subscriptions.
type SubscriptionStats struct {
	TotalSubscriptions         int                              `json:"total_subscriptions"`
	ActiveSubscriptions        int                              `json:"active_subscriptions"`
	TotalMonthlyCost           decimal.Decimal                  `json:"total_monthly_cost" swaggertype:"string"`
	TotalYearlyCost            decimal.Decimal                  `json:"total_yearly_cost" swaggertype:"string"`
	AverageCostPerSubscription decimal.Decimal                  `json:"average_cost_per_subscription" swaggertype:"string"`
	ByStatus                   map[model.SubscriptionStatus]int `json:"subscriptions_by_status"`
	ByBillingCycle             map[model.BillingCycle]int       `json:"subscriptions_by_billing_cycle"`
	UpcomingRenewals           UpcomingRenewals                 `json:"upcoming_renewals"`
	CostByTeam                 map[string]decimal.Decimal       `json:"cost_by_team" swaggertype:"object,string"`
	CostByVendor               map[string]decimal.Decimal       `json:"cost_by_vendor" swaggertype:"object,string"`
}

// RenewalAlert flags a subscription renewing within the alert window or overdue.
type RenewalAlert struct {
	SubscriptionID   string          `json:"subscription_id"`
	SubscriptionName string          `json:"subscription_name"`
	VendorName       string          `json:"vendor_name"`
	Cost             decimal.Decimal `json:"cost" swaggertype:"string"`
	Currency         string          `json:"currency"`
	RenewalDate      time.Time       `json:"renewal_date"`
	DaysUntilRenewal int             `json:"days_until_renewal"`
	Urgency          Urgency         `json:"urgency"`
	AutoRenew        bool            `json:"auto_renew"`
}

// CostBreakdown slices active spending by period and grouping.
// Quarterly and Yearly are raw costs of subscriptions billed on that cycle.
type CostBreakdown struct {
	Monthly        decimal.Decimal                        `json:"monthly" swaggertype:"string"`
	Quarterly      decimal.Decimal                        `json:"quarterly" swaggertype:"string"`
	Yearly         decimal.Decimal                        `json:"yearly" swaggertype:"string"`
	TotalAnnual    decimal.Decimal                        `json:"total_annual" swaggertype:"string"`
	ByTeam         map[string]decimal.Decimal             `json:"by_team" swaggertype:"object,string"`
	ByVendor       map[string]decimal.Decimal             `json:"by_vendor" swaggertype:"object,string"`
	ByBillingCycle map[model.BillingCycle]decimal.Decimal `json:"by_billing_cycle" swaggertype:"object,string"`
}

func within(days *int, horizon int) bool {
	return days != nil && *days > 0 && *days <= horizon
}

// Stats reduces subs to summary statistics. Costs and groupings consider
// active subscriptions only; counts consider all.
func Stats(subs []EnhancedSubscription) SubscriptionStats {
	st := SubscriptionStats{
		TotalSubscriptions: len(subs),
		ByStatus:           make(map[model.SubscriptionStatus]int, len(model.SubscriptionStatuses)),
		ByBillingCycle:     make(map[model.BillingCycle]int, len(model.BillingCycles)),
		CostByTeam:         map[string]decimal.Decimal{},
		CostByVendor:       map[string]decimal.Decimal{},
	}
	for _, s := range model.SubscriptionStatuses {
		st.ByStatus[s] = 0
	}
	for _, c := range model.BillingCycles {
		st.ByBillingCycle[c] = 0
	}

	for _, s := range subs {
		st.ByStatus[s.Status]++
		st.ByBillingCycle[s.BillingCycle]++

		if within(s.DaysUntilRenewal, 7) {
			st.UpcomingRenewals.Next7Days++
		}
		if within(s.DaysUntilRenewal, 30) {
			st.UpcomingRenewals.Next30Days++
		}
		if within(s.DaysUntilRenewal, 90) {
			st.UpcomingRenewals.Next90Days++
		}

		if s.Status != model.StatusActive {
			continue
		}
		st.ActiveSubscriptions++
		st.TotalMonthlyCost = st.TotalMonthlyCost.Add(s.MonthlyCost)
		st.TotalYearlyCost = st.TotalYearlyCost.Add(s.YearlyCost)
		team, vendor := s.TeamLabel(), s.VendorLabel()
		st.CostByTeam[team] = st.CostByTeam[team].Add(s.MonthlyCost)
		st.CostByVendor[vendor] = st.CostByVendor[vendor].Add(s.MonthlyCost)
	}

	if st.ActiveSubscriptions > 0 {
		st.AverageCostPerSubscription = st.TotalMonthlyCost.Div(decimal.NewFromInt(int64(st.ActiveSubscriptions)))
	}
	return st
}

// RenewalAlerts returns alerts for subscriptions renewing within
// AlertWindowDays, overdue included, most urgent first.
func RenewalAlerts(subs []EnhancedSubscription) []RenewalAlert {
	alerts := make([]RenewalAlert, 0)
	for _, s := range subs {
		if s.NextRenewalDate == nil || s.DaysUntilRenewal == nil || *s.DaysUntilRenewal > AlertWindowDays {
			continue
		}
		alerts = append(alerts, RenewalAlert{
			SubscriptionID:   s.ID,
			SubscriptionName: s.Name,
			VendorName:       s.VendorLabel(),
			Cost:             s.Cost,
			Currency:         s.Currency,
			RenewalDate:      *s.NextRenewalDate,
			DaysUntilRenewal: *s.DaysUntilRenewal,
			Urgency:          s.RenewalUrgency,
			AutoRenew:        s.AutoRenew != nil && *s.AutoRenew,
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].DaysUntilRenewal < alerts[j].DaysUntilRenewal
	})
	return alerts
}

// Breakdown computes the cost breakdown over active subscriptions.
func Breakdown(subs []EnhancedSubscription) CostBreakdown {
	b := CostBreakdown{
		ByTeam:         map[string]decimal.Decimal{},
		ByVendor:       map[string]decimal.Decimal{},
		ByBillingCycle: make(map[model.BillingCycle]decimal.Decimal, len(model.BillingCycles)),
	}
	for _, c := range model.BillingCycles {
		b.ByBillingCycle[c] = decimal.Zero
	}

	for _, s := range subs {
		if s.Status != model.StatusActive {
			continue
		}
		b.Monthly = b.Monthly.Add(s.MonthlyCost)
		b.TotalAnnual = b.TotalAnnual.Add(s.YearlyCost)
		switch s.BillingCycle {
		case model.BillingQuarterly:
			b.Quarterly = b.Quarterly.Add(s.Cost)
		case model.BillingYearly:
			b.Yearly = b.Yearly.Add(s.Cost)
		}
		team, vendor := s.TeamLabel(), s.VendorLabel()
		b.ByTeam[team] = b.ByTeam[team].Add(s.MonthlyCost)
		b.ByVendor[vendor] = b.ByVendor[vendor].Add(s.MonthlyCost)
		b.ByBillingCycle[s.BillingCycle] = b.ByBillingCycle[s.BillingCycle].Add(s.MonthlyCost)
	}
	return b
}
