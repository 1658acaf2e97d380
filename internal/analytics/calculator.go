// Package analytics derives renewal timing, cost normalisation, aggregates
// and filters from subscription records. Everything here is pure.
package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"vendorhub/internal/model"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Urgency classifies how close a renewal is.
type Urgency string

const (
	UrgencyOverdue Urgency = "overdue"
	UrgencyUrgent  Urgency = "urgent"
	UrgencySoon    Urgency = "soon"
	UrgencyNormal  Urgency = "normal"
)

var (
	three  = decimal.NewFromInt(3)
	four   = decimal.NewFromInt(4)
	twelve = decimal.NewFromInt(12)
)

// MonthlyCost normalises a per-period cost to one month.
// Unknown cycles are treated as monthly.
func MonthlyCost(cost decimal.Decimal, cycle model.BillingCycle) decimal.Decimal {
	switch cycle {
	case model.BillingQuarterly:
		return cost.Div(three)
	case model.BillingYearly:
		return cost.Div(twelve)
	default:
		return cost
	}
}

// YearlyCost normalises a per-period cost to one year.
// Unknown cycles are treated as monthly.
func YearlyCost(cost decimal.Decimal, cycle model.BillingCycle) decimal.Decimal {
	switch cycle {
	case model.BillingQuarterly:
		return cost.Mul(four)
	case model.BillingYearly:
		return cost
	default:
		return cost.Mul(twelve)
	}
}

// CostPerSeat divides cost by seats. Missing or non-positive seat counts
// return cost unchanged.
func CostPerSeat(cost decimal.Decimal, seats *int) decimal.Decimal {
	if seats == nil || *seats <= 0 {
		return cost
	}
	return cost.Div(decimal.NewFromInt(int64(*seats)))
}

// DaysUntilRenewal returns the number of calendar days from now to renewal.
// Renewal is taken by its own Y-M-D and now by its Y-M-D in its location.
func DaysUntilRenewal(renewal, now time.Time) int {
	r := time.Date(renewal.Year(), renewal.Month(), renewal.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(r.Sub(n).Hours() / 24)
}

// UrgencyFor maps a day count to an urgency level.
func UrgencyFor(days int) Urgency {
	switch {
	case days < 0:
		return UrgencyOverdue
	case days <= 7:
		return UrgencyUrgent
	case days <= 30:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}

// NextRenewalDate advances start by one billing period. Month overflow
// follows time.AddDate normalisation, so Jan 31 plus a month lands in March.
func NextRenewalDate(start time.Time, cycle model.BillingCycle) time.Time {
	switch cycle {
	case model.BillingQuarterly:
		return start.AddDate(0, 3, 0)
	case model.BillingYearly:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
