package analytics

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"vendorhub/internal/model"
)

// RenewalPeriod is a named window of strictly future renewals.
type RenewalPeriod string

const (
	Next7Days   RenewalPeriod = "next_7_days"
	Next30Days  RenewalPeriod = "next_30_days"
	Next60Days  RenewalPeriod = "next_60_days"
	Next90Days  RenewalPeriod = "next_90_days"
	Next365Days RenewalPeriod = "next_365_days"
)

// RenewalPeriods lists every accepted renewal_period value.
var RenewalPeriods = []RenewalPeriod{Next7Days, Next30Days, Next60Days, Next90Days, Next365Days}

var periodDays = map[RenewalPeriod]int{
	Next7Days:   7,
	Next30Days:  30,
	Next60Days:  60,
	Next90Days:  90,
	Next365Days: 365,
}

// Days returns the window length and whether p is known.
func (p RenewalPeriod) Days() (int, bool) {
	d, ok := periodDays[p]
	return d, ok
}

// CostRange bounds monthly cost. Both ends are optional and inclusive.
type CostRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// Filters are optional predicates combined with AND. A nil field does not
// constrain.
type Filters struct {
	Vendor        *string
	Team          *string
	Status        *model.SubscriptionStatus
	BillingCycle  *model.BillingCycle
	RenewalPeriod *RenewalPeriod
	CostRange     *CostRange
}

// IsEmpty reports whether f has no active predicate.
func (f Filters) IsEmpty() bool {
	return f == Filters{}
}

// Match reports whether s passes every set predicate.
func (f Filters) Match(s EnhancedSubscription) bool {
	if f.Vendor != nil && (s.VendorName == nil || *s.VendorName != *f.Vendor) {
		return false
	}
	if f.Team != nil && (s.Team == nil || *s.Team != *f.Team) {
		return false
	}
	if f.Status != nil && s.Status != *f.Status {
		return false
	}
	if f.BillingCycle != nil && s.BillingCycle != *f.BillingCycle {
		return false
	}
	if f.RenewalPeriod != nil {
		days, ok := f.RenewalPeriod.Days()
		if !ok || !within(s.DaysUntilRenewal, days) {
			return false
		}
	}
	if f.CostRange != nil {
		if f.CostRange.Min != nil && s.MonthlyCost.LessThan(*f.CostRange.Min) {
			return false
		}
		if f.CostRange.Max != nil && s.MonthlyCost.GreaterThan(*f.CostRange.Max) {
			return false
		}
	}
	return true
}

// Apply returns the subscriptions matching f, preserving order.
// An empty filter returns subs unchanged.
func Apply(subs []EnhancedSubscription, f Filters) []EnhancedSubscription {
	if f.IsEmpty() {
		return subs
	}
	out := make([]EnhancedSubscription, 0, len(subs))
	for _, s := range subs {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// ParseFilters reads filters from query parameters: vendor, team, status,
// billing_cycle, renewal_period, min_cost and max_cost.
func ParseFilters(q url.Values) (Filters, error) {
	var f Filters
	if v := strings.TrimSpace(q.Get("vendor")); v != "" {
		f.Vendor = &v
	}
	if v := strings.TrimSpace(q.Get("team")); v != "" {
		f.Team = &v
	}
	if v := q.Get("status"); v != "" {
		s := model.SubscriptionStatus(v)
		if !s.Valid() {
			return Filters{}, fmt.Errorf("unknown status %q", v)
		}
		f.Status = &s
	}
	if v := q.Get("billing_cycle"); v != "" {
		c := model.BillingCycle(v)
		if !c.Valid() {
			return Filters{}, fmt.Errorf("unknown billing_cycle %q", v)
		}
		f.BillingCycle = &c
	}
	if v := q.Get("renewal_period"); v != "" {
		p := RenewalPeriod(v)
		if _, ok := p.Days(); !ok {
			return Filters{}, fmt.Errorf("unknown renewal_period %q", v)
		}
		f.RenewalPeriod = &p
	}

	var cr CostRange
	for _, b := range []struct {
		key string
		dst **decimal.Decimal
	}{{"min_cost", &cr.Min}, {"max_cost", &cr.Max}} {
		v := q.Get(b.key)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return Filters{}, fmt.Errorf("invalid %s %q: %w", b.key, v, err)
		}
		*b.dst = &d
	}
	if cr.Min != nil || cr.Max != nil {
		f.CostRange = &cr
	}
	return f, nil
}
