package analytics

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorhub/internal/model"
)

func ids(subs []EnhancedSubscription) []string {
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.ID)
	}
	return out
}

func filterFixture() []EnhancedSubscription {
	return Enhance([]model.Subscription{
		newSub("a", "30", model.BillingMonthly, withVendor("Slack"), withTeam("Sales"), renewsIn(5)),
		newSub("b", "120", model.BillingQuarterly, withVendor("GitHub"), withTeam("Engineering"), renewsIn(45)),
		newSub("c", "600", model.BillingYearly, withVendor("GitHub"), renewsIn(200)),
		newSub("d", "10", model.BillingMonthly, withVendor("Figma"), withStatus(model.StatusTrial), renewsIn(-1)),
		newSub("e", "55", model.BillingMonthly, withVendor("Slack"), withTeam("Sales")),
	}, refNow)
}

func TestApplyEmptyFilter(t *testing.T) {
	subs := filterFixture()
	assert.Equal(t, subs, Apply(subs, Filters{}))
}

func TestApplyStatusAndCostRange(t *testing.T) {
	active := model.StatusActive
	lo, hi := decimal.NewFromInt(10), decimal.NewFromInt(50)
	got := Apply(filterFixture(), Filters{Status: &active, CostRange: &CostRange{Min: &lo, Max: &hi}})
	// b is 40/month, c is 50/month (inclusive), d is trial, e is 55.
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
	for _, s := range got {
		assert.Equal(t, model.StatusActive, s.Status)
		assert.True(t, s.MonthlyCost.GreaterThanOrEqual(lo) && s.MonthlyCost.LessThanOrEqual(hi))
	}
}

func TestApplyFilters(t *testing.T) {
	str := func(s string) *string { return &s }
	period := func(p RenewalPeriod) *RenewalPeriod { return &p }
	cycle := func(c model.BillingCycle) *model.BillingCycle { return &c }
	min := decimal.NewFromInt(40)

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"vendor", Filters{Vendor: str("GitHub")}, []string{"b", "c"}},
		{"vendor no match", Filters{Vendor: str("github")}, []string{}},
		{"team", Filters{Team: str("Sales")}, []string{"a", "e"}},
		{"billing cycle", Filters{BillingCycle: cycle(model.BillingMonthly)}, []string{"a", "d", "e"}},
		{"next 7 days", Filters{RenewalPeriod: period(Next7Days)}, []string{"a"}},
		{"next 60 days", Filters{RenewalPeriod: period(Next60Days)}, []string{"a", "b"}},
		{"next 365 days", Filters{RenewalPeriod: period(Next365Days)}, []string{"a", "b", "c"}},
		{"min only", Filters{CostRange: &CostRange{Min: &min}}, []string{"b", "c", "e"}},
		{"conjunction", Filters{Vendor: str("Slack"), RenewalPeriod: period(Next30Days)}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(filterFixture(), tt.filters)))
		})
	}
}

func TestParseFilters(t *testing.T) {
	q := url.Values{}
	q.Set("vendor", "Slack")
	q.Set("status", "active")
	q.Set("billing_cycle", "yearly")
	q.Set("renewal_period", "next_90_days")
	q.Set("min_cost", "10")
	q.Set("max_cost", "50.5")

	f, err := ParseFilters(q)
	require.NoError(t, err)
	require.NotNil(t, f.Vendor)
	assert.Equal(t, "Slack", *f.Vendor)
	assert.Nil(t, f.Team)
	assert.Equal(t, model.StatusActive, *f.Status)
	assert.Equal(t, model.BillingYearly, *f.BillingCycle)
	assert.Equal(t, Next90Days, *f.RenewalPeriod)
	require.NotNil(t, f.CostRange)
	assert.True(t, f.CostRange.Min.Equal(decimal.NewFromInt(10)))
	assert.True(t, f.CostRange.Max.Equal(decimal.RequireFromString("50.5")))

	empty, err := ParseFilters(url.Values{})
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestParseFiltersRejectsUnknownValues(t *testing.T) {
	for key, value := range map[string]string{
		"status":         "paused",
		"billing_cycle":  "weekly",
		"renewal_period": "next_5_days",
		"min_cost":       "ten",
	} {
		_, err := ParseFilters(url.Values{key: {value}})
		assert.Error(t, err, key)
	}
}
