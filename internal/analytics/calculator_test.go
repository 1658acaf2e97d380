package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorhub/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, want.Round(8).Equal(got.Round(8)), "want %s, got %s", want, got)
}

func TestMonthlyCost(t *testing.T) {
	for _, c := range []string{"0", "1", "10", "99.99", "1234.5"} {
		cost := dec(c)
		assert.True(t, MonthlyCost(cost, model.BillingMonthly).Equal(cost))
		assert.True(t, MonthlyCost(cost, model.BillingQuarterly).Equal(cost.Div(decimal.NewFromInt(3))))
		assert.True(t, MonthlyCost(YearlyCost(cost, model.BillingYearly), model.BillingYearly).Equal(cost.Div(decimal.NewFromInt(12))))
		assert.True(t, YearlyCost(cost, model.BillingYearly).Equal(cost))
	}
}

func TestYearlyCostMatchesMonthlyTimesTwelve(t *testing.T) {
	cycles := append([]model.BillingCycle{"weekly"}, model.BillingCycles...)
	for _, cycle := range cycles {
		for _, c := range []string{"0", "12", "45", "80.10", "1000"} {
			cost := dec(c)
			assertDecimal(t, MonthlyCost(cost, cycle).Mul(decimal.NewFromInt(12)), YearlyCost(cost, cycle))
		}
	}
}

func TestUnknownCycleIsMonthly(t *testing.T) {
	cost := dec("30")
	assert.True(t, MonthlyCost(cost, "biweekly").Equal(cost))
	assert.True(t, YearlyCost(cost, "biweekly").Equal(dec("360")))
}

func TestCostPerSeat(t *testing.T) {
	seats := func(n int) *int { return &n }
	tests := []struct {
		name  string
		seats *int
		want  string
	}{
		{"no seats", nil, "120"},
		{"zero seats", seats(0), "120"},
		{"negative seats", seats(-3), "120"},
		{"one seat", seats(1), "120"},
		{"ten seats", seats(10), "12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, CostPerSeat(dec("120"), tt.seats).Equal(dec(tt.want)))
		})
	}
}

func TestDaysUntilRenewal(t *testing.T) {
	now := time.Date(2025, 3, 15, 17, 45, 0, 0, time.UTC)
	today := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysUntilRenewal(today, now))
	assert.Equal(t, -1, DaysUntilRenewal(today.AddDate(0, 0, -1), now))
	assert.Equal(t, 30, DaysUntilRenewal(today.AddDate(0, 0, 30), now))
	assert.Equal(t, 1, DaysUntilRenewal(today.AddDate(0, 0, 1), now))
	assert.Equal(t, 365, DaysUntilRenewal(today.AddDate(1, 0, 0), now))
}

func TestDaysUntilRenewalUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 23:30 UTC on the 14th is already the 15th in UTC+10.
	now := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC).In(loc)
	renewal := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysUntilRenewal(renewal, now))
}

func TestDaysUntilRenewalAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	now := time.Date(2025, 3, 8, 12, 0, 0, 0, loc)
	renewal := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysUntilRenewal(renewal, now))
}

func TestUrgencyFor(t *testing.T) {
	tests := []struct {
		days int
		want Urgency
	}{
		{-30, UrgencyOverdue},
		{-1, UrgencyOverdue},
		{0, UrgencyUrgent},
		{7, UrgencyUrgent},
		{8, UrgencySoon},
		{30, UrgencySoon},
		{31, UrgencyNormal},
		{365, UrgencyNormal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UrgencyFor(tt.days), "days=%d", tt.days)
	}
}

func TestNextRenewalDate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-01", FormatDate(NextRenewalDate(start, model.BillingMonthly)))
	assert.Equal(t, "2024-04-01", FormatDate(NextRenewalDate(start, model.BillingQuarterly)))
	assert.Equal(t, "2025-01-01", FormatDate(NextRenewalDate(start, model.BillingYearly)))
}

func TestNextRenewalDateMonthOverflow(t *testing.T) {
	leap := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-02", FormatDate(NextRenewalDate(leap, model.BillingMonthly)))

	common := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-03", FormatDate(NextRenewalDate(common, model.BillingMonthly)))

	feb29 := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-01", FormatDate(NextRenewalDate(feb29, model.BillingYearly)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/01/2024")
	assert.Error(t, err)
}

func TestYearlySubscriptionEndToEnd(t *testing.T) {
	start, err := ParseDate("2024-01-01")
	require.NoError(t, err)

	next := NextRenewalDate(start, model.BillingYearly)
	assert.Equal(t, "2025-01-01", FormatDate(next))

	sub := model.Subscription{Cost: dec("96"), BillingCycle: model.BillingYearly, StartDate: start, NextRenewalDate: &next, Status: model.StatusActive}
	e := EnhanceOne(sub, start)
	assert.True(t, e.MonthlyCost.Equal(dec("8")))
	assert.True(t, e.YearlyCost.Equal(dec("96")))
	require.NotNil(t, e.DaysUntilRenewal)
	assert.Equal(t, 366, *e.DaysUntilRenewal)
	assert.Equal(t, UrgencyNormal, e.RenewalUrgency)
}
