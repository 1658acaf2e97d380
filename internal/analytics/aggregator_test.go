package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorhub/internal/model"
)

var refNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type subOpt func(*model.Subscription)

func renewsIn(days int) subOpt {
	return func(s *model.Subscription) {
		d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
		s.NextRenewalDate = &d
	}
}

func withStatus(st model.SubscriptionStatus) subOpt {
	return func(s *model.Subscription) { s.Status = st }
}

func withTeam(team string) subOpt {
	return func(s *model.Subscription) { s.Team = &team }
}

func withVendor(name string) subOpt {
	return func(s *model.Subscription) { s.VendorName = &name }
}

func newSub(id, cost string, cycle model.BillingCycle, opts ...subOpt) model.Subscription {
	s := model.Subscription{
		ID:           id,
		Name:         "sub " + id,
		Cost:         decimal.RequireFromString(cost),
		BillingCycle: cycle,
		Currency:     "USD",
		Status:       model.StatusActive,
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

func TestStatsEmpty(t *testing.T) {
	st := Stats(nil)
	assert.Equal(t, 0, st.TotalSubscriptions)
	assert.Equal(t, 0, st.ActiveSubscriptions)
	assert.True(t, st.AverageCostPerSubscription.IsZero())
	assert.Len(t, st.ByStatus, 5)
	assert.Len(t, st.ByBillingCycle, 3)
	for _, s := range model.SubscriptionStatuses {
		assert.Equal(t, 0, st.ByStatus[s])
	}
}

func TestStatsNoActive(t *testing.T) {
	subs := Enhance([]model.Subscription{
		newSub("1", "50", model.BillingMonthly, withStatus(model.StatusCancelled)),
	}, refNow)
	st := Stats(subs)
	assert.Equal(t, 1, st.TotalSubscriptions)
	assert.True(t, st.AverageCostPerSubscription.IsZero())
	assert.True(t, st.TotalMonthlyCost.IsZero())
	assert.Empty(t, st.CostByTeam)
}

func TestStatsTotals(t *testing.T) {
	subs := Enhance([]model.Subscription{
		newSub("1", "12", model.BillingMonthly),
		newSub("2", "120", model.BillingYearly),
	}, refNow)
	st := Stats(subs)
	assert.True(t, st.TotalMonthlyCost.Equal(dec("22")), st.TotalMonthlyCost.String())
	assert.True(t, st.TotalYearlyCost.Equal(dec("264")))
	assert.True(t, st.AverageCostPerSubscription.Equal(dec("11")))
	assert.Equal(t, 2, st.ActiveSubscriptions)
}

func TestStatsGroupings(t *testing.T) {
	subs := Enhance([]model.Subscription{
		newSub("1", "30", model.BillingMonthly, withTeam("Engineering"), withVendor("GitHub"), renewsIn(5)),
		newSub("2", "90", model.BillingQuarterly, withTeam("Engineering"), withVendor("GitHub"), renewsIn(20)),
		newSub("3", "120", model.BillingYearly, withVendor("Figma"), renewsIn(60)),
		newSub("4", "15", model.BillingMonthly, renewsIn(0)),
		newSub("5", "70", model.BillingMonthly, withStatus(model.StatusTrial), withTeam("Design"), renewsIn(-2)),
		newSub("6", "10", model.BillingMonthly, withStatus(model.StatusExpired)),
	}, refNow)
	st := Stats(subs)

	assert.Equal(t, 6, st.TotalSubscriptions)
	assert.Equal(t, 4, st.ActiveSubscriptions)
	assert.Equal(t, map[model.SubscriptionStatus]int{
		model.StatusActive: 4, model.StatusInactive: 0, model.StatusTrial: 1,
		model.StatusCancelled: 0, model.StatusExpired: 1,
	}, st.ByStatus)
	assert.Equal(t, map[model.BillingCycle]int{
		model.BillingMonthly: 4, model.BillingQuarterly: 1, model.BillingYearly: 1,
	}, st.ByBillingCycle)

	// Renewal windows count every status but only strictly future dates.
	assert.Equal(t, UpcomingRenewals{Next7Days: 1, Next30Days: 2, Next90Days: 3}, st.UpcomingRenewals)

	require.Contains(t, st.CostByTeam, "Engineering")
	assert.True(t, st.CostByTeam["Engineering"].Equal(dec("60")))
	assert.True(t, st.CostByTeam["Unassigned"].Equal(dec("25")))
	assert.NotContains(t, st.CostByTeam, "Design")

	assert.True(t, st.CostByVendor["GitHub"].Equal(dec("60")))
	assert.True(t, st.CostByVendor["Figma"].Equal(dec("10")))
	assert.True(t, st.CostByVendor["Unknown"].Equal(dec("15")))
}

func TestRenewalAlerts(t *testing.T) {
	subs := Enhance([]model.Subscription{
		newSub("far", "10", model.BillingMonthly, renewsIn(31)),
		newSub("soon", "10", model.BillingMonthly, renewsIn(30)),
		newSub("none", "10", model.BillingMonthly),
		newSub("overdue", "10", model.BillingMonthly, renewsIn(-4), withVendor("Slack")),
		newSub("today", "10", model.BillingMonthly, renewsIn(0)),
		newSub("week", "10", model.BillingMonthly, renewsIn(7)),
		newSub("cancelled", "10", model.BillingMonthly, renewsIn(3), withStatus(model.StatusCancelled)),
	}, refNow)

	alerts := RenewalAlerts(subs)
	ids := make([]string, 0, len(alerts))
	for _, a := range alerts {
		ids = append(ids, a.SubscriptionID)
	}
	assert.Equal(t, []string{"overdue", "today", "cancelled", "week", "soon"}, ids)

	assert.Equal(t, "Slack", alerts[0].VendorName)
	assert.Equal(t, UrgencyOverdue, alerts[0].Urgency)
	assert.Equal(t, -4, alerts[0].DaysUntilRenewal)
	assert.Equal(t, UrgencySoon, alerts[4].Urgency)
	assert.False(t, alerts[0].AutoRenew)
	for i := 1; i < len(alerts); i++ {
		assert.LessOrEqual(t, alerts[i-1].DaysUntilRenewal, alerts[i].DaysUntilRenewal)
	}
}

func TestRenewalAlertsEmpty(t *testing.T) {
	alerts := RenewalAlerts(nil)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestBreakdown(t *testing.T) {
	subs := Enhance([]model.Subscription{
		newSub("1", "12", model.BillingMonthly, withTeam("Ops")),
		newSub("2", "90", model.BillingQuarterly, withTeam("Ops"), withVendor("Atlassian")),
		newSub("3", "240", model.BillingYearly, withVendor("Atlassian")),
		newSub("4", "500", model.BillingYearly, withStatus(model.StatusInactive)),
	}, refNow)
	b := Breakdown(subs)

	assert.True(t, b.Monthly.Equal(dec("62")), b.Monthly.String())
	assert.True(t, b.Quarterly.Equal(dec("90")))
	assert.True(t, b.Yearly.Equal(dec("240")))
	assert.True(t, b.TotalAnnual.Equal(dec("744")))

	assert.True(t, b.ByTeam["Ops"].Equal(dec("42")))
	assert.True(t, b.ByTeam["Unassigned"].Equal(dec("20")))
	assert.True(t, b.ByVendor["Atlassian"].Equal(dec("50")))
	assert.True(t, b.ByVendor["Unknown"].Equal(dec("12")))
	assert.Len(t, b.ByBillingCycle, 3)
	assert.True(t, b.ByBillingCycle[model.BillingMonthly].Equal(dec("12")))
	assert.True(t, b.ByBillingCycle[model.BillingQuarterly].Equal(dec("30")))
	assert.True(t, b.ByBillingCycle[model.BillingYearly].Equal(dec("20")))
}

func TestEnhanceWithoutRenewalDate(t *testing.T) {
	e := EnhanceOne(newSub("1", "10", model.BillingMonthly), refNow)
	assert.Nil(t, e.DaysUntilRenewal)
	assert.Equal(t, UrgencyNormal, e.RenewalUrgency)
}
