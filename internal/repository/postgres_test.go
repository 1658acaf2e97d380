package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"vendorhub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchAssignments(t *testing.T) {
	name := "Renamed"
	status := model.StatusCancelled
	cost := decimal.RequireFromString("49.99")

	sets, args := patchAssignments(model.SubscriptionPatch{Name: &name, Cost: &cost, Status: &status}, 3)

	assert.Equal(t, []string{"name = $3", "cost = $4", "status = $5", "updated_at = now()"}, sets)
	require.Len(t, args, 3)
	assert.Equal(t, "Renamed", args[0])
	assert.True(t, cost.Equal(args[1].(decimal.Decimal)))
	assert.Equal(t, model.StatusCancelled, args[2])
}

func TestPatchAssignmentsEmpty(t *testing.T) {
	sets, args := patchAssignments(model.SubscriptionPatch{}, 3)
	assert.Equal(t, []string{"updated_at = now()"}, sets)
	assert.Empty(t, args)
}

func TestAppendParam(t *testing.T) {
	assert.Equal(t, "postgres://h/db?sslmode=disable", appendParam("postgres://h/db", "sslmode=disable"))
	assert.Equal(t, "postgres://h/db?a=1&sslmode=disable", appendParam("postgres://h/db?a=1", "sslmode=disable"))
}

// testPool connects to TEST_DATABASE_URL and applies the schema.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, dsn, true)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, Migrate(ctx, pool))
	return pool
}

func TestPostgresSubscriptionLifecycle(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	orgs := NewOrganizationRepo(pool)
	vendors := NewVendorRepo(pool)
	subs := NewSubscriptionRepo(pool)

	userID := uuid.NewString()
	profile, err := orgs.EnsureProfile(ctx, userID, userID+"@example.com")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Nil(t, profile.OrganizationID)

	org, err := orgs.InitializeOrganization(ctx, userID, "Integration Co", nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM profiles WHERE id = $1`, userID)
		pool.Exec(context.Background(), `DELETE FROM organizations WHERE id = $1`, org.ID)
	})

	profile, err = orgs.GetProfile(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, profile.OrganizationID)
	assert.Equal(t, org.ID, *profile.OrganizationID)
	assert.Equal(t, model.RoleOwner, profile.Role)

	v := &model.Vendor{OrganizationID: org.ID, Name: "Acme", Status: model.VendorActive}
	require.NoError(t, vendors.CreateVendor(ctx, v))
	require.NotEmpty(t, v.ID)

	renewal := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := &model.Subscription{
		OrganizationID:  org.ID,
		VendorID:        v.ID,
		Name:            "Acme Pro",
		Cost:            decimal.RequireFromString("120.00"),
		BillingCycle:    model.BillingMonthly,
		Currency:        "USD",
		StartDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		NextRenewalDate: &renewal,
		Status:          model.StatusActive,
	}
	require.NoError(t, subs.CreateSubscription(ctx, s))
	require.NotEmpty(t, s.ID)

	got, err := subs.GetSubscription(ctx, org.ID, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Cost.Equal(s.Cost))
	require.NotNil(t, got.VendorName)
	assert.Equal(t, "Acme", *got.VendorName)

	n, err := subs.CountSubscriptionsByVendor(ctx, org.ID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	team := "Platform"
	updated, err := subs.BulkUpdateSubscriptions(ctx, org.ID, []string{s.ID, uuid.NewString()}, model.SubscriptionPatch{Team: &team})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	// Another organization's scope sees nothing.
	other, err := subs.GetSubscription(ctx, uuid.NewString(), s.ID)
	require.NoError(t, err)
	assert.Nil(t, other)

	ok, err := subs.DeleteSubscription(ctx, org.ID, s.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = subs.DeleteSubscription(ctx, org.ID, s.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = vendors.DeleteVendor(ctx, org.ID, v.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
