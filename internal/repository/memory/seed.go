package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"vendorhub/internal/model"
)

func ptr[T any](v T) *T { return &v }

// Seed creates a demo organization owned by ownerID with three vendors and
// their subscriptions. Renewal dates are relative to the store clock.
func Seed(ctx context.Context, s *Store, ownerID, email string) (string, error) {
	if _, err := s.EnsureProfile(ctx, ownerID, email); err != nil {
		return "", err
	}
	org, err := s.InitializeOrganization(ctx, ownerID, "Demo Organization", ptr("Seeded for local development"))
	if err != nil {
		return "", fmt.Errorf("seed organization: %w", err)
	}

	categories := map[string]*model.Category{
		"Communication": {Name: "Communication", Color: ptr("#4A154B")},
		"Development":   {Name: "Development", Color: ptr("#24292F")},
		"Design":        {Name: "Design", Color: ptr("#F24E1E")},
	}
	existing, err := s.ListCategories(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range existing {
		if want, ok := categories[c.Name]; ok {
			*want = c
		}
	}
	for _, c := range categories {
		if c.ID != "" {
			continue
		}
		if err := s.CreateCategory(ctx, c); err != nil {
			return "", err
		}
	}

	vendors := []*model.Vendor{
		{
			Name: "Slack Technologies", Website: ptr("https://slack.com"),
			ContactEmail: ptr("support@slack.com"), ContactPhone: ptr("+1-415-555-0123"),
			CategoryID: &categories["Communication"].ID, Status: model.VendorActive,
			Description: ptr("Team collaboration and messaging platform"),
		},
		{
			Name: "GitHub", Website: ptr("https://github.com"), ContactEmail: ptr("support@github.com"),
			CategoryID: &categories["Development"].ID, Status: model.VendorActive,
			Description: ptr("Code repository and collaboration platform"),
		},
		{
			Name: "Figma", Website: ptr("https://figma.com"), ContactEmail: ptr("hello@figma.com"),
			CategoryID: &categories["Design"].ID, Status: model.VendorTrial,
			Description: ptr("Collaborative design tool"),
		},
	}
	for _, v := range vendors {
		v.OrganizationID = org.ID
		if err := s.CreateVendor(ctx, v); err != nil {
			return "", err
		}
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	day := func(offset int) *time.Time { d := today.AddDate(0, 0, offset); return &d }
	subs := []*model.Subscription{
		{
			VendorID: vendors[0].ID, Name: "Slack Pro", Description: ptr("Professional team collaboration"),
			Cost: decimal.NewFromInt(80), BillingCycle: model.BillingMonthly, StartDate: today.AddDate(0, -10, 0),
			NextRenewalDate: day(5), Status: model.StatusActive, UserSeats: ptr(10), AutoRenew: ptr(true),
			Team: ptr("Operations"),
		},
		{
			VendorID: vendors[1].ID, Name: "GitHub Team", Description: ptr("Team plan for private repositories"),
			Cost: decimal.NewFromInt(120), BillingCycle: model.BillingMonthly, StartDate: today.AddDate(0, -9, 0),
			NextRenewalDate: day(21), Status: model.StatusActive, UserSeats: ptr(5), AutoRenew: ptr(true),
			Team: ptr("Engineering"),
		},
		{
			VendorID: vendors[2].ID, Name: "Figma Professional", Description: ptr("Professional design tools"),
			Cost: decimal.NewFromInt(45), BillingCycle: model.BillingMonthly, StartDate: today.AddDate(0, 0, -20),
			NextRenewalDate: day(10), Status: model.StatusTrial, UserSeats: ptr(3), AutoRenew: ptr(false),
			Team: ptr("Design"),
		},
	}
	for _, sub := range subs {
		sub.OrganizationID = org.ID
		sub.Currency = "USD"
		if err := s.CreateSubscription(ctx, sub); err != nil {
			return "", err
		}
	}
	return org.ID, nil
}
