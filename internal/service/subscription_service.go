package service

import (
	"context"
	"io"
	"strings"
	"time"

	"vendorhub/internal/analytics"
	"vendorhub/internal/model"
	"vendorhub/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SubscriptionService exposes subscription analytics and lifecycle
// operations for one organization at a time.
type SubscriptionService interface {
	GetEnhancedSubscriptions(ctx context.Context, orgID string, filters *analytics.Filters) ([]analytics.EnhancedSubscription, error)
	GetSubscriptionStats(ctx context.Context, orgID string) (*analytics.SubscriptionStats, error)
	GetRenewalAlerts(ctx context.Context, orgID string) ([]analytics.RenewalAlert, error)
	GetCostBreakdown(ctx context.Context, orgID string) (*analytics.CostBreakdown, error)
	ExportCostBreakdown(ctx context.Context, orgID string, w io.Writer) error
	GetSubscriptionsByVendor(ctx context.Context, orgID, vendorID string) ([]analytics.EnhancedSubscription, error)
	GetSubscriptionsByTeam(ctx context.Context, orgID, team string) ([]analytics.EnhancedSubscription, error)

	GetSubscription(ctx context.Context, orgID, subscriptionID string) (*analytics.EnhancedSubscription, error)
	ListRenewals(ctx context.Context, orgID, subscriptionID string) ([]model.Renewal, error)
	CreateSubscription(ctx context.Context, orgID string, s *model.Subscription) (*analytics.EnhancedSubscription, error)
	UpdateSubscription(ctx context.Context, orgID, subscriptionID string, patch model.SubscriptionPatch) (*analytics.EnhancedSubscription, error)
	DeleteSubscription(ctx context.Context, orgID, subscriptionID string) error

	// RenewSubscription moves the renewal date forward one cycle, or to newRenewalDate,
	// optionally changing the cost. A cost change is logged in the renewal history.
	RenewSubscription(ctx context.Context, orgID, subscriptionID string, newCost *decimal.Decimal, newRenewalDate *time.Time) (*analytics.EnhancedSubscription, error)
	// CancelSubscription marks the subscription cancelled and turns off auto-renew.
	CancelSubscription(ctx context.Context, orgID, subscriptionID string, effectiveDate *time.Time) (*analytics.EnhancedSubscription, error)
	ReactivateSubscription(ctx context.Context, orgID, subscriptionID string, newRenewalDate time.Time) (*analytics.EnhancedSubscription, error)
	BulkUpdateSubscriptions(ctx context.Context, orgID string, ids []string, patch model.SubscriptionPatch) (int64, error)
}

type subscriptionService struct {
	repo     repository.SubscriptionRepository
	vendors  repository.VendorRepository
	renewals repository.RenewalRepository
	activity ActivityService
	now      func() time.Time
	logger   zerolog.Logger
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(
	repo repository.SubscriptionRepository,
	vendors repository.VendorRepository,
	renewals repository.RenewalRepository,
	activity ActivityService,
	logger zerolog.Logger,
) SubscriptionService {
	return &subscriptionService{
		repo:     repo,
		vendors:  vendors,
		renewals: renewals,
		activity: activity,
		now:      time.Now,
		logger:   logger.With().Str("service", "SubscriptionService").Logger(),
	}
}

func (s *subscriptionService) enhanced(ctx context.Context, orgID string) ([]analytics.EnhancedSubscription, error) {
	subs, err := s.repo.ListSubscriptions(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return analytics.Enhance(subs, s.now()), nil
}

func (s *subscriptionService) GetEnhancedSubscriptions(ctx context.Context, orgID string, filters *analytics.Filters) ([]analytics.EnhancedSubscription, error) {
	subs, err := s.enhanced(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if filters != nil {
		subs = analytics.Apply(subs, *filters)
	}
	return subs, nil
}

func (s *subscriptionService) GetSubscriptionStats(ctx context.Context, orgID string) (*analytics.SubscriptionStats, error) {
	subs, err := s.enhanced(ctx, orgID)
	if err != nil {
		return nil, err
	}
	stats := analytics.Stats(subs)
	return &stats, nil
}

func (s *subscriptionService) GetRenewalAlerts(ctx context.Context, orgID string) ([]analytics.RenewalAlert, error) {
	subs, err := s.enhanced(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return analytics.RenewalAlerts(subs), nil
}

func (s *subscriptionService) GetCostBreakdown(ctx context.Context, orgID string) (*analytics.CostBreakdown, error) {
	subs, err := s.enhanced(ctx, orgID)
	if err != nil {
		return nil, err
	}
	b := analytics.Breakdown(subs)
	return &b, nil
}

func (s *subscriptionService) ExportCostBreakdown(ctx context.Context, orgID string, w io.Writer) error {
	subs, err := s.enhanced(ctx, orgID)
	if err != nil {
		return err
	}
	return analytics.WriteBreakdownXLSX(w, analytics.Breakdown(subs), subs)
}

func (s *subscriptionService) GetSubscriptionsByVendor(ctx context.Context, orgID, vendorID string) ([]analytics.EnhancedSubscription, error) {
	v, err := s.vendors.GetVendor(ctx, orgID, vendorID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVendorNotFound
	}
	subs, err := s.repo.ListSubscriptionsByVendor(ctx, orgID, vendorID)
	if err != nil {
		return nil, err
	}
	return analytics.Enhance(subs, s.now()), nil
}

func (s *subscriptionService) GetSubscriptionsByTeam(ctx context.Context, orgID, team string) ([]analytics.EnhancedSubscription, error) {
	return s.GetEnhancedSubscriptions(ctx, orgID, &analytics.Filters{Team: &team})
}

func (s *subscriptionService) get(ctx context.Context, orgID, subscriptionID string) (*model.Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, orgID, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubscriptionNotFound
	}
	return sub, nil
}

func (s *subscriptionService) enhanceOne(sub *model.Subscription) *analytics.EnhancedSubscription {
	e := analytics.EnhanceOne(*sub, s.now())
	return &e
}

func (s *subscriptionService) GetSubscription(ctx context.Context, orgID, subscriptionID string) (*analytics.EnhancedSubscription, error) {
	sub, err := s.get(ctx, orgID, subscriptionID)
	if err != nil {
		return nil, err
	}
	return s.enhanceOne(sub), nil
}

func (s *subscriptionService) ListRenewals(ctx context.Context, orgID, subscriptionID string) ([]model.Renewal, error) {
	if _, err := s.get(ctx, orgID, subscriptionID); err != nil {
		return nil, err
	}
	return s.renewals.ListRenewals(ctx, subscriptionID)
}

func validateNewSubscription(sub *model.Subscription) error {
	var v validation
	v.check(strings.TrimSpace(sub.Name) != "", "name is required")
	v.check(sub.VendorID != "", "vendor is required")
	v.check(sub.Cost.IsPositive(), "cost must be greater than 0")
	v.check(sub.BillingCycle.Valid(), "billing cycle must be monthly, quarterly or yearly")
	v.check(!sub.StartDate.IsZero(), "start date is required")
	v.check(sub.Status == "" || sub.Status.Valid(), "status is invalid")
	v.check(sub.UserSeats == nil || *sub.UserSeats > 0, "user seats must be greater than 0")
	return v.err()
}

func validatePatch(p model.SubscriptionPatch) error {
	var v validation
	v.check(!p.IsEmpty(), "no fields to update")
	if p.Name != nil {
		v.check(strings.TrimSpace(*p.Name) != "", "name cannot be empty")
	}
	if p.VendorID != nil {
		v.check(*p.VendorID != "", "vendor cannot be empty")
	}
	if p.Cost != nil {
		v.check(!p.Cost.IsNegative(), "cost cannot be negative")
	}
	if p.BillingCycle != nil {
		v.check(p.BillingCycle.Valid(), "billing cycle must be monthly, quarterly or yearly")
	}
	if p.Status != nil {
		v.check(p.Status.Valid(), "status is invalid")
	}
	if p.UserSeats != nil {
		v.check(*p.UserSeats > 0, "user seats must be greater than 0")
	}
	if p.StartDate != nil {
		v.check(!p.StartDate.IsZero(), "start date cannot be empty")
	}
	return v.err()
}

func (s *subscriptionService) requireVendor(ctx context.Context, orgID, vendorID string) error {
	v, err := s.vendors.GetVendor(ctx, orgID, vendorID)
	if err != nil {
		return err
	}
	if v == nil {
		return ErrVendorNotFound
	}
	return nil
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, orgID string, sub *model.Subscription) (*analytics.EnhancedSubscription, error) {
	if err := validateNewSubscription(sub); err != nil {
		return nil, err
	}
	if err := s.requireVendor(ctx, orgID, sub.VendorID); err != nil {
		return nil, err
	}

	sub.OrganizationID = orgID
	if sub.Status == "" {
		sub.Status = model.StatusActive
	}
	if sub.Currency == "" {
		sub.Currency = "USD"
	}
	if sub.AutoRenew == nil {
		autoRenew := true
		sub.AutoRenew = &autoRenew
	}
	if sub.NextRenewalDate == nil {
		next := analytics.NextRenewalDate(sub.StartDate, sub.BillingCycle)
		sub.NextRenewalDate = &next
	}

	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		s.logger.Error().Err(err).Str("organization_id", orgID).Msg("Failed to create subscription")
		return nil, err
	}
	created, err := s.get(ctx, orgID, sub.ID)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, orgID, "subscription.created", "subscription", &created.ID, map[string]any{
		"name": created.Name,
		"cost": created.Cost.String(),
	})
	return s.enhanceOne(created), nil
}

func (s *subscriptionService) update(ctx context.Context, orgID, subscriptionID string, patch model.SubscriptionPatch) (*model.Subscription, error) {
	updated, err := s.repo.UpdateSubscription(ctx, orgID, subscriptionID, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrSubscriptionNotFound
	}
	return updated, nil
}

func (s *subscriptionService) UpdateSubscription(ctx context.Context, orgID, subscriptionID string, patch model.SubscriptionPatch) (*analytics.EnhancedSubscription, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	if patch.VendorID != nil {
		if err := s.requireVendor(ctx, orgID, *patch.VendorID); err != nil {
			return nil, err
		}
	}
	updated, err := s.update(ctx, orgID, subscriptionID, patch)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, orgID, "subscription.updated", "subscription", &updated.ID, nil)
	return s.enhanceOne(updated), nil
}

func (s *subscriptionService) DeleteSubscription(ctx context.Context, orgID, subscriptionID string) error {
	ok, err := s.repo.DeleteSubscription(ctx, orgID, subscriptionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSubscriptionNotFound
	}
	s.activity.Record(ctx, orgID, "subscription.deleted", "subscription", &subscriptionID, nil)
	return nil
}

func (s *subscriptionService) RenewSubscription(ctx context.Context, orgID, subscriptionID string, newCost *decimal.Decimal, newRenewalDate *time.Time) (*analytics.EnhancedSubscription, error) {
	if newCost != nil && newCost.IsNegative() {
		return nil, &ValidationError{Problems: []string{"cost cannot be negative"}}
	}
	current, err := s.get(ctx, orgID, subscriptionID)
	if err != nil {
		return nil, err
	}

	var next time.Time
	if newRenewalDate != nil {
		next = *newRenewalDate
	} else {
		base := current.StartDate
		if current.NextRenewalDate != nil {
			base = *current.NextRenewalDate
		}
		next = analytics.NextRenewalDate(base, current.BillingCycle)
	}

	patch := model.SubscriptionPatch{NextRenewalDate: &next, Cost: newCost}
	updated, err := s.update(ctx, orgID, subscriptionID, patch)
	if err != nil {
		return nil, err
	}

	if newCost != nil && !newCost.Equal(current.Cost) {
		rn := &model.Renewal{
			SubscriptionID:      subscriptionID,
			PreviousCost:        current.Cost,
			NewCost:             *newCost,
			PreviousRenewalDate: current.NextRenewalDate,
			NewRenewalDate:      next,
			Status:              model.RenewalCompleted,
		}
		// The renewal is already applied; a failed history row must not
		// invite a retry that advances the date again.
		if err := s.renewals.CreateRenewal(ctx, rn); err != nil {
			s.logger.Error().Err(err).Str("subscription_id", subscriptionID).Msg("Failed to record renewal history")
		}
	}

	details := map[string]any{"next_renewal_date": analytics.FormatDate(next)}
	if newCost != nil {
		details["previous_cost"] = current.Cost.String()
		details["new_cost"] = newCost.String()
	}
	s.activity.Record(ctx, orgID, "subscription.renewed", "subscription", &subscriptionID, details)
	return s.enhanceOne(updated), nil
}

func (s *subscriptionService) CancelSubscription(ctx context.Context, orgID, subscriptionID string, effectiveDate *time.Time) (*analytics.EnhancedSubscription, error) {
	status := model.StatusCancelled
	autoRenew := false
	patch := model.SubscriptionPatch{Status: &status, AutoRenew: &autoRenew, NextRenewalDate: effectiveDate}
	updated, err := s.update(ctx, orgID, subscriptionID, patch)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, orgID, "subscription.cancelled", "subscription", &subscriptionID, nil)
	return s.enhanceOne(updated), nil
}

func (s *subscriptionService) ReactivateSubscription(ctx context.Context, orgID, subscriptionID string, newRenewalDate time.Time) (*analytics.EnhancedSubscription, error) {
	if newRenewalDate.IsZero() {
		return nil, &ValidationError{Problems: []string{"next renewal date is required"}}
	}
	status := model.StatusActive
	patch := model.SubscriptionPatch{Status: &status, NextRenewalDate: &newRenewalDate}
	updated, err := s.update(ctx, orgID, subscriptionID, patch)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, orgID, "subscription.reactivated", "subscription", &subscriptionID, map[string]any{
		"next_renewal_date": analytics.FormatDate(newRenewalDate),
	})
	return s.enhanceOne(updated), nil
}

func (s *subscriptionService) BulkUpdateSubscriptions(ctx context.Context, orgID string, ids []string, patch model.SubscriptionPatch) (int64, error) {
	var v validation
	v.check(len(ids) > 0, "at least one subscription id is required")
	if err := v.err(); err != nil {
		return 0, err
	}
	if err := validatePatch(patch); err != nil {
		return 0, err
	}
	if patch.VendorID != nil {
		if err := s.requireVendor(ctx, orgID, *patch.VendorID); err != nil {
			return 0, err
		}
	}

	n, err := s.repo.BulkUpdateSubscriptions(ctx, orgID, ids, patch)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(ids)).Msg("Bulk update failed")
		return 0, err
	}
	s.activity.Record(ctx, orgID, "subscription.bulk_updated", "subscription", nil, map[string]any{
		"ids":     ids,
		"updated": n,
	})
	return n, nil
}
