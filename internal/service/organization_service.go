package service

import (
	"context"
	"strings"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Spending is the organization-level spend summary.
type Spending struct {
	TotalMonthlyCost    decimal.Decimal `json:"total_monthly_cost" swaggertype:"string"`
	TotalYearlyCost     decimal.Decimal `json:"total_yearly_cost" swaggertype:"string"`
	ActiveSubscriptions int             `json:"active_subscriptions"`
	VendorCount         int             `json:"vendor_count"`
}

// OrganizationService covers tenant setup and team management.
type OrganizationService interface {
	// Me returns the caller's profile, creating it on first use, and its organization if any.
	Me(ctx context.Context, userID, email string) (*model.Profile, *model.Organization, error)
	InitializeOrganization(ctx context.Context, userID, email, name string, description *string) (*model.Organization, error)
	GetSpending(ctx context.Context, orgID string) (*Spending, error)
	ListMembers(ctx context.Context, orgID string) ([]model.Profile, error)
	// UpdateMemberRole changes a member's role. Only owners may grant or revoke ownership
	// and nobody may change their own role.
	UpdateMemberRole(ctx context.Context, actor Actor, profileID string, role model.Role) (*model.Profile, error)
}

type organizationService struct {
	repo     repository.OrganizationRepository
	subs     SubscriptionService
	vendors  repository.VendorRepository
	activity ActivityService
	logger   zerolog.Logger
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(
	repo repository.OrganizationRepository,
	subs SubscriptionService,
	vendors repository.VendorRepository,
	activity ActivityService,
	logger zerolog.Logger,
) OrganizationService {
	return &organizationService{
		repo:     repo,
		subs:     subs,
		vendors:  vendors,
		activity: activity,
		logger:   logger.With().Str("service", "OrganizationService").Logger(),
	}
}

func (s *organizationService) Me(ctx context.Context, userID, email string) (*model.Profile, *model.Organization, error) {
	p, err := s.repo.EnsureProfile(ctx, userID, email)
	if err != nil {
		return nil, nil, err
	}
	if p.OrganizationID == nil {
		return p, nil, nil
	}
	org, err := s.repo.GetOrganization(ctx, *p.OrganizationID)
	if err != nil {
		return nil, nil, err
	}
	return p, org, nil
}

func (s *organizationService) InitializeOrganization(ctx context.Context, userID, email, name string, description *string) (*model.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Problems: []string{"organization name is required"}}
	}
	p, err := s.repo.EnsureProfile(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	if p.OrganizationID != nil {
		return nil, ErrAlreadyInOrganization
	}

	org, err := s.repo.InitializeOrganization(ctx, userID, name, description)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to initialize organization")
		return nil, err
	}
	ctx = WithActor(ctx, Actor{UserID: userID, Email: email, OrganizationID: org.ID, Role: model.RoleOwner})
	s.activity.Record(ctx, org.ID, "organization.created", "organization", &org.ID, map[string]any{"name": org.Name})
	return org, nil
}

func (s *organizationService) GetSpending(ctx context.Context, orgID string) (*Spending, error) {
	stats, err := s.subs.GetSubscriptionStats(ctx, orgID)
	if err != nil {
		return nil, err
	}
	vendors, err := s.vendors.CountVendors(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return &Spending{
		TotalMonthlyCost:    stats.TotalMonthlyCost,
		TotalYearlyCost:     stats.TotalYearlyCost,
		ActiveSubscriptions: stats.ActiveSubscriptions,
		VendorCount:         vendors,
	}, nil
}

func (s *organizationService) ListMembers(ctx context.Context, orgID string) ([]model.Profile, error) {
	return s.repo.ListMembers(ctx, orgID)
}

func (s *organizationService) UpdateMemberRole(ctx context.Context, actor Actor, profileID string, role model.Role) (*model.Profile, error) {
	if !role.Valid() {
		return nil, &ValidationError{Problems: []string{"role must be owner, admin, member or viewer"}}
	}
	if !actor.Role.CanManageTeam() || actor.UserID == profileID {
		return nil, ErrForbidden
	}

	members, err := s.repo.ListMembers(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	var target *model.Profile
	for i := range members {
		if members[i].ID == profileID {
			target = &members[i]
			break
		}
	}
	if target == nil {
		return nil, ErrMemberNotFound
	}
	if (role == model.RoleOwner || target.Role == model.RoleOwner) && actor.Role != model.RoleOwner {
		return nil, ErrForbidden
	}

	updated, err := s.repo.UpdateMemberRole(ctx, actor.OrganizationID, profileID, role)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrMemberNotFound
	}
	s.activity.Record(ctx, actor.OrganizationID, "member.role_changed", "profile", &profileID, map[string]any{
		"from": string(target.Role),
		"to":   string(role),
	})
	return updated, nil
}
