package service

import (
	"context"
	"strings"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"

	"github.com/rs/zerolog"
)

// VendorService manages an organization's vendors.
type VendorService interface {
	ListVendors(ctx context.Context, orgID string) ([]model.VendorSummary, error)
	GetVendor(ctx context.Context, orgID, vendorID string) (*model.Vendor, error)
	CreateVendor(ctx context.Context, orgID string, v *model.Vendor) (*model.Vendor, error)
	UpdateVendor(ctx context.Context, orgID string, v *model.Vendor) (*model.Vendor, error)
	// DeleteVendor refuses to delete a vendor that still has subscriptions.
	DeleteVendor(ctx context.Context, orgID, vendorID string) error
}

type vendorService struct {
	repo     repository.VendorRepository
	subs     repository.SubscriptionRepository
	activity ActivityService
	logger   zerolog.Logger
}

// NewVendorService creates a new VendorService.
func NewVendorService(repo repository.VendorRepository, subs repository.SubscriptionRepository, activity ActivityService, logger zerolog.Logger) VendorService {
	return &vendorService{
		repo:     repo,
		subs:     subs,
		activity: activity,
		logger:   logger.With().Str("service", "VendorService").Logger(),
	}
}

func validateVendor(v *model.Vendor) error {
	var problems validation
	problems.check(strings.TrimSpace(v.Name) != "", "name is required")
	problems.check(v.Status.Valid(), "status must be active, inactive or trial")
	return problems.err()
}

func (s *vendorService) ListVendors(ctx context.Context, orgID string) ([]model.VendorSummary, error) {
	return s.repo.ListVendors(ctx, orgID)
}

func (s *vendorService) GetVendor(ctx context.Context, orgID, vendorID string) (*model.Vendor, error) {
	v, err := s.repo.GetVendor(ctx, orgID, vendorID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVendorNotFound
	}
	return v, nil
}

func (s *vendorService) CreateVendor(ctx context.Context, orgID string, v *model.Vendor) (*model.Vendor, error) {
	if v.Status == "" {
		v.Status = model.VendorActive
	}
	if err := validateVendor(v); err != nil {
		return nil, err
	}
	v.OrganizationID = orgID
	if err := s.repo.CreateVendor(ctx, v); err != nil {
		s.logger.Error().Err(err).Str("organization_id", orgID).Msg("Failed to create vendor")
		return nil, err
	}
	s.activity.Record(ctx, orgID, "vendor.created", "vendor", &v.ID, map[string]any{"name": v.Name})
	return v, nil
}

func (s *vendorService) UpdateVendor(ctx context.Context, orgID string, v *model.Vendor) (*model.Vendor, error) {
	if err := validateVendor(v); err != nil {
		return nil, err
	}
	v.OrganizationID = orgID
	updated, err := s.repo.UpdateVendor(ctx, v)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrVendorNotFound
	}
	s.activity.Record(ctx, orgID, "vendor.updated", "vendor", &updated.ID, nil)
	return updated, nil
}

func (s *vendorService) DeleteVendor(ctx context.Context, orgID, vendorID string) error {
	n, err := s.subs.CountSubscriptionsByVendor(ctx, orgID, vendorID)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrVendorHasSubscriptions
	}
	ok, err := s.repo.DeleteVendor(ctx, orgID, vendorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVendorNotFound
	}
	s.activity.Record(ctx, orgID, "vendor.deleted", "vendor", &vendorID, nil)
	return nil
}

// CategoryService lists and creates vendor categories.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *categoryService) CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, &ValidationError{Problems: []string{"name is required"}}
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
