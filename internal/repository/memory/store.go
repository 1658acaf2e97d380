// Package memory is an in-process implementation of every repository
// interface, used for local development and tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"
)

var (
	_ repository.OrganizationRepository = (*Store)(nil)
	_ repository.VendorRepository       = (*Store)(nil)
	_ repository.CategoryRepository     = (*Store)(nil)
	_ repository.SubscriptionRepository = (*Store)(nil)
	_ repository.DocumentRepository     = (*Store)(nil)
	_ repository.RenewalRepository      = (*Store)(nil)
	_ repository.ActivityRepository     = (*Store)(nil)
)

// ErrVendorInUse mirrors the foreign key that protects vendors with subscriptions.
var ErrVendorInUse = errors.New("vendor is referenced by subscriptions")

// Store keeps every table in a map guarded by one RWMutex. Slices of ids
// record insertion order so listings are deterministic.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	orgs       map[string]model.Organization
	orgOrder   []string
	profiles   map[string]model.Profile
	categories map[string]model.Category
	vendors    map[string]model.Vendor
	subs       map[string]model.Subscription
	subOrder   []string
	docs       map[string]model.Document
	docOrder   []string
	renewals   []model.Renewal
	activity   []model.ActivityLog
}

// New returns an empty store.
func New() *Store {
	return &Store{
		now:        time.Now,
		orgs:       map[string]model.Organization{},
		profiles:   map[string]model.Profile{},
		categories: map[string]model.Category{},
		vendors:    map[string]model.Vendor{},
		subs:       map[string]model.Subscription{},
		docs:       map[string]model.Document{},
	}
}

// SetClock replaces the clock used for timestamps and seeded dates.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func newID() string {
	return uuid.NewString()
}

// Organizations and profiles

func (s *Store) EnsureProfile(_ context.Context, userID, email string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[userID]; ok {
		return &p, nil
	}
	now := s.now()
	p := model.Profile{ID: userID, Email: email, Role: model.RoleMember, CreatedAt: now, UpdatedAt: now}
	s.profiles[userID] = p
	return &p, nil
}

func (s *Store) GetProfile(_ context.Context, userID string) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) InitializeOrganization(_ context.Context, userID, name string, description *string) (*model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("assign owner %s: profile not found", userID)
	}
	now := s.now()
	org := model.Organization{ID: newID(), Name: name, Description: description, CreatedAt: now, UpdatedAt: now}
	s.orgs[org.ID] = org
	s.orgOrder = append(s.orgOrder, org.ID)

	p.OrganizationID = &org.ID
	p.Role = model.RoleOwner
	p.UpdatedAt = now
	s.profiles[userID] = p
	return &org, nil
}

func (s *Store) GetOrganization(_ context.Context, orgID string) (*model.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	org, ok := s.orgs[orgID]
	if !ok {
		return nil, nil
	}
	return &org, nil
}

func (s *Store) ListOrganizations(_ context.Context) ([]model.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Organization, 0, len(s.orgOrder))
	for _, id := range s.orgOrder {
		out = append(out, s.orgs[id])
	}
	return out, nil
}

func (s *Store) ListMembers(_ context.Context, orgID string) ([]model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Profile
	for _, p := range s.profiles {
		if p.OrganizationID != nil && *p.OrganizationID == orgID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Email < out[j].Email
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) UpdateMemberRole(_ context.Context, orgID, profileID string, role model.Role) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[profileID]
	if !ok || p.OrganizationID == nil || *p.OrganizationID != orgID {
		return nil, nil
	}
	p.Role = role
	p.UpdatedAt = s.now()
	s.profiles[profileID] = p
	return &p, nil
}

// AddMember attaches an existing or new profile to orgID with role.
func (s *Store) AddMember(orgID string, p model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt, p.UpdatedAt = now, now
	}
	p.OrganizationID = &orgID
	s.profiles[p.ID] = p
}

// Categories

func (s *Store) ListCategories(_ context.Context) ([]model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateCategory(_ context.Context, c *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if existing.Name == c.Name {
			return fmt.Errorf("insert category %s: duplicate name", c.Name)
		}
	}
	c.ID = newID()
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	s.categories[c.ID] = *c
	return nil
}

// Vendors

func (s *Store) ListVendors(_ context.Context, orgID string) ([]model.VendorSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.VendorSummary
	for _, v := range s.vendors {
		if v.OrganizationID != orgID {
			continue
		}
		vs := model.VendorSummary{Vendor: v, TotalCost: decimal.Zero}
		for _, sub := range s.subs {
			if sub.VendorID != v.ID {
				continue
			}
			vs.SubscriptionsCount++
			if sub.Status == model.StatusActive {
				vs.TotalCost = vs.TotalCost.Add(sub.Cost)
			}
		}
		out = append(out, vs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetVendor(_ context.Context, orgID, vendorID string) (*model.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vendors[vendorID]
	if !ok || v.OrganizationID != orgID {
		return nil, nil
	}
	return &v, nil
}

func (s *Store) CreateVendor(_ context.Context, v *model.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = newID()
	v.CreatedAt = s.now()
	v.UpdatedAt = v.CreatedAt
	s.vendors[v.ID] = *v
	return nil
}

func (s *Store) UpdateVendor(_ context.Context, v *model.Vendor) (*model.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.vendors[v.ID]
	if !ok || cur.OrganizationID != v.OrganizationID {
		return nil, nil
	}
	next := *v
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = s.now()
	s.vendors[v.ID] = next
	return &next, nil
}

func (s *Store) DeleteVendor(_ context.Context, orgID, vendorID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vendors[vendorID]
	if !ok || v.OrganizationID != orgID {
		return false, nil
	}
	for _, sub := range s.subs {
		if sub.VendorID == vendorID {
			return false, fmt.Errorf("delete vendor %s: %w", vendorID, ErrVendorInUse)
		}
	}
	delete(s.vendors, vendorID)
	for id, d := range s.docs {
		if d.VendorID != nil && *d.VendorID == vendorID {
			d.VendorID = nil
			s.docs[id] = d
		}
	}
	return true, nil
}

func (s *Store) CountVendors(_ context.Context, orgID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, v := range s.vendors {
		if v.OrganizationID == orgID {
			n++
		}
	}
	return n, nil
}

// Subscriptions

// joinVendor fills the vendor columns a SQL join would. Caller holds the lock.
func (s *Store) joinVendor(sub model.Subscription) model.Subscription {
	if v, ok := s.vendors[sub.VendorID]; ok {
		name, status := v.Name, string(v.Status)
		sub.VendorName, sub.VendorStatus = &name, &status
	} else {
		sub.VendorName, sub.VendorStatus = nil, nil
	}
	return sub
}

func (s *Store) listSubs(match func(model.Subscription) bool) []model.Subscription {
	var out []model.Subscription
	for i := len(s.subOrder) - 1; i >= 0; i-- {
		sub, ok := s.subs[s.subOrder[i]]
		if ok && match(sub) {
			out = append(out, s.joinVendor(sub))
		}
	}
	return out
}

func (s *Store) ListSubscriptions(_ context.Context, orgID string) ([]model.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listSubs(func(sub model.Subscription) bool { return sub.OrganizationID == orgID }), nil
}

func (s *Store) ListSubscriptionsByVendor(_ context.Context, orgID, vendorID string) ([]model.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listSubs(func(sub model.Subscription) bool {
		return sub.OrganizationID == orgID && sub.VendorID == vendorID
	}), nil
}

func (s *Store) GetSubscription(_ context.Context, orgID, subscriptionID string) (*model.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subs[subscriptionID]
	if !ok || sub.OrganizationID != orgID {
		return nil, nil
	}
	sub = s.joinVendor(sub)
	return &sub, nil
}

func (s *Store) CreateSubscription(_ context.Context, sub *model.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.vendors[sub.VendorID]; !ok || v.OrganizationID != sub.OrganizationID {
		return fmt.Errorf("insert subscription %s: unknown vendor %s", sub.Name, sub.VendorID)
	}
	sub.ID = newID()
	sub.CreatedAt = s.now()
	sub.UpdatedAt = sub.CreatedAt
	stored := *sub
	stored.VendorName, stored.VendorStatus = nil, nil
	s.subs[sub.ID] = stored
	s.subOrder = append(s.subOrder, sub.ID)
	return nil
}

func (s *Store) UpdateSubscription(_ context.Context, orgID, subscriptionID string, patch model.SubscriptionPatch) (*model.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[subscriptionID]
	if !ok || sub.OrganizationID != orgID {
		return nil, nil
	}
	patch.Apply(&sub)
	sub.UpdatedAt = s.now()
	s.subs[subscriptionID] = sub
	joined := s.joinVendor(sub)
	return &joined, nil
}

func (s *Store) BulkUpdateSubscriptions(_ context.Context, orgID string, ids []string, patch model.SubscriptionPatch) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	now := s.now()
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		sub, ok := s.subs[id]
		if !ok || sub.OrganizationID != orgID || seen[id] {
			continue
		}
		seen[id] = true
		patch.Apply(&sub)
		sub.UpdatedAt = now
		s.subs[id] = sub
		n++
	}
	return n, nil
}

func (s *Store) DeleteSubscription(_ context.Context, orgID, subscriptionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[subscriptionID]
	if !ok || sub.OrganizationID != orgID {
		return false, nil
	}
	delete(s.subs, subscriptionID)
	return true, nil
}

func (s *Store) CountSubscriptionsByVendor(_ context.Context, orgID, vendorID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sub := range s.subs {
		if sub.OrganizationID == orgID && sub.VendorID == vendorID {
			n++
		}
	}
	return n, nil
}

// Documents

func (s *Store) joinDocument(d model.Document) model.Document {
	d.VendorName, d.UploaderName = nil, nil
	if d.VendorID != nil {
		if v, ok := s.vendors[*d.VendorID]; ok {
			name := v.Name
			d.VendorName = &name
		}
	}
	if p, ok := s.profiles[d.UploadedBy]; ok && p.FullName != nil {
		name := *p.FullName
		d.UploaderName = &name
	}
	return d
}

func (s *Store) ListDocuments(_ context.Context, orgID string, vendorID *string) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Document
	for i := len(s.docOrder) - 1; i >= 0; i-- {
		d, ok := s.docs[s.docOrder[i]]
		if !ok || d.OrganizationID != orgID {
			continue
		}
		if vendorID != nil && (d.VendorID == nil || *d.VendorID != *vendorID) {
			continue
		}
		out = append(out, s.joinDocument(d))
	}
	return out, nil
}

func (s *Store) GetDocument(_ context.Context, orgID, documentID string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[documentID]
	if !ok || d.OrganizationID != orgID {
		return nil, nil
	}
	d = s.joinDocument(d)
	return &d, nil
}

func (s *Store) CreateDocument(_ context.Context, d *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = newID()
	d.CreatedAt = s.now()
	s.docs[d.ID] = *d
	s.docOrder = append(s.docOrder, d.ID)
	return nil
}

func (s *Store) DeleteDocument(_ context.Context, orgID, documentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[documentID]
	if !ok || d.OrganizationID != orgID {
		return false, nil
	}
	delete(s.docs, documentID)
	return true, nil
}

// Renewals

func (s *Store) CreateRenewal(_ context.Context, rn *model.Renewal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rn.ID = newID()
	rn.CreatedAt = s.now()
	s.renewals = append(s.renewals, *rn)
	return nil
}

func (s *Store) ListRenewals(_ context.Context, subscriptionID string) ([]model.Renewal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Renewal
	for i := len(s.renewals) - 1; i >= 0; i-- {
		if s.renewals[i].SubscriptionID == subscriptionID {
			out = append(out, s.renewals[i])
		}
	}
	return out, nil
}

// Activity

func (s *Store) CreateActivity(_ context.Context, a *model.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = newID()
	a.CreatedAt = s.now()
	s.activity = append(s.activity, *a)
	return nil
}

func (s *Store) ListActivity(_ context.Context, orgID string, limit int) ([]model.ActivityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.ActivityLog
	for i := len(s.activity) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if s.activity[i].OrganizationID == orgID {
			out = append(out, s.activity[i])
		}
	}
	return out, nil
}
