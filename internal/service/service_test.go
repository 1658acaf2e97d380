package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"vendorhub/internal/analytics"
	"vendorhub/internal/model"
	"vendorhub/internal/repository/memory"
	"vendorhub/internal/storage"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type fakePublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, topic string, payload []byte) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return "msg-1", nil
}

type testEnv struct {
	ctx       context.Context
	orgID     string
	store     *memory.Store
	objects   *storage.MemoryStore
	publisher *fakePublisher

	activity ActivityService
	subs     SubscriptionService
	vendors  VendorService
	orgs     OrganizationService
	docs     DocumentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	store.SetClock(fixedClock)
	orgID, err := memory.Seed(context.Background(), store, "owner-1", "owner@acme.test")
	require.NoError(t, err)

	log := zerolog.Nop()
	pub := &fakePublisher{}
	objects := storage.NewMemoryStore("http://objects.test")
	activity := NewActivityService(store, pub, "activity", log)

	subs := NewSubscriptionService(store, store, store, activity, log)
	subs.(*subscriptionService).now = fixedClock
	docs := NewDocumentService(store, store, store, objects, activity, 1<<10, log)
	docs.(*documentService).now = fixedClock

	return &testEnv{
		ctx:       WithActor(context.Background(), Actor{UserID: "owner-1", Email: "owner@acme.test", OrganizationID: orgID, Role: model.RoleOwner}),
		orgID:     orgID,
		store:     store,
		objects:   objects,
		publisher: pub,
		activity:  activity,
		subs:      subs,
		vendors:   NewVendorService(store, store, activity, log),
		orgs:      NewOrganizationService(store, subs, store, activity, log),
		docs:      docs,
	}
}

func (e *testEnv) subscription(t *testing.T, name string) analytics.EnhancedSubscription {
	t.Helper()
	subs, err := e.subs.GetEnhancedSubscriptions(e.ctx, e.orgID, nil)
	require.NoError(t, err)
	for _, s := range subs {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("subscription %q not seeded", name)
	return analytics.EnhancedSubscription{}
}

func (e *testEnv) vendorID(t *testing.T, name string) string {
	t.Helper()
	vendors, err := e.vendors.ListVendors(e.ctx, e.orgID)
	require.NoError(t, err)
	for _, v := range vendors {
		if v.Name == name {
			return v.ID
		}
	}
	t.Fatalf("vendor %q not seeded", name)
	return ""
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
