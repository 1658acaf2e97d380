package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bsm/redislock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorhub/internal/analytics"
	"vendorhub/internal/metrics"
	"vendorhub/internal/model"
	"vendorhub/internal/repository/memory"
	"vendorhub/internal/service"
)

type fakeQueue struct {
	mu   sync.Mutex
	jobs []Job
	err  error
}

func (q *fakeQueue) Send(_ context.Context, queue string, payload []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	var j Job
	if err := json.Unmarshal(payload, &j); err != nil {
		return err
	}
	q.jobs = append(q.jobs, j)
	return nil
}

type fixture struct {
	ctx     context.Context
	orgID   string
	store   *memory.Store
	subs    service.SubscriptionService
	mr      *miniredis.Miniredis
	rdb     *redis.Client
	queue   *fakeQueue
	scanner *Scanner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	orgID, err := memory.Seed(ctx, store, "owner-1", "owner@acme.test")
	require.NoError(t, err)
	store.AddMember(orgID, model.Profile{ID: "admin-1", Email: "admin@acme.test", Role: model.RoleAdmin})
	store.AddMember(orgID, model.Profile{ID: "member-1", Email: "member@acme.test", Role: model.RoleMember})

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	log := zerolog.Nop()
	activity := service.NewActivityService(store, nil, "", log)
	subs := service.NewSubscriptionService(store, store, store, activity, log)
	queue := &fakeQueue{}
	scanner := NewScanner(store, subs, rdb, queue, Options{QueueName: "renewal_reminders", Concurrency: 2}, log)

	return &fixture{ctx: ctx, orgID: orgID, store: store, subs: subs, mr: mr, rdb: rdb, queue: queue, scanner: scanner}
}

func TestScanOnceQueuesAlerts(t *testing.T) {
	f := newFixture(t)
	before := testutil.ToFloat64(metrics.RemindersEnqueued)

	res, err := f.scanner.ScanOnce(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Organizations)
	assert.Equal(t, 3, res.Enqueued)
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.RemindersEnqueued)-before)

	require.Len(t, f.queue.jobs, 3)
	first := f.queue.jobs[0]
	assert.Equal(t, "Slack Pro", first.SubscriptionName)
	assert.Equal(t, "Slack Technologies", first.VendorName)
	assert.Equal(t, "80.00", first.Cost)
	assert.Equal(t, analytics.UrgencyUrgent, first.Urgency)
	assert.ElementsMatch(t, []string{"owner@acme.test", "admin@acme.test"}, first.Recipients)

	assert.False(t, f.queue.jobs[1].AutoRenew, "manual renewals are still reminded")
	assert.True(t, f.mr.Exists(DedupKey(first.SubscriptionID, first.RenewalDate, first.Urgency)))
	assert.False(t, f.mr.Exists(ScanLockKey), "lock is released after the scan")
}

func TestScanOnceDeduplicates(t *testing.T) {
	f := newFixture(t)

	_, err := f.scanner.ScanOnce(f.ctx)
	require.NoError(t, err)
	res, err := f.scanner.ScanOnce(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Enqueued)
	assert.Equal(t, 3, res.Duplicates)
	assert.Len(t, f.queue.jobs, 3)

	// A renewal moving to a new date is a new reminder.
	slack := f.queue.jobs[0].SubscriptionID
	next := time.Now().UTC().AddDate(0, 0, 2)
	_, err = f.subs.RenewSubscription(f.ctx, f.orgID, slack, nil, &next)
	require.NoError(t, err)
	res, err = f.scanner.ScanOnce(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Enqueued)
}

func TestScanOnceSkipsCancelled(t *testing.T) {
	f := newFixture(t)
	subs, err := f.subs.GetEnhancedSubscriptions(f.ctx, f.orgID, nil)
	require.NoError(t, err)
	for _, s := range subs {
		if s.Name == "GitHub Team" {
			_, err := f.subs.CancelSubscription(f.ctx, f.orgID, s.ID, nil)
			require.NoError(t, err)
		}
	}

	res, err := f.scanner.ScanOnce(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Enqueued)
	for _, j := range f.queue.jobs {
		assert.NotEqual(t, "GitHub Team", j.SubscriptionName)
	}
}

func TestScanOnceRespectsLock(t *testing.T) {
	f := newFixture(t)
	lock, err := redislock.New(f.rdb).Obtain(f.ctx, ScanLockKey, time.Minute, nil)
	require.NoError(t, err)
	defer lock.Release(f.ctx)

	res, err := f.scanner.ScanOnce(f.ctx)
	require.NoError(t, err)
	assert.True(t, res.Locked)
	assert.Empty(t, f.queue.jobs)
}

func TestScanOnceReleasesClaimOnEnqueueFailure(t *testing.T) {
	f := newFixture(t)
	f.queue.err = errors.New("queue unavailable")

	_, err := f.scanner.ScanOnce(f.ctx)
	require.Error(t, err)
	assert.Empty(t, f.mr.Keys())

	f.queue.err = nil
	res, err := f.scanner.ScanOnce(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Enqueued)
}

func TestScanOnceWithoutRecipients(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.InitializeOrganization(f.ctx, "member-1", "Orphan", nil)
	require.NoError(t, err)
	_, err = f.store.UpdateMemberRole(f.ctx, mustOrgOf(t, f.store, "member-1"), "member-1", model.RoleViewer)
	require.NoError(t, err)

	res, err := f.scanner.ScanOnce(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Organizations)
	assert.Equal(t, 3, res.Enqueued)
}

func mustOrgOf(t *testing.T, s *memory.Store, userID string) string {
	t.Helper()
	p, err := s.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, p.OrganizationID)
	return *p.OrganizationID
}

func TestDedupKey(t *testing.T) {
	assert.Equal(t, "reminder:sub-1:2025-06-06:urgent", DedupKey("sub-1", "2025-06-06", analytics.UrgencyUrgent))
}
