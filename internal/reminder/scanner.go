package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"vendorhub/internal/analytics"
	"vendorhub/internal/metrics"
	"vendorhub/internal/model"
	"vendorhub/internal/repository"
	"vendorhub/internal/service"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ScanLockKey serialises scans across worker replicas.
const ScanLockKey = "reminders:scan"

// Enqueuer places a payload on a named queue.
type Enqueuer interface {
	Send(ctx context.Context, queue string, payload []byte) error
}

// Options tunes a Scanner.
type Options struct {
	QueueName   string
	Concurrency int
	DedupTTL    time.Duration
	LockTTL     time.Duration
}

// Result summarises one scan.
type Result struct {
	Organizations int
	Enqueued      int
	Duplicates    int
	Locked        bool
}

// Scanner turns renewal alerts into queued reminder jobs.
type Scanner struct {
	orgs   repository.OrganizationRepository
	subs   service.SubscriptionService
	rdb    *redis.Client
	locker *redislock.Client
	queue  Enqueuer
	opts   Options
	logger zerolog.Logger
}

// NewScanner creates a Scanner. Zero options fall back to a concurrency of 1,
// a 45 day dedup window and a 15 minute lock.
func NewScanner(
	orgs repository.OrganizationRepository,
	subs service.SubscriptionService,
	rdb *redis.Client,
	queue Enqueuer,
	opts Options,
	logger zerolog.Logger,
) *Scanner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.DedupTTL <= 0 {
		opts.DedupTTL = 45 * 24 * time.Hour
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 15 * time.Minute
	}
	return &Scanner{
		orgs:   orgs,
		subs:   subs,
		rdb:    rdb,
		locker: redislock.New(rdb),
		queue:  queue,
		opts:   opts,
		logger: logger.With().Str("component", "ReminderScanner").Logger(),
	}
}

// ScanOnce scans every organization. When another replica holds the scan
// lock it returns immediately with Locked set.
func (s *Scanner) ScanOnce(ctx context.Context) (Result, error) {
	lock, err := s.locker.Obtain(ctx, ScanLockKey, s.opts.LockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		s.logger.Info().Msg("Scan already running elsewhere, skipping")
		return Result{Locked: true}, nil
	} else if err != nil {
		return Result{}, fmt.Errorf("obtain scan lock: %w", err)
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			s.logger.Warn().Err(err).Msg("Failed to release scan lock")
		}
	}()

	orgs, err := s.orgs.ListOrganizations(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list organizations: %w", err)
	}

	var enqueued, duplicates atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for _, org := range orgs {
		g.Go(func() error {
			n, dup, err := s.scanOrganization(ctx, org)
			enqueued.Add(int64(n))
			duplicates.Add(int64(dup))
			if err != nil {
				s.logger.Error().Err(err).Str("organization_id", org.ID).Msg("Reminder scan failed for organization")
				return fmt.Errorf("organization %s: %w", org.ID, err)
			}
			return nil
		})
	}
	err = g.Wait()

	res := Result{Organizations: len(orgs), Enqueued: int(enqueued.Load()), Duplicates: int(duplicates.Load())}
	s.logger.Info().
		Int("organizations", res.Organizations).
		Int("enqueued", res.Enqueued).
		Int("duplicates", res.Duplicates).
		Msg("Reminder scan finished")
	return res, err
}

func recipients(members []model.Profile) []string {
	var out []string
	for _, m := range members {
		if m.Role.CanManageTeam() && m.Email != "" {
			out = append(out, m.Email)
		}
	}
	return out
}

// remindable keeps subscriptions that will actually renew.
func remindable(subs []analytics.EnhancedSubscription) []analytics.EnhancedSubscription {
	out := make([]analytics.EnhancedSubscription, 0, len(subs))
	for _, sub := range subs {
		if sub.Status == model.StatusActive || sub.Status == model.StatusTrial {
			out = append(out, sub)
		}
	}
	return out
}

func (s *Scanner) scanOrganization(ctx context.Context, org model.Organization) (enqueued, duplicates int, err error) {
	members, err := s.orgs.ListMembers(ctx, org.ID)
	if err != nil {
		return 0, 0, err
	}
	to := recipients(members)
	if len(to) == 0 {
		s.logger.Warn().Str("organization_id", org.ID).Msg("No owner or admin to remind")
		return 0, 0, nil
	}

	subs, err := s.subs.GetEnhancedSubscriptions(ctx, org.ID, nil)
	if err != nil {
		return 0, 0, err
	}
	for _, alert := range analytics.RenewalAlerts(remindable(subs)) {
		job := newJob(org.ID, org.Name, alert, to)
		key := DedupKey(job.SubscriptionID, job.RenewalDate, job.Urgency)

		claimed, err := s.rdb.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), s.opts.DedupTTL).Result()
		if err != nil {
			return enqueued, duplicates, fmt.Errorf("claim %s: %w", key, err)
		}
		if !claimed {
			duplicates++
			continue
		}

		payload, err := json.Marshal(job)
		if err != nil {
			return enqueued, duplicates, fmt.Errorf("encode reminder: %w", err)
		}
		if err := s.queue.Send(ctx, s.opts.QueueName, payload); err != nil {
			// Release the claim so the next scan retries.
			s.rdb.Del(context.WithoutCancel(ctx), key)
			return enqueued, duplicates, err
		}
		enqueued++
		metrics.RemindersEnqueued.Inc()
		s.logger.Debug().
			Str("subscription_id", job.SubscriptionID).
			Str("urgency", string(job.Urgency)).
			Msg("Queued renewal reminder")
	}
	return enqueued, duplicates, nil
}
