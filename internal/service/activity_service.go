package service

import (
	"context"
	"encoding/json"

	"vendorhub/internal/model"
	"vendorhub/internal/pubsub"
	"vendorhub/internal/repository"

	"github.com/rs/zerolog"
)

const defaultActivityLimit = 50

// ActivityService records and lists the organization activity feed.
type ActivityService interface {
	// Record stores an entry for the actor in ctx. Failures are logged, never returned.
	Record(ctx context.Context, orgID, action, resourceType string, resourceID *string, details map[string]any)
	List(ctx context.Context, orgID string, limit int) ([]model.ActivityLog, error)
}

type activityService struct {
	repo      repository.ActivityRepository
	publisher pubsub.Publisher
	topic     string
	logger    zerolog.Logger
}

// NewActivityService creates a new ActivityService. publisher may be nil.
func NewActivityService(repo repository.ActivityRepository, publisher pubsub.Publisher, topic string, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:      repo,
		publisher: publisher,
		topic:     topic,
		logger:    logger.With().Str("service", "ActivityService").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, orgID, action, resourceType string, resourceID *string, details map[string]any) {
	actor, _ := ActorFrom(ctx)
	entry := &model.ActivityLog{
		OrganizationID: orgID,
		UserID:         actor.UserID,
		Action:         action,
		ResourceType:   resourceType,
		ResourceID:     resourceID,
		Details:        details,
	}
	if err := s.repo.CreateActivity(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Str("organization_id", orgID).Msg("Failed to record activity")
		return
	}
	if s.publisher == nil || s.topic == "" {
		return
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("Failed to encode activity event")
		return
	}
	if _, err := s.publisher.Publish(ctx, s.topic, payload); err != nil {
		s.logger.Warn().Err(err).Str("topic", s.topic).Str("action", action).Msg("Failed to publish activity event")
	}
}

func (s *activityService) List(ctx context.Context, orgID string, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultActivityLimit
	}
	return s.repo.ListActivity(ctx, orgID, limit)
}
