package main

import (
	"context"
	"time"

	"vendorhub/internal/config"
	"vendorhub/internal/logger"

	"cloud.google.com/go/pubsub"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const retention = 7 * 24 * time.Hour

func main() {
	logger := logger.New()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("No .env file found, relying on system environment variables")
	}
	logger.Info().Msg("Starting Pub/Sub setup for the local emulator")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Failed to load config: %v", err)
	}
	if cfg.GCPProjectID == "" {
		logger.Fatal().Msg("GCP_PROJECT_ID is not set")
	}
	if cfg.PubSubEmulatorHost == "" {
		logger.Fatal().Msg("PUBSUB_EMULATOR_HOST must be set; this tool only targets the emulator")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := pubsub.NewClient(ctx, cfg.GCPProjectID,
		option.WithEndpoint(cfg.PubSubEmulatorHost),
		option.WithoutAuthentication(),
	)
	if err != nil {
		logger.Fatal().Msgf("Failed to create Pub/Sub client: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error().Msgf("Failed to close Pub/Sub client: %v", err)
		}
	}()

	resetEmulator(ctx, client, logger)

	topic := ensureTopic(ctx, client, logger, cfg.ActivityTopic)
	ensureSubscription(ctx, client, logger, cfg.ActivityTopic+"-audit-sub", pubsub.SubscriptionConfig{
		Topic:             topic,
		AckDeadline:       60 * time.Second,
		RetentionDuration: retention,
	})
	logger.Info().Msg("Pub/Sub setup for the local emulator complete")
}

// resetEmulator deletes every subscription and topic. Emulator only.
func resetEmulator(ctx context.Context, client *pubsub.Client, logger zerolog.Logger) {
	subs := client.Subscriptions(ctx)
	for {
		sub, err := subs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Fatal().Msgf("Failed to list subscriptions: %v", err)
		}
		if err := sub.Delete(ctx); err != nil {
			logger.Warn().Msgf("Failed to delete subscription %s: %v", sub.ID(), err)
		}
	}
	topics := client.Topics(ctx)
	for {
		t, err := topics.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Fatal().Msgf("Failed to list topics: %v", err)
		}
		if err := t.Delete(ctx); err != nil {
			logger.Warn().Msgf("Failed to delete topic %s: %v", t.ID(), err)
		}
	}
}

func ensureTopic(ctx context.Context, client *pubsub.Client, logger zerolog.Logger, topicID string) *pubsub.Topic {
	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		logger.Fatal().Msgf("Failed to check topic %s: %v", topicID, err)
	}
	if exists {
		return topic
	}
	logger.Info().Msgf("Creating topic %s", topicID)
	topic, err = client.CreateTopicWithConfig(ctx, topicID, &pubsub.TopicConfig{RetentionDuration: retention})
	if err != nil {
		logger.Fatal().Msgf("Failed to create topic %s: %v", topicID, err)
	}
	return topic
}

func ensureSubscription(ctx context.Context, client *pubsub.Client, logger zerolog.Logger, subID string, cfg pubsub.SubscriptionConfig) {
	sub := client.Subscription(subID)
	exists, err := sub.Exists(ctx)
	if err != nil {
		logger.Fatal().Msgf("Failed to check subscription %s: %v", subID, err)
	}
	if exists {
		logger.Info().Msgf("Subscription %s already exists", subID)
		return
	}
	logger.Info().Msgf("Creating pull subscription %s", subID)
	if _, err := client.CreateSubscription(ctx, subID, cfg); err != nil {
		logger.Fatal().Msgf("Failed to create subscription %s: %v", subID, err)
	}
}
