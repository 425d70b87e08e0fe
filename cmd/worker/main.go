package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/codevaulthq/codevault/adapters/event"
	"github.com/codevaulthq/codevault/adapters/persistence"
	"github.com/codevaulthq/codevault/internal/application/service"
	"github.com/codevaulthq/codevault/internal/config"
	"github.com/codevaulthq/codevault/pkg/logger"
)

// The worker keeps the catalog cache warm: every project or vote event
// rebuilds the snapshot from Postgres, so readers almost always hit Redis.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting CodeVault Catalog Worker...")

	if !cfg.KafkaEnabled() || !cfg.RedisEnabled() {
		appLogger.Fatal("worker requires both Kafka and Redis to be configured", nil)
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	projectRepo := persistence.NewPostgresProjectRepo(dbPool, appLogger)
	catalogCache := persistence.NewRedisCatalogCache(redisClient, appLogger)

	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Kafka.Brokers,
		GroupID:     "catalog-warmer-group",
		GroupTopics: []string{event.TopicProjectEvents, event.TopicVoteEvents},
		MinBytes:    10e3,
		MaxBytes:    10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening",
		zap.Strings("topics", []string{event.TopicProjectEvents, event.TopicVoteEvents}))

	ctx := context.Background()
	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload service.ProjectEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("Failed to unmarshal event, skipping", err,
				zap.String("topic", msg.Topic))
			commitMessage(consumer, msg, appLogger)
			continue
		}

		appLogger.Info("Rewarming catalog cache",
			zap.String("event_type", payload.EventType),
			zap.String("project_id", payload.ProjectID.String()))

		snapshot, err := projectRepo.ListAll(ctx)
		if err != nil {
			appLogger.Error("Failed to load catalog snapshot", err)
			continue
		}
		if err := catalogCache.Set(ctx, snapshot); err != nil {
			appLogger.Error("Failed to write catalog cache", err)
			continue
		}

		commitMessage(consumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
