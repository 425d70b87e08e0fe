package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/codevaulthq/codevault/internal/application/service"
	"github.com/codevaulthq/codevault/internal/config"
	"github.com/codevaulthq/codevault/pkg/logger"
)

const (
	TopicProjectEvents = "project.events"
	TopicVoteEvents    = "vote.events"
	TopicCommentEvents = "comment.events"
)

type KafkaProducerClient struct {
	ProjectEventsWriter *kafka.Writer
	VoteEventsWriter    *kafka.Writer
	CommentEventsWriter *kafka.Writer
	logger              logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	projectWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProjectEvents,
		Balancer: &kafka.LeastBytes{},
	}

	voteWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicVoteEvents,
		Balancer: &kafka.LeastBytes{},
	}

	commentWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicCommentEvents,
		Balancer: &kafka.LeastBytes{},
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		ProjectEventsWriter: projectWriter,
		VoteEventsWriter:    voteWriter,
		CommentEventsWriter: commentWriter,
		logger:              log,
	}, nil
}

func (c *KafkaProducerClient) publish(ctx context.Context, w *kafka.Writer, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishProjectEvent(ctx context.Context, payload service.ProjectEventPayload) error {
	return c.publish(ctx, c.ProjectEventsWriter, payload.ProjectID.String(), payload)
}

func (c *KafkaProducerClient) PublishVoteEvent(ctx context.Context, payload service.VoteEventPayload) error {
	return c.publish(ctx, c.VoteEventsWriter, payload.ProjectID.String(), payload)
}

func (c *KafkaProducerClient) PublishCommentEvent(ctx context.Context, payload service.CommentEventPayload) error {
	return c.publish(ctx, c.CommentEventsWriter, payload.ProjectID.String(), payload)
}

func (c *KafkaProducerClient) Close() {
	if c.ProjectEventsWriter != nil {
		c.ProjectEventsWriter.Close()
	}
	if c.VoteEventsWriter != nil {
		c.VoteEventsWriter.Close()
	}
	if c.CommentEventsWriter != nil {
		c.CommentEventsWriter.Close()
	}
	c.logger.Info("Closed Kafka Producers")
}
