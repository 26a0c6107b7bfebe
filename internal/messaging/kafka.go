package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/temcen/anirec/internal/config"
	"github.com/temcen/anirec/pkg/models"
)

const (
	DefaultRatingsTopic = "anime-ratings"
	publishTimeout      = 10 * time.Second
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// RatingPublisher writes rating change events to Kafka, keyed by user id so
// one user's events stay ordered within a partition.
type RatingPublisher struct {
	writer messageWriter
	topic  string
	logger *logrus.Logger
}

// Publisher is what the rest of the service publishes rating events through.
type Publisher interface {
	PublishRating(ctx context.Context, event *models.RatingEvent) error
	Close() error
}

// NewPublisher returns a Kafka publisher, or a NoopPublisher when no brokers
// are configured.
func NewPublisher(cfg *config.KafkaConfig, logger *logrus.Logger) Publisher {
	if len(cfg.Brokers) == 0 {
		logger.Info("No Kafka brokers configured, rating events will not be published")
		return NoopPublisher{}
	}
	return NewRatingPublisher(cfg, logger)
}

func NewRatingPublisher(cfg *config.KafkaConfig, logger *logrus.Logger) *RatingPublisher {
	topic := cfg.Topics.Ratings
	if topic == "" {
		topic = DefaultRatingsTopic
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}

	return &RatingPublisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// PublishRating writes one event. The write is bounded by publishTimeout
// unless ctx expires first.
func (p *RatingPublisher) PublishRating(ctx context.Context, event *models.RatingEvent) error {
	msg, err := buildMessage(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithError(err).WithField("event_id", event.EventID).Error("Failed to publish rating event to Kafka")
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"event_id": event.EventID,
		"user_id":  event.UserID,
		"anime_id": event.AnimeID,
		"action":   event.Action,
		"topic":    p.topic,
	}).Debug("Rating event published")

	return nil
}

func (p *RatingPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close producer: %w", err)
	}
	return nil
}

func buildMessage(event *models.RatingEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal rating event: %w", err)
	}

	userID := event.UserID.String()
	return kafka.Message{
		Key:   []byte(userID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID.String())},
			{Key: "action", Value: []byte(event.Action)},
			{Key: "timestamp", Value: []byte(event.Timestamp.Format(time.RFC3339))},
		},
		Time: event.Timestamp,
	}, nil
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishRating(context.Context, *models.RatingEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
