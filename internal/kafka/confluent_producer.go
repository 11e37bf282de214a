package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	pkglog "github.com/SKT-TRTR/zyrok-mobile-app/pkg/log"
)

// ConfluentProducer implements EngagementEventProducer using
// confluent-kafka-go.
type ConfluentProducer struct {
	producer *kafka.Producer
	topic    string
	doneCh   chan struct{}
}

// NewConfluentProducer creates a new Kafka producer for engagement events.
func NewConfluentProducer(brokers, topic string, partitions int) (*ConfluentProducer, error) {
	if err := ensureTopic(brokers, topic, partitions); err != nil {
		pkglog.L().Warn().Err(err).Str("topic", topic).Msg("failed to ensure topic, may already exist")
	}

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "1",
		"linger.ms":         5,
		"compression.type":  "snappy",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	cp := &ConfluentProducer{
		producer: p,
		topic:    topic,
		doneCh:   make(chan struct{}),
	}

	go cp.deliveryReportHandler()

	return cp, nil
}

func ensureTopic(brokers, topic string, partitions int) error {
	admin, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := admin.CreateTopics(ctx, []kafka.TopicSpecification{
		{
			Topic:             topic,
			NumPartitions:     partitions,
			ReplicationFactor: 1,
		},
	})
	if err != nil {
		return err
	}

	for _, result := range results {
		if result.Error.Code() != kafka.ErrNoError && result.Error.Code() != kafka.ErrTopicAlreadyExists {
			return fmt.Errorf("failed to create topic %s: %v", result.Topic, result.Error)
		}
	}

	return nil
}

func (cp *ConfluentProducer) deliveryReportHandler() {
	l := pkglog.L()
	for e := range cp.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				l.Error().Err(ev.TopicPartition.Error).Msg("kafka delivery failed")
			}
		}
	}
	close(cp.doneCh)
}

// produceEvent keys messages by acting user so one user's engagement
// stream stays ordered within a partition.
func (cp *ConfluentProducer) produceEvent(ctx context.Context, event *EngagementEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal engagement event: %w", err)
	}

	err = cp.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &cp.topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(event.UserID),
		Value: value,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	return nil
}

// ProduceCommentCreated publishes a comment_created event.
func (cp *ConfluentProducer) ProduceCommentCreated(ctx context.Context, userID, videoID, commentID string) error {
	return cp.produceEvent(ctx, &EngagementEvent{
		Type:      EventCommentCreated,
		UserID:    userID,
		VideoID:   videoID,
		CommentID: commentID,
		Active:    true,
		Timestamp: time.Now().Unix(),
	})
}

// ProduceLikeToggled publishes a like_toggled event with the post-toggle state.
func (cp *ConfluentProducer) ProduceLikeToggled(ctx context.Context, userID, videoID, commentID string, liked bool) error {
	return cp.produceEvent(ctx, &EngagementEvent{
		Type:      EventLikeToggled,
		UserID:    userID,
		VideoID:   videoID,
		CommentID: commentID,
		Active:    liked,
		Timestamp: time.Now().Unix(),
	})
}

// ProduceFollowToggled publishes a follow_toggled event with the post-toggle state.
func (cp *ConfluentProducer) ProduceFollowToggled(ctx context.Context, userID, targetUserID string, following bool) error {
	return cp.produceEvent(ctx, &EngagementEvent{
		Type:       EventFollowToggled,
		UserID:     userID,
		TargetUser: targetUserID,
		Active:     following,
		Timestamp:  time.Now().Unix(),
	})
}

// Close flushes pending messages and closes the producer.
func (cp *ConfluentProducer) Close() error {
	cp.producer.Flush(5000)
	cp.producer.Close()
	<-cp.doneCh
	return nil
}

var _ EngagementEventProducer = (*ConfluentProducer)(nil)
