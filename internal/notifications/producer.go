package notifications

import (
	"context"
	"fmt"
	"time"

	"tourboard/internal/shared/config"
	"tourboard/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer publishes notifications to the bus.
type Producer interface {
	Publish(ctx context.Context, notification *Notification) error
	PublishBatch(ctx context.Context, notifications []*Notification) error
	Close() error
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func NewKafkaProducer(cfg config.KafkaConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaProducer{
		producer: producer,
		topic:    cfg.NotificationTopic,
		log:      logger.GetDefault(),
	}, nil
}

func (p *kafkaProducer) Publish(ctx context.Context, notification *Notification) error {
	notification.Status = NotificationStatusQueued
	notification.UpdatedAt = time.Now()

	value, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(notification.PartitionKey()),
		Value:     sarama.ByteEncoder(value),
		Headers:   headers(notification),
		Timestamp: notification.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		notification.MarkFailed(err)
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	p.log.Debug("notification published",
		"topic", p.topic,
		"partition", partition,
		"offset", offset,
		"type", string(notification.Type),
	)
	return nil
}

func (p *kafkaProducer) PublishBatch(ctx context.Context, notifications []*Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	messages := make([]*sarama.ProducerMessage, 0, len(notifications))
	for _, notification := range notifications {
		notification.Status = NotificationStatusQueued
		notification.UpdatedAt = time.Now()

		value, err := notification.ToJSON()
		if err != nil {
			p.log.WithError(err).Error("skipping unmarshalable notification", "id", notification.ID.String())
			continue
		}
		messages = append(messages, &sarama.ProducerMessage{
			Topic:     p.topic,
			Key:       sarama.StringEncoder(notification.PartitionKey()),
			Value:     sarama.ByteEncoder(value),
			Headers:   headers(notification),
			Timestamp: notification.CreatedAt,
		})
	}

	if err := p.producer.SendMessages(messages); err != nil {
		for _, notification := range notifications {
			notification.MarkFailed(err)
		}
		return fmt.Errorf("failed to publish notification batch: %w", err)
	}
	return nil
}

func (p *kafkaProducer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

func headers(notification *Notification) []sarama.RecordHeader {
	h := []sarama.RecordHeader{
		{Key: []byte("notification_id"), Value: []byte(notification.ID.String())},
		{Key: []byte("notification_type"), Value: []byte(notification.Type)},
		{Key: []byte("priority"), Value: []byte(notification.Priority)},
		{Key: []byte("recipient_id"), Value: []byte(notification.RecipientID.String())},
		{Key: []byte("producer"), Value: []byte("tourboard-notifications")},
		{Key: []byte("created_at"), Value: []byte(notification.CreatedAt.Format(time.RFC3339))},
	}
	if notification.BidID != nil {
		h = append(h, sarama.RecordHeader{Key: []byte("bid_id"), Value: []byte(notification.BidID.String())})
	}
	if notification.TourRequestID != nil {
		h = append(h, sarama.RecordHeader{Key: []byte("tour_request_id"), Value: []byte(notification.TourRequestID.String())})
	}
	if notification.InquiryID != nil {
		h = append(h, sarama.RecordHeader{Key: []byte("inquiry_id"), Value: []byte(notification.InquiryID.String())})
	}
	return h
}
