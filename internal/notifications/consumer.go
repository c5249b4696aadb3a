package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tourboard/internal/shared/config"
	"tourboard/pkg/logger"

	"github.com/IBM/sarama"
)

// Consumer drains the notification topic and hands messages to the
// email service.
type Consumer interface {
	Start(ctx context.Context, workers int) error
	Stop() error
}

type kafkaConsumer struct {
	group        sarama.ConsumerGroup
	topics       []string
	emailService EmailService
	cancel       context.CancelFunc
	log          *logger.Logger
}

func NewKafkaConsumer(cfg config.KafkaConfig, emailService EmailService) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaConsumer{
		group:        group,
		topics:       []string{cfg.NotificationTopic},
		emailService: emailService,
		log:          logger.GetDefault(),
	}, nil
}

func (c *kafkaConsumer) Start(ctx context.Context, workers int) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		for err := range c.group.Errors() {
			c.log.WithError(err).Error("consumer group error")
		}
	}()

	for i := 0; i < workers; i++ {
		go c.runWorker(ctx, i)
	}

	c.log.Info("notification consumers started", "workers", workers, "topics", c.topics)
	return nil
}

func (c *kafkaConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &groupHandler{
		emailService: c.emailService,
		workerID:     workerID,
		log:          c.log,
	}
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := c.group.Consume(ctx, c.topics, handler); err != nil {
				c.log.WithError(err).Error("consume failed", "worker", workerID)
				time.Sleep(time.Second)
			}
		}
	}
}

func (c *kafkaConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	if err := c.group.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type groupHandler struct {
	emailService EmailService
	workerID     int
	log          *logger.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			if err := h.process(session.Context(), message); err != nil {
				h.log.WithError(err).Error("failed to process notification", "worker", h.workerID)
			} else {
				session.MarkMessage(message, "")
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *groupHandler) process(ctx context.Context, message *sarama.ConsumerMessage) error {
	var notification Notification
	if err := json.Unmarshal(message.Value, &notification); err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}

	notification.Status = NotificationStatusSending
	if err := h.sendWithRetry(ctx, &notification); err != nil {
		notification.MarkFailed(err)
		return err
	}
	notification.MarkSent()
	return nil
}

func (h *groupHandler) sendWithRetry(ctx context.Context, notification *Notification) error {
	const maxRetries = 3
	backoff := time.Second

	for attempt := 0; ; attempt++ {
		err := h.emailService.SendNotification(ctx, notification)
		if err == nil {
			return nil
		}
		if attempt == maxRetries {
			return err
		}
		notification.RetryCount++

		select {
		case <-time.After(backoff * time.Duration(1<<attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
