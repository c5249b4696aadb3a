package notifications

import (
	"context"
	"fmt"

	"tourboard/internal/shared/config"
	"tourboard/pkg/logger"
)

// Service owns the producer/consumer pair for the notification bus.
// When the bus is disabled (local development without Kafka) the
// publishers silently no-op.
type Service struct {
	cfg      config.KafkaConfig
	producer Producer
	consumer Consumer
	email    EmailService
	log      *logger.Logger
}

func NewService(cfg config.KafkaConfig) (*Service, error) {
	s := &Service{
		cfg:   cfg,
		email: NewMockEmailService(),
		log:   logger.GetDefault(),
	}
	if !cfg.Enabled {
		s.log.Info("notification bus disabled")
		return s, nil
	}

	producer, err := NewKafkaProducer(cfg)
	if err != nil {
		return nil, fmt.Errorf("notification producer: %w", err)
	}
	consumer, err := NewKafkaConsumer(cfg, s.email)
	if err != nil {
		producer.Close()
		return nil, fmt.Errorf("notification consumer: %w", err)
	}

	s.producer = producer
	s.consumer = consumer
	return s, nil
}

// Start launches the consumer workers.
func (s *Service) Start(ctx context.Context) error {
	if s.consumer == nil {
		return nil
	}
	return s.consumer.Start(ctx, 2)
}

// Stop shuts the bus down, consumer first so in-flight sends drain.
func (s *Service) Stop() {
	if s.consumer != nil {
		if err := s.consumer.Stop(); err != nil {
			s.log.WithError(err).Error("failed to stop notification consumer")
		}
	}
	if s.producer != nil {
		if err := s.producer.Close(); err != nil {
			s.log.WithError(err).Error("failed to close notification producer")
		}
	}
}

// publish is the best-effort send every adapter goes through.
func (s *Service) publish(ctx context.Context, notification *Notification) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, notification); err != nil {
		s.log.WithError(err).Error("failed to publish notification", "type", string(notification.Type))
	}
}
