package notifications

import (
	"context"
	"sync"

	"tourboard/pkg/logger"
)

// EmailService delivers a notification to its recipient.
type EmailService interface {
	SendNotification(ctx context.Context, notification *Notification) error
}

// MockEmailService logs deliveries instead of talking to an SMTP server.
// Real delivery is a deployment concern; the contract is the interface.
type MockEmailService struct {
	mu   sync.Mutex
	sent []Notification
	log  *logger.Logger
}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{log: logger.GetDefault()}
}

func (m *MockEmailService) SendNotification(ctx context.Context, notification *Notification) error {
	m.mu.Lock()
	m.sent = append(m.sent, *notification)
	m.mu.Unlock()

	m.log.InfoContext(ctx, "email delivered",
		"type", string(notification.Type),
		"recipient", notification.RecipientName,
		"subject", notification.Subject,
	)
	return nil
}

// Sent returns a copy of everything delivered so far.
func (m *MockEmailService) Sent() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.sent))
	copy(out, m.sent)
	return out
}
