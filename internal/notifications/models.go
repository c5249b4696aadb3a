package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBidSubmitted    NotificationType = "BID_SUBMITTED"
	NotificationTypeBidHeld         NotificationType = "BID_HELD"
	NotificationTypeBidAccepted     NotificationType = "BID_ACCEPTED"
	NotificationTypeBidDeclined     NotificationType = "BID_DECLINED"
	NotificationTypeBidCancelled    NotificationType = "BID_CANCELLED"
	NotificationTypeHoldExpired     NotificationType = "HOLD_EXPIRED"
	NotificationTypeInquiryReceived NotificationType = "INQUIRY_RECEIVED"
)

type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "LOW"
	NotificationPriorityMedium NotificationPriority = "MEDIUM"
	NotificationPriorityHigh   NotificationPriority = "HIGH"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusQueued  NotificationStatus = "QUEUED"
	NotificationStatusSending NotificationStatus = "SENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification is one message on the bus, always delivered over the
// email channel.
type Notification struct {
	ID       uuid.UUID            `json:"id"`
	Type     NotificationType     `json:"type"`
	Priority NotificationPriority `json:"priority"`

	RecipientID   uuid.UUID `json:"recipient_id"`
	RecipientName string    `json:"recipient_name"`

	Subject      string                 `json:"subject"`
	TemplateData map[string]interface{} `json:"template_data"`

	BidID         *uuid.UUID `json:"bid_id,omitempty"`
	TourRequestID *uuid.UUID `json:"tour_request_id,omitempty"`
	InquiryID     *uuid.UUID `json:"inquiry_id,omitempty"`

	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

func NewNotification(notType NotificationType, recipientID uuid.UUID, recipientName, subject string) *Notification {
	return &Notification{
		ID:            uuid.New(),
		Type:          notType,
		Priority:      defaultPriority(notType),
		RecipientID:   recipientID,
		RecipientName: recipientName,
		Subject:       subject,
		TemplateData:  make(map[string]interface{}),
		Status:        NotificationStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func defaultPriority(notType NotificationType) NotificationPriority {
	switch notType {
	case NotificationTypeBidAccepted, NotificationTypeBidCancelled:
		return NotificationPriorityHigh
	case NotificationTypeHoldExpired:
		return NotificationPriorityLow
	default:
		return NotificationPriorityMedium
	}
}

func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// PartitionKey routes all messages for one tour request to the same
// partition so a venue sees its bid events in order.
func (n *Notification) PartitionKey() string {
	if n.TourRequestID != nil {
		return n.TourRequestID.String()
	}
	return n.RecipientID.String()
}

func (n *Notification) MarkSent() {
	now := time.Now()
	n.Status = NotificationStatusSent
	n.SentAt = &now
	n.UpdatedAt = now
}

func (n *Notification) MarkFailed(err error) {
	n.Status = NotificationStatusFailed
	msg := err.Error()
	n.LastError = &msg
	n.UpdatedAt = time.Now()
}
