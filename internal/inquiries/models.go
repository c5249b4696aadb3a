package inquiries

import (
	"time"

	"github.com/google/uuid"
)

// BookingInquiry is a free-form contact thread between one artist and one
// venue. It lives outside the bid state machine and never touches
// request or bid state.
type BookingInquiry struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	// The account that opened the thread and the one it addresses
	FromAccountID uuid.UUID `gorm:"type:uuid;index;not null" json:"from_account_id"`
	ToAccountID   uuid.UUID `gorm:"type:uuid;index;not null" json:"to_account_id"`

	Subject string `gorm:"not null;size:255" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`

	// Optional context for what the inquiry is about
	ProposedDate *time.Time `json:"proposed_date,omitempty"`

	Status Status `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`

	Responses []BookingResponse `gorm:"foreignKey:InquiryID;constraint:OnDelete:CASCADE" json:"responses,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BookingInquiry) TableName() string {
	return "booking_inquiries"
}

// BookingResponse is one follow-up message on an inquiry thread.
type BookingResponse struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	InquiryID uuid.UUID `gorm:"type:uuid;index;not null" json:"inquiry_id"`
	AccountID uuid.UUID `gorm:"type:uuid;not null" json:"account_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (BookingResponse) TableName() string {
	return "booking_responses"
}
