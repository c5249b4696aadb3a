package bids

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// StringList stores a list of strings as jsonb.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, l)
}

func (StringList) GormDataType() string {
	return "jsonb"
}

// BoolMap stores a set of named flags as jsonb.
type BoolMap map[string]bool

func (m BoolMap) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(map[string]bool{})
	}
	return json.Marshal(m)
}

func (m *BoolMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, m)
}

func (BoolMap) GormDataType() string {
	return "jsonb"
}

// VenueBid is a venue's offer against a tour request. At most one bid per
// request ever reaches accepted; hold positions among concurrently held
// bids are dense starting at 1, ordered by held_at.
type VenueBid struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TourRequestID uuid.UUID `gorm:"type:uuid;index;not null" json:"tour_request_id"`
	VenueID       uuid.UUID `gorm:"type:uuid;index;not null" json:"venue_id"`
	VenueName     string    `gorm:"not null;size:255" json:"venue_name"`

	ProposedDate     time.Time  `gorm:"not null" json:"proposed_date"`
	AlternativeDates StringList `gorm:"type:jsonb" json:"alternative_dates"`

	Guarantee       float64 `json:"guarantee"`
	DoorDealSplit   string  `gorm:"size:50" json:"door_deal_split,omitempty"`
	DoorDealMinimum float64 `json:"door_deal_minimum,omitempty"`

	TicketPriceAdvance float64 `json:"ticket_price_advance,omitempty"`
	TicketPriceDoor    float64 `json:"ticket_price_door,omitempty"`

	Capacity       int    `gorm:"not null" json:"capacity"`
	AgeRestriction string `gorm:"type:varchar(20)" json:"age_restriction"`

	EquipmentProvided BoolMap `gorm:"type:jsonb" json:"equipment_provided"`
	Promotion         BoolMap `gorm:"type:jsonb" json:"promotion"`
	Lodging           string  `gorm:"size:255" json:"lodging,omitempty"`

	LoadIn     string `gorm:"size:10" json:"load_in,omitempty"`
	Soundcheck string `gorm:"size:10" json:"soundcheck,omitempty"`
	DoorsOpen  string `gorm:"size:10" json:"doors_open,omitempty"`
	ShowTime   string `gorm:"size:10" json:"show_time,omitempty"`
	Curfew     string `gorm:"size:10" json:"curfew,omitempty"`

	BillingPosition string `gorm:"size:50" json:"billing_position,omitempty"`
	LineupPosition  int    `json:"lineup_position,omitempty"`
	SetLength       int    `json:"set_length,omitempty"`
	OtherActs       string `gorm:"size:500" json:"other_acts,omitempty"`
	BillingNotes    string `gorm:"type:text" json:"billing_notes,omitempty"`

	Message         string `gorm:"type:text" json:"message,omitempty"`
	AdditionalTerms string `gorm:"type:text" json:"additional_terms,omitempty"`

	Status Status `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	// Populated only while status is hold
	HoldPosition *int       `json:"hold_position,omitempty"`
	HeldAt       *time.Time `json:"held_at,omitempty"`
	HeldUntil    *time.Time `json:"held_until,omitempty"`

	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	DeclinedAt      *time.Time `json:"declined_at,omitempty"`
	DeclinedReason  string     `gorm:"size:500" json:"declined_reason,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CancelledReason string     `gorm:"size:500" json:"cancelled_reason,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (VenueBid) TableName() string {
	return "venue_bids"
}

// clearHold drops the hold metadata when a bid leaves the hold state.
func (b *VenueBid) clearHold() {
	b.HoldPosition = nil
	b.HeldAt = nil
	b.HeldUntil = nil
}
