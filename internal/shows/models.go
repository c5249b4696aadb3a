package shows

import (
	"time"

	"github.com/google/uuid"
)

// Show is a booked date between an artist and a venue, either confirmed
// out of a winning bid or negotiated directly offline.
type Show struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	ArtistID   uuid.UUID `gorm:"type:uuid;index;not null" json:"artist_id"`
	ArtistName string    `gorm:"not null;size:255" json:"artist_name"`
	VenueID    uuid.UUID `gorm:"type:uuid;index;not null" json:"venue_id"`
	VenueName  string    `gorm:"not null;size:255" json:"venue_name"`

	Date  time.Time `gorm:"not null;index" json:"date"`
	City  string    `gorm:"size:100" json:"city"`
	State string    `gorm:"size:100" json:"state"`

	Capacity       int    `gorm:"not null" json:"capacity"`
	AgeRestriction string `gorm:"type:varchar(20)" json:"age_restriction"`

	Guarantee       float64 `json:"guarantee,omitempty"`
	DoorDealSplit   string  `gorm:"size:50" json:"door_deal_split,omitempty"`
	DoorDealMinimum float64 `json:"door_deal_minimum,omitempty"`

	LoadIn     string `gorm:"size:10" json:"load_in,omitempty"`
	Soundcheck string `gorm:"size:10" json:"soundcheck,omitempty"`
	DoorsOpen  string `gorm:"size:10" json:"doors_open,omitempty"`
	ShowTime   string `gorm:"size:10" json:"show_time,omitempty"`
	Curfew     string `gorm:"size:10" json:"curfew,omitempty"`

	Status Status `gorm:"type:varchar(20);default:'confirmed';index" json:"status"`

	// Set only for shows born from a winning bid
	BidID         *uuid.UUID `gorm:"type:uuid" json:"bid_id,omitempty"`
	TourRequestID *uuid.UUID `gorm:"type:uuid;index" json:"tour_request_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Show) TableName() string {
	return "shows"
}
