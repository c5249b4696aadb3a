package shows

import (
	"time"

	"github.com/google/uuid"
)

// ConfirmDirectShowRequest books a date without a prior bid, for shows
// negotiated offline between the parties.
type ConfirmDirectShowRequest struct {
	ArtistID   string `json:"artist_id" binding:"required,uuid"`
	ArtistName string `json:"artist_name" binding:"required,min=2,max=255"`
	VenueID    string `json:"venue_id" binding:"required,uuid"`

	Date time.Time `json:"date" binding:"required"`

	Guarantee       float64 `json:"guarantee" binding:"omitempty,gte=0"`
	DoorDealSplit   string  `json:"door_deal_split" binding:"omitempty,max=50"`
	DoorDealMinimum float64 `json:"door_deal_minimum" binding:"omitempty,gte=0"`

	LoadIn     string `json:"load_in" binding:"omitempty,max=10"`
	Soundcheck string `json:"soundcheck" binding:"omitempty,max=10"`
	DoorsOpen  string `json:"doors_open" binding:"omitempty,max=10"`
	ShowTime   string `json:"show_time" binding:"omitempty,max=10"`
	Curfew     string `json:"curfew" binding:"omitempty,max=10"`
}

// CreateFromBidInput carries everything the negotiation engine resolved
// out of a winning bid and its parent request.
type CreateFromBidInput struct {
	BidID         uuid.UUID
	TourRequestID uuid.UUID

	ArtistID   uuid.UUID
	ArtistName string
	VenueID    uuid.UUID
	VenueName  string

	Date  time.Time
	City  string
	State string

	Capacity       int
	AgeRestriction string

	Guarantee       float64
	DoorDealSplit   string
	DoorDealMinimum float64

	LoadIn     string
	Soundcheck string
	DoorsOpen  string
	ShowTime   string
	Curfew     string
}
