package bids

import "time"

// SubmitBidPayload is the venue's offer body for POST /requests/:id/bids.
type SubmitBidPayload struct {
	VenueID string `json:"venue_id" binding:"required,uuid"`

	ProposedDate     time.Time `json:"proposed_date" binding:"required"`
	AlternativeDates []string  `json:"alternative_dates" binding:"omitempty,dive,datetime=2006-01-02"`

	Guarantee       float64 `json:"guarantee" binding:"omitempty,gte=0"`
	DoorDealSplit   string  `json:"door_deal_split" binding:"omitempty,max=50"`
	DoorDealMinimum float64 `json:"door_deal_minimum" binding:"omitempty,gte=0"`

	TicketPriceAdvance float64 `json:"ticket_price_advance" binding:"omitempty,gte=0"`
	TicketPriceDoor    float64 `json:"ticket_price_door" binding:"omitempty,gte=0"`

	Capacity       int    `json:"capacity"`
	AgeRestriction string `json:"age_restriction" binding:"omitempty,oneof=all-ages 18+ 21+ flexible"`

	EquipmentProvided map[string]bool `json:"equipment_provided"`
	Promotion         map[string]bool `json:"promotion"`
	Lodging           string          `json:"lodging" binding:"omitempty,max=255"`

	LoadIn     string `json:"load_in" binding:"omitempty,max=10"`
	Soundcheck string `json:"soundcheck" binding:"omitempty,max=10"`
	DoorsOpen  string `json:"doors_open" binding:"omitempty,max=10"`
	ShowTime   string `json:"show_time" binding:"omitempty,max=10"`
	Curfew     string `json:"curfew" binding:"omitempty,max=10"`

	BillingPosition string `json:"billing_position" binding:"omitempty,max=50"`
	LineupPosition  int    `json:"lineup_position" binding:"omitempty,gte=1"`
	SetLength       int    `json:"set_length" binding:"omitempty,gte=1"`
	OtherActs       string `json:"other_acts" binding:"omitempty,max=500"`
	BillingNotes    string `json:"billing_notes"`

	Message         string `json:"message"`
	AdditionalTerms string `json:"additional_terms"`
}

// PatchBidPayload drives the bid state machine from PATCH /bids/:id.
type PatchBidPayload struct {
	Action string `json:"action" binding:"required,oneof=hold accept decline cancel"`
	Reason string `json:"reason" binding:"omitempty,max=500"`
}
