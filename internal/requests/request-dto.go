package requests

import "time"

// CreateRequestPayload creates a new tour request for the calling artist
type CreateRequestPayload struct {
	ArtistName  string `json:"artist_name" binding:"required,min=2,max=255"`
	Title       string `json:"title" binding:"required,min=3,max=255"`
	Description string `json:"description" binding:"max=2000"`
	Location    string `json:"location" binding:"max=255"`

	RequestDate *time.Time `json:"request_date"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Flexibility string     `json:"flexibility" binding:"omitempty,oneof=exact-cities region-flexible route-flexible"`

	Genres []string `json:"genres"`

	ExpectedDrawMin         int    `json:"expected_draw_min" binding:"omitempty,min=0"`
	ExpectedDrawMax         int    `json:"expected_draw_max" binding:"omitempty,min=0"`
	ExpectedDrawDescription string `json:"expected_draw_description" binding:"max=500"`

	Equipment        []string `json:"equipment"`
	GuaranteeMin     float64  `json:"guarantee_min" binding:"omitempty,min=0"`
	GuaranteeMax     float64  `json:"guarantee_max" binding:"omitempty,min=0"`
	AcceptsDoorDeals bool     `json:"accepts_door_deals"`
	Merchandising    bool     `json:"merchandising"`
	TravelMethod     string   `json:"travel_method" binding:"max=100"`
	Lodging          string   `json:"lodging" binding:"max=100"`
	AgeRestriction   string   `json:"age_restriction" binding:"omitempty,oneof=all-ages 18+ 21+ flexible"`
	Priority         string   `json:"priority" binding:"omitempty,oneof=high medium low"`
}

// UpdateRequestPayload mutates descriptive and negotiable fields only; the
// window and status move through dedicated operations
type UpdateRequestPayload struct {
	Title            *string  `json:"title" binding:"omitempty,min=3,max=255"`
	Description      *string  `json:"description" binding:"omitempty,max=2000"`
	Location         *string  `json:"location" binding:"omitempty,max=255"`
	Genres           []string `json:"genres"`
	Equipment        []string `json:"equipment"`
	GuaranteeMin     *float64 `json:"guarantee_min" binding:"omitempty,min=0"`
	GuaranteeMax     *float64 `json:"guarantee_max" binding:"omitempty,min=0"`
	AcceptsDoorDeals *bool    `json:"accepts_door_deals"`
	Merchandising    *bool    `json:"merchandising"`
	TravelMethod     *string  `json:"travel_method" binding:"omitempty,max=100"`
	Lodging          *string  `json:"lodging" binding:"omitempty,max=100"`
	AgeRestriction   *string  `json:"age_restriction" binding:"omitempty,oneof=all-ages 18+ 21+ flexible"`
	Priority         *string  `json:"priority" binding:"omitempty,oneof=high medium low"`
}
