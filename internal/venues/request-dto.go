package venues

// CreateVenueRequest registers a venue profile under the caller's account
type CreateVenueRequest struct {
	Name           string   `json:"name" binding:"required,min=2,max=255"`
	City           string   `json:"city" binding:"max=100"`
	State          string   `json:"state" binding:"max=100"`
	Capacity       int      `json:"capacity" binding:"required,min=1"`
	AgeRestriction string   `json:"age_restriction" binding:"omitempty,oneof=all-ages 18+ 21+ flexible"`
	ContactEmail   string   `json:"contact_email" binding:"omitempty,email"`
	Description    string   `json:"description" binding:"max=2000"`
	BlackoutDates  []string `json:"blackout_dates" binding:"omitempty,dive,datetime=2006-01-02"`
}

// UpdateAvailabilityRequest replaces the venue's date restrictions
type UpdateAvailabilityRequest struct {
	UnavailableDates []string `json:"unavailable_dates" binding:"omitempty,dive,datetime=2006-01-02"`
	BlackoutDates    []string `json:"blackout_dates" binding:"omitempty,dive,datetime=2006-01-02"`
}
