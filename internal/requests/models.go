package requests

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tourboard/internal/availability"
	"tourboard/internal/shared/apperrors"

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

// TourRequest is an artist's solicitation for a show: either one exact
// date or a start..end range with a flexibility mode.
type TourRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ArtistID   uuid.UUID `gorm:"type:uuid;index;not null" json:"artist_id"`
	ArtistName string    `gorm:"not null;size:255" json:"artist_name"`

	// Window: exactly one of RequestDate / (StartDate, EndDate) is set
	RequestDate *time.Time  `json:"request_date,omitempty"`
	StartDate   *time.Time  `json:"start_date,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	Flexibility Flexibility `gorm:"type:varchar(20)" json:"flexibility,omitempty"`

	Title       string     `gorm:"not null;size:255" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Location    string     `gorm:"size:255" json:"location"`
	Genres      StringList `gorm:"type:jsonb" json:"genres"`

	ExpectedDrawMin         int    `json:"expected_draw_min"`
	ExpectedDrawMax         int    `json:"expected_draw_max"`
	ExpectedDrawDescription string `gorm:"size:500" json:"expected_draw_description"`

	// Negotiable terms
	Equipment        StringList `gorm:"type:jsonb" json:"equipment"`
	GuaranteeMin     float64    `json:"guarantee_min"`
	GuaranteeMax     float64    `json:"guarantee_max"`
	AcceptsDoorDeals bool       `json:"accepts_door_deals"`
	Merchandising    bool       `json:"merchandising"`
	TravelMethod     string     `gorm:"size:100" json:"travel_method"`
	Lodging          string     `gorm:"size:100" json:"lodging"`
	AgeRestriction   string     `gorm:"type:varchar(20);default:'flexible'" json:"age_restriction"`
	Priority         Priority   `gorm:"type:varchar(10);default:'medium'" json:"priority"`

	Status Status `gorm:"type:varchar(20);default:'active';index" json:"status"`

	// Count of non-terminal bids, populated on the public timeline only
	BidCount int64 `gorm:"->;-:migration" json:"bid_count,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TourRequest) TableName() string {
	return "tour_requests"
}

// HasSingleDate reports whether the request targets one exact date.
func (r *TourRequest) HasSingleDate() bool {
	return r.RequestDate != nil
}

// WindowContains reports whether date falls inside the request's window,
// at day granularity.
func (r *TourRequest) WindowContains(date time.Time) bool {
	if r.HasSingleDate() {
		return availability.SameDay(date, *r.RequestDate)
	}
	if r.StartDate == nil || r.EndDate == nil {
		return false
	}
	return availability.WithinWindow(date, *r.StartDate, *r.EndDate)
}

// ValidateWindow enforces the window invariants: exactly one of single
// date / range, and start <= end on ranges.
func (r *TourRequest) ValidateWindow() error {
	hasSingle := r.RequestDate != nil
	hasRange := r.StartDate != nil && r.EndDate != nil

	if hasSingle == hasRange {
		return fmt.Errorf("%w: exactly one of request_date or start_date..end_date must be set", apperrors.ErrInvalidWindow)
	}
	if hasRange && r.EndDate.Before(*r.StartDate) {
		return fmt.Errorf("%w: start_date must not be after end_date", apperrors.ErrInvalidWindow)
	}
	return nil
}
