package venues

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DateList stores a set of calendar days ("2006-01-02") as jsonb.
type DateList []string

// Value implements the driver.Valuer interface for database storage
func (d DateList) Value() (driver.Value, error) {
	if d == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface for database retrieval
func (d *DateList) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, d)
}

// GormDataType tells GORM how to handle this type
func (DateList) GormDataType() string {
	return "jsonb"
}

// Contains checks whether day (date portion only) is in the list.
func (d DateList) Contains(day time.Time) bool {
	key := day.Format("2006-01-02")
	for _, v := range d {
		if v == key {
			return true
		}
	}
	return false
}

// Venue is a bookable room with its calendar restrictions.
type Venue struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null" json:"account_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	City      string    `gorm:"size:100" json:"city"`
	State     string    `gorm:"size:100" json:"state"`
	Capacity  int       `gorm:"not null;check:capacity > 0" json:"capacity"`

	AgeRestriction string `gorm:"type:varchar(20);default:'all-ages'" json:"age_restriction"`
	ContactEmail   string `gorm:"size:255" json:"contact_email"`
	Description    string `gorm:"type:text" json:"description"`

	// Days the venue will not take shows
	UnavailableDates DateList `gorm:"type:jsonb" json:"unavailable_dates"`
	BlackoutDates    DateList `gorm:"type:jsonb" json:"blackout_dates"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Venue) TableName() string {
	return "venues"
}
