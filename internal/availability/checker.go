// Package availability decides whether a venue can take a show on a given
// day. It is pure: callers supply the venue calendar and the venue's
// existing shows, and get a yes/no back. Comparisons are day-granular;
// time of day is never considered.
package availability

import (
	"time"

	"github.com/google/uuid"
)

// VenueCalendar is the read-only slice of a venue the checker needs.
type VenueCalendar struct {
	VenueID          uuid.UUID `json:"venue_id"`
	UnavailableDates []string  `json:"unavailable_dates"`
	BlackoutDates    []string  `json:"blackout_dates"`
}

// BookedShow is an existing show considered when checking a date. Shows in
// a blocking status occupy their day.
type BookedShow struct {
	Date   time.Time
	Status string
}

// Statuses that make an existing show block its date.
var blockingStatuses = map[string]struct{}{
	"confirmed": {},
	"accepted":  {},
	"hold":      {},
}

const dayFormat = "2006-01-02"

// IsDateAvailable reports whether the venue can take a show on date. A
// date is unavailable if it is listed in the venue's unavailable or
// blackout dates, or if a show in a blocking status already sits on it.
func IsDateAvailable(cal *VenueCalendar, existing []BookedShow, date time.Time) bool {
	day := date.Format(dayFormat)

	for _, d := range cal.UnavailableDates {
		if d == day {
			return false
		}
	}
	for _, d := range cal.BlackoutDates {
		if d == day {
			return false
		}
	}

	for _, show := range existing {
		if _, blocking := blockingStatuses[show.Status]; !blocking {
			continue
		}
		if show.Date.Format(dayFormat) == day {
			return false
		}
	}

	return true
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Format(dayFormat) == b.Format(dayFormat)
}

// WithinWindow reports whether date falls inside [start, end], inclusive,
// at day granularity.
func WithinWindow(date, start, end time.Time) bool {
	day := date.Format(dayFormat)
	return day >= start.Format(dayFormat) && day <= end.Format(dayFormat)
}
