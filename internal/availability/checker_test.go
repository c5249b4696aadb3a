package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestIsDateAvailable(t *testing.T) {
	cal := &VenueCalendar{
		VenueID:          uuid.New(),
		UnavailableDates: []string{"2026-06-03"},
		BlackoutDates:    []string{"2026-12-25"},
	}

	existing := []BookedShow{
		{Date: day("2026-06-05"), Status: "confirmed"},
		{Date: day("2026-06-06"), Status: "cancelled"},
		{Date: day("2026-06-07"), Status: "hold"},
	}

	assert.True(t, IsDateAvailable(cal, existing, day("2026-06-01")))
	assert.False(t, IsDateAvailable(cal, existing, day("2026-06-03")), "unavailable date")
	assert.False(t, IsDateAvailable(cal, existing, day("2026-12-25")), "blackout date")
	assert.False(t, IsDateAvailable(cal, existing, day("2026-06-05")), "confirmed show blocks")
	assert.False(t, IsDateAvailable(cal, existing, day("2026-06-07")), "held show blocks")
	assert.True(t, IsDateAvailable(cal, existing, day("2026-06-06")), "cancelled show does not block")
}

func TestIsDateAvailableIgnoresTimeOfDay(t *testing.T) {
	cal := &VenueCalendar{VenueID: uuid.New()}
	existing := []BookedShow{
		{Date: day("2026-06-05").Add(20 * time.Hour), Status: "accepted"},
	}

	morning := day("2026-06-05").Add(9 * time.Hour)
	assert.False(t, IsDateAvailable(cal, existing, morning))
}

func TestWithinWindow(t *testing.T) {
	start, end := day("2026-06-01"), day("2026-06-07")

	assert.True(t, WithinWindow(day("2026-06-01"), start, end), "start inclusive")
	assert.True(t, WithinWindow(day("2026-06-07"), start, end), "end inclusive")
	assert.True(t, WithinWindow(day("2026-06-04"), start, end))
	assert.False(t, WithinWindow(day("2026-05-31"), start, end))
	assert.False(t, WithinWindow(day("2026-06-08"), start, end))
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(day("2026-06-04"), day("2026-06-04").Add(23*time.Hour)))
	assert.False(t, SameDay(day("2026-06-04"), day("2026-06-05")))
}
