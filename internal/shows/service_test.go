package shows

import (
	"context"
	"testing"
	"time"

	"tourboard/internal/availability"
	"tourboard/internal/shared/apperrors"
	"tourboard/internal/venues"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShowRepo struct {
	byID    map[uuid.UUID]*Show
	created int
}

func newFakeShowRepo() *fakeShowRepo {
	return &fakeShowRepo{byID: make(map[uuid.UUID]*Show)}
}

func (r *fakeShowRepo) Create(ctx context.Context, show *Show) error {
	show.ID = uuid.New()
	show.CreatedAt = time.Now()
	cp := *show
	r.byID[show.ID] = &cp
	r.created++
	return nil
}

func (r *fakeShowRepo) GetByID(ctx context.Context, id uuid.UUID) (*Show, error) {
	show, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *show
	return &cp, nil
}

func (r *fakeShowRepo) GetByBidID(ctx context.Context, bidID uuid.UUID) (*Show, error) {
	for _, show := range r.byID {
		if show.BidID != nil && *show.BidID == bidID {
			cp := *show
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeShowRepo) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]Show, error) {
	var out []Show
	for _, show := range r.byID {
		if show.ArtistID == artistID {
			out = append(out, *show)
		}
	}
	return out, nil
}

func (r *fakeShowRepo) ListByVenue(ctx context.Context, venueID uuid.UUID) ([]Show, error) {
	var out []Show
	for _, show := range r.byID {
		if show.VenueID == venueID {
			out = append(out, *show)
		}
	}
	return out, nil
}

func (r *fakeShowRepo) ListByVenueOnDate(ctx context.Context, venueID uuid.UUID, date time.Time) ([]Show, error) {
	day := date.Format("2006-01-02")
	var out []Show
	for _, show := range r.byID {
		if show.VenueID == venueID && show.Date.Format("2006-01-02") == day {
			out = append(out, *show)
		}
	}
	return out, nil
}

func (r *fakeShowRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	show, ok := r.byID[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	show.Status = status
	return nil
}

type fakeVenueDir struct {
	venues    map[uuid.UUID]*venues.Venue
	calendars map[uuid.UUID]*availability.VenueCalendar
}

func newFakeVenueDir() *fakeVenueDir {
	return &fakeVenueDir{
		venues:    make(map[uuid.UUID]*venues.Venue),
		calendars: make(map[uuid.UUID]*availability.VenueCalendar),
	}
}

func (d *fakeVenueDir) GetVenue(ctx context.Context, id uuid.UUID) (*venues.Venue, error) {
	venue, ok := d.venues[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return venue, nil
}

func (d *fakeVenueDir) LookupCalendar(ctx context.Context, venueID uuid.UUID) (*availability.VenueCalendar, error) {
	cal, ok := d.calendars[venueID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return cal, nil
}

func (d *fakeVenueDir) addVenue(accountID uuid.UUID, blackouts ...string) *venues.Venue {
	venue := &venues.Venue{
		ID:             uuid.New(),
		AccountID:      accountID,
		Name:           "The Echo Room",
		City:           "Portland",
		State:          "OR",
		Capacity:       350,
		AgeRestriction: "all-ages",
	}
	d.venues[venue.ID] = venue
	d.calendars[venue.ID] = &availability.VenueCalendar{
		VenueID:       venue.ID,
		BlackoutDates: blackouts,
	}
	return venue
}

func directShowRequest(artistID, venueID uuid.UUID, date time.Time) ConfirmDirectShowRequest {
	return ConfirmDirectShowRequest{
		ArtistID:   artistID.String(),
		ArtistName: "The Midnight Sparrows",
		VenueID:    venueID.String(),
		Date:       date,
		Guarantee:  500,
		ShowTime:   "21:00",
	}
}

func TestConfirmDirectShow(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	t.Run("artist confirms own show", func(t *testing.T) {
		repo := newFakeShowRepo()
		dir := newFakeVenueDir()
		svc := NewService(repo, dir)

		artistAccount := uuid.New()
		venue := dir.addVenue(uuid.New())

		show, err := svc.ConfirmDirectShow(ctx, artistAccount, "ARTIST", directShowRequest(artistAccount, venue.ID, date))
		require.NoError(t, err)

		assert.Equal(t, StatusConfirmed, show.Status)
		assert.Equal(t, venue.Name, show.VenueName)
		assert.Equal(t, venue.City, show.City)
		assert.Equal(t, venue.Capacity, show.Capacity)
		assert.Nil(t, show.BidID)
	})

	t.Run("venue confirms on behalf of its account", func(t *testing.T) {
		repo := newFakeShowRepo()
		dir := newFakeVenueDir()
		svc := NewService(repo, dir)

		venueAccount := uuid.New()
		venue := dir.addVenue(venueAccount)

		_, err := svc.ConfirmDirectShow(ctx, venueAccount, "VENUE", directShowRequest(uuid.New(), venue.ID, date))
		require.NoError(t, err)
	})

	t.Run("third party cannot confirm", func(t *testing.T) {
		repo := newFakeShowRepo()
		dir := newFakeVenueDir()
		svc := NewService(repo, dir)

		venue := dir.addVenue(uuid.New())

		_, err := svc.ConfirmDirectShow(ctx, uuid.New(), "ARTIST", directShowRequest(uuid.New(), venue.ID, date))
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

		_, err = svc.ConfirmDirectShow(ctx, uuid.New(), "VENUE", directShowRequest(uuid.New(), venue.ID, date))
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("blacked out date is rejected", func(t *testing.T) {
		repo := newFakeShowRepo()
		dir := newFakeVenueDir()
		svc := NewService(repo, dir)

		artistAccount := uuid.New()
		venue := dir.addVenue(uuid.New(), date.Format("2006-01-02"))

		_, err := svc.ConfirmDirectShow(ctx, artistAccount, "ARTIST", directShowRequest(artistAccount, venue.ID, date))
		assert.ErrorIs(t, err, apperrors.ErrDateUnavailable)
		assert.Zero(t, repo.created)
	})

	t.Run("already booked date is rejected", func(t *testing.T) {
		repo := newFakeShowRepo()
		dir := newFakeVenueDir()
		svc := NewService(repo, dir)

		artistAccount := uuid.New()
		venue := dir.addVenue(uuid.New())

		_, err := svc.ConfirmDirectShow(ctx, artistAccount, "ARTIST", directShowRequest(artistAccount, venue.ID, date))
		require.NoError(t, err)

		_, err = svc.ConfirmDirectShow(ctx, artistAccount, "ARTIST", directShowRequest(artistAccount, venue.ID, date))
		assert.ErrorIs(t, err, apperrors.ErrDateUnavailable)
	})

	t.Run("cancelled show frees its date", func(t *testing.T) {
		repo := newFakeShowRepo()
		dir := newFakeVenueDir()
		svc := NewService(repo, dir)

		artistAccount := uuid.New()
		venue := dir.addVenue(uuid.New())

		show, err := svc.ConfirmDirectShow(ctx, artistAccount, "ARTIST", directShowRequest(artistAccount, venue.ID, date))
		require.NoError(t, err)

		_, err = svc.CancelShow(ctx, show.ID, artistAccount, "ARTIST")
		require.NoError(t, err)

		_, err = svc.ConfirmDirectShow(ctx, artistAccount, "ARTIST", directShowRequest(artistAccount, venue.ID, date))
		assert.NoError(t, err)
	})
}

func TestCreateFromBid(t *testing.T) {
	ctx := context.Background()

	repo := newFakeShowRepo()
	dir := newFakeVenueDir()
	svc := NewService(repo, dir)

	input := CreateFromBidInput{
		BidID:          uuid.New(),
		TourRequestID:  uuid.New(),
		ArtistID:       uuid.New(),
		ArtistName:     "The Midnight Sparrows",
		VenueID:        uuid.New(),
		VenueName:      "The Echo Room",
		Date:           time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		City:           "Portland",
		State:          "OR",
		Capacity:       350,
		AgeRestriction: "all-ages",
		Guarantee:      750,
		ShowTime:       "20:30",
	}

	show, err := svc.CreateFromBid(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, show.BidID)
	assert.Equal(t, input.BidID, *show.BidID)
	require.NotNil(t, show.TourRequestID)
	assert.Equal(t, input.TourRequestID, *show.TourRequestID)
	assert.Equal(t, StatusConfirmed, show.Status)

	// Retrying with the same bid must not create a second show.
	again, err := svc.CreateFromBid(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, show.ID, again.ID)
	assert.Equal(t, 1, repo.created)
}

func TestCancelShow(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	repo := newFakeShowRepo()
	dir := newFakeVenueDir()
	svc := NewService(repo, dir)

	artistAccount := uuid.New()
	venueAccount := uuid.New()
	venue := dir.addVenue(venueAccount)

	show, err := svc.ConfirmDirectShow(ctx, artistAccount, "ARTIST", directShowRequest(artistAccount, venue.ID, date))
	require.NoError(t, err)

	t.Run("outsider cannot cancel", func(t *testing.T) {
		_, err := svc.CancelShow(ctx, show.ID, uuid.New(), "ARTIST")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("venue side may cancel", func(t *testing.T) {
		cancelled, err := svc.CancelShow(ctx, show.ID, venueAccount, "VENUE")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
	})

	t.Run("cancelling twice is rejected", func(t *testing.T) {
		_, err := svc.CancelShow(ctx, show.ID, venueAccount, "VENUE")
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})
}
