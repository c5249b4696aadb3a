package bids

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"tourboard/internal/availability"
	"tourboard/internal/requests"
	"tourboard/internal/shared/apperrors"
	"tourboard/internal/shared/config"
	"tourboard/internal/shows"
	"tourboard/internal/venues"
	"tourboard/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu          sync.Mutex
	bids        map[uuid.UUID]*VenueBid
	seq         int
	failUpdates map[uuid.UUID]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bids:        make(map[uuid.UUID]*VenueBid),
		failUpdates: make(map[uuid.UUID]int),
	}
}

func (f *fakeRepo) Create(_ context.Context, bid *VenueBid) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	bid.ID = uuid.New()
	f.seq++
	bid.CreatedAt = time.Unix(int64(f.seq), 0)
	clone := *bid
	f.bids[bid.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*VenueBid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bid, ok := f.bids[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *bid
	return &clone, nil
}

func (f *fakeRepo) ListByTourRequest(_ context.Context, tourRequestID uuid.UUID) ([]VenueBid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []VenueBid
	for _, bid := range f.bids {
		if bid.TourRequestID == tourRequestID {
			result = append(result, *bid)
		}
	}
	return result, nil
}

func (f *fakeRepo) ListByVenue(_ context.Context, venueID uuid.UUID) ([]VenueBid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []VenueBid
	for _, bid := range f.bids {
		if bid.VenueID == venueID {
			result = append(result, *bid)
		}
	}
	return result, nil
}

func (f *fakeRepo) Update(_ context.Context, bid *VenueBid) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n := f.failUpdates[bid.ID]; n > 0 {
		f.failUpdates[bid.ID] = n - 1
		return errors.New("write failed")
	}
	clone := *bid
	f.bids[bid.ID] = &clone
	return nil
}

func (f *fakeRepo) ListExpiredHolds(_ context.Context, now time.Time) ([]VenueBid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []VenueBid
	for _, bid := range f.bids {
		if bid.Status == StatusHold && bid.HeldUntil != nil && bid.HeldUntil.Before(now) {
			result = append(result, *bid)
		}
	}
	return result, nil
}

type fakeRequests struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*requests.TourRequest
}

func newFakeRequests() *fakeRequests {
	return &fakeRequests{requests: make(map[uuid.UUID]*requests.TourRequest)}
}

func (f *fakeRequests) GetRequest(_ context.Context, id uuid.UUID) (*requests.TourRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *req
	return &clone, nil
}

func (f *fakeRequests) MarkCompleted(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.Status = requests.StatusCompleted
	return nil
}

type fakeShows struct {
	mu    sync.Mutex
	byBid map[uuid.UUID]*shows.Show
}

func newFakeShows() *fakeShows {
	return &fakeShows{byBid: make(map[uuid.UUID]*shows.Show)}
}

func (f *fakeShows) CreateFromBid(_ context.Context, input shows.CreateFromBidInput) (*shows.Show, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byBid[input.BidID]; ok {
		return existing, nil
	}
	bidID := input.BidID
	tourRequestID := input.TourRequestID
	show := &shows.Show{
		ID:            uuid.New(),
		ArtistID:      input.ArtistID,
		ArtistName:    input.ArtistName,
		VenueID:       input.VenueID,
		VenueName:     input.VenueName,
		Date:          input.Date,
		Status:        shows.StatusConfirmed,
		BidID:         &bidID,
		TourRequestID: &tourRequestID,
	}
	f.byBid[input.BidID] = show
	return show, nil
}

type fakeVenues struct {
	venues map[uuid.UUID]*venues.Venue
}

func newFakeVenues() *fakeVenues {
	return &fakeVenues{venues: make(map[uuid.UUID]*venues.Venue)}
}

func (f *fakeVenues) GetVenue(_ context.Context, id uuid.UUID) (*venues.Venue, error) {
	venue, ok := f.venues[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return venue, nil
}

func (f *fakeVenues) GetVenueForAccount(_ context.Context, accountID uuid.UUID) (*venues.Venue, error) {
	for _, venue := range f.venues {
		if venue.AccountID == accountID {
			return venue, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeVenues) LookupCalendar(_ context.Context, venueID uuid.UUID) (*availability.VenueCalendar, error) {
	if _, ok := f.venues[venueID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	return &availability.VenueCalendar{VenueID: venueID}, nil
}

// fakeCache mirrors the Redis cache semantics over a map, with the
// Set from GetOrSet applied synchronously so reads are deterministic.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	f.hits++
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = data
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.entries, key)
	}
	return nil
}

func (f *fakeCache) DeletePattern(_ context.Context, _ string) error { return nil }

func (f *fakeCache) Ping(_ context.Context) error { return nil }

func (f *fakeCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := f.Get(ctx, key, dest); err == nil {
		return nil
	}
	data, err := fetcher()
	if err != nil {
		return err
	}
	if err := f.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

type engineFixture struct {
	service  Service
	repo     *fakeRepo
	requests *fakeRequests
	shows    *fakeShows
	venues   *fakeVenues

	artistID uuid.UUID
	request  *requests.TourRequest
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	repo := newFakeRepo()
	reqSource := newFakeRequests()
	showFactory := newFakeShows()
	venueDir := newFakeVenues()

	cfg := config.NegotiationConfig{
		HoldDuration:       7 * 24 * time.Hour,
		MaxConcurrentHolds: 3,
		HoldSweepInterval:  time.Minute,
	}

	artistID := uuid.New()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC)
	req := &requests.TourRequest{
		ID:         uuid.New(),
		ArtistID:   artistID,
		ArtistName: "The Reverb Motel",
		StartDate:  &start,
		EndDate:    &end,
		Status:     requests.StatusActive,
	}
	reqSource.requests[req.ID] = req

	return &engineFixture{
		service:  NewService(repo, reqSource, showFactory, venueDir, cfg),
		repo:     repo,
		requests: reqSource,
		shows:    showFactory,
		venues:   venueDir,
		artistID: artistID,
		request:  req,
	}
}

func (f *engineFixture) addVenue(name string) *venues.Venue {
	venue := &venues.Venue{
		ID:        uuid.New(),
		AccountID: uuid.New(),
		Name:      name,
		City:      "Seattle",
		State:     "WA",
		Capacity:  350,
	}
	f.venues.venues[venue.ID] = venue
	return venue
}

func (f *engineFixture) submitBid(t *testing.T, venue *venues.Venue, day int) *VenueBid {
	t.Helper()
	bid, err := f.service.SubmitBid(context.Background(), venue.AccountID, f.request.ID, SubmitBidPayload{
		VenueID:      venue.ID.String(),
		ProposedDate: time.Date(2026, 6, day, 0, 0, 0, 0, time.UTC),
		Guarantee:    300,
		Capacity:     350,
	})
	require.NoError(t, err)
	return bid
}

func (f *engineFixture) holdPositions(t *testing.T) map[uuid.UUID]int {
	t.Helper()
	all, err := f.repo.ListByTourRequest(context.Background(), f.request.ID)
	require.NoError(t, err)
	positions := make(map[uuid.UUID]int)
	for _, bid := range all {
		if bid.Status == StatusHold {
			require.NotNil(t, bid.HoldPosition)
			positions[bid.ID] = *bid.HoldPosition
		}
	}
	return positions
}

func TestSubmitBid(t *testing.T) {
	t.Run("creates pending bid", func(t *testing.T) {
		f := newEngineFixture(t)
		venue := f.addVenue("The Crocodile")

		bid := f.submitBid(t, venue, 3)

		assert.Equal(t, StatusPending, bid.Status)
		assert.Equal(t, venue.Name, bid.VenueName)
		assert.Nil(t, bid.HoldPosition)
	})

	t.Run("rejects inactive request", func(t *testing.T) {
		f := newEngineFixture(t)
		venue := f.addVenue("The Crocodile")
		f.request.Status = requests.StatusPaused
		f.requests.requests[f.request.ID] = f.request

		_, err := f.service.SubmitBid(context.Background(), venue.AccountID, f.request.ID, SubmitBidPayload{
			VenueID:      venue.ID.String(),
			ProposedDate: time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC),
			Capacity:     350,
		})

		assert.ErrorIs(t, err, apperrors.ErrRequestNotActive)
	})

	t.Run("rejects date outside window and persists nothing", func(t *testing.T) {
		f := newEngineFixture(t)
		venue := f.addVenue("The Crocodile")

		_, err := f.service.SubmitBid(context.Background(), venue.AccountID, f.request.ID, SubmitBidPayload{
			VenueID:      venue.ID.String(),
			ProposedDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
			Capacity:     350,
		})

		assert.ErrorIs(t, err, apperrors.ErrDateOutOfWindow)
		all, _ := f.repo.ListByTourRequest(context.Background(), f.request.ID)
		assert.Empty(t, all)
	})

	t.Run("rejects single-date mismatch", func(t *testing.T) {
		f := newEngineFixture(t)
		venue := f.addVenue("The Crocodile")
		exact := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)
		f.request.RequestDate = &exact
		f.request.StartDate = nil
		f.request.EndDate = nil
		f.requests.requests[f.request.ID] = f.request

		_, err := f.service.SubmitBid(context.Background(), venue.AccountID, f.request.ID, SubmitBidPayload{
			VenueID:      venue.ID.String(),
			ProposedDate: time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC),
			Capacity:     350,
		})

		assert.ErrorIs(t, err, apperrors.ErrDateOutOfWindow)
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		f := newEngineFixture(t)
		venue := f.addVenue("The Crocodile")

		_, err := f.service.SubmitBid(context.Background(), venue.AccountID, f.request.ID, SubmitBidPayload{
			VenueID:      venue.ID.String(),
			ProposedDate: time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC),
			Capacity:     0,
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidCapacity)
	})

	t.Run("rejects venue not owned by account", func(t *testing.T) {
		f := newEngineFixture(t)
		venue := f.addVenue("The Crocodile")

		_, err := f.service.SubmitBid(context.Background(), uuid.New(), f.request.ID, SubmitBidPayload{
			VenueID:      venue.ID.String(),
			ProposedDate: time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC),
			Capacity:     350,
		})

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("allows re-bidding from the same venue", func(t *testing.T) {
		f := newEngineFixture(t)
		venue := f.addVenue("The Crocodile")

		first := f.submitBid(t, venue, 3)
		second := f.submitBid(t, venue, 4)

		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestPlaceOnHold(t *testing.T) {
	t.Run("assigns dense positions in hold order", func(t *testing.T) {
		f := newEngineFixture(t)
		ctx := context.Background()

		var held []*VenueBid
		for _, name := range []string{"The Crocodile", "Neumos", "The Vera Project"} {
			bid := f.submitBid(t, f.addVenue(name), 3)
			h, err := f.service.PlaceOnHold(ctx, bid.ID, f.artistID)
			require.NoError(t, err)
			held = append(held, h)
		}

		for i, bid := range held {
			require.NotNil(t, bid.HoldPosition)
			assert.Equal(t, i+1, *bid.HoldPosition)
			assert.NotNil(t, bid.HeldUntil)
		}
	})

	t.Run("caps concurrent holds", func(t *testing.T) {
		f := newEngineFixture(t)
		ctx := context.Background()

		for _, name := range []string{"A", "B", "C"} {
			bid := f.submitBid(t, f.addVenue(name), 3)
			_, err := f.service.PlaceOnHold(ctx, bid.ID, f.artistID)
			require.NoError(t, err)
		}

		fourth := f.submitBid(t, f.addVenue("D"), 4)
		_, err := f.service.PlaceOnHold(ctx, fourth.ID, f.artistID)
		assert.ErrorIs(t, err, apperrors.ErrHoldLimitExceeded)
	})

	t.Run("re-holding an already held bid is idempotent", func(t *testing.T) {
		f := newEngineFixture(t)
		ctx := context.Background()

		bid := f.submitBid(t, f.addVenue("The Crocodile"), 3)
		_, err := f.service.PlaceOnHold(ctx, bid.ID, f.artistID)
		require.NoError(t, err)

		again, err := f.service.PlaceOnHold(ctx, bid.ID, f.artistID)
		require.NoError(t, err)
		require.NotNil(t, again.HoldPosition)
		assert.Equal(t, 1, *again.HoldPosition)
	})

	t.Run("rejects terminal bid", func(t *testing.T) {
		f := newEngineFixture(t)
		ctx := context.Background()

		bid := f.submitBid(t, f.addVenue("The Crocodile"), 3)
		_, err := f.service.DeclineBid(ctx, bid.ID, f.artistID, "passing")
		require.NoError(t, err)

		_, err = f.service.PlaceOnHold(ctx, bid.ID, f.artistID)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("rejects non-owner artist", func(t *testing.T) {
		f := newEngineFixture(t)

		bid := f.submitBid(t, f.addVenue("The Crocodile"), 3)
		_, err := f.service.PlaceOnHold(context.Background(), bid.ID, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestHoldRenumbering(t *testing.T) {
	t.Run("releasing the front hold shifts the rest up", func(t *testing.T) {
		f := newEngineFixture(t)
		ctx := context.Background()

		var held []*VenueBid
		for _, name := range []string{"A", "B", "C"} {
			bid := f.submitBid(t, f.addVenue(name), 3)
			h, err := f.service.PlaceOnHold(ctx, bid.ID, f.artistID)
			require.NoError(t, err)
			held = append(held, h)
		}

		_, err := f.service.DeclineBid(ctx, held[0].ID, f.artistID, "")
		require.NoError(t, err)

		positions := f.holdPositions(t)
		assert.Equal(t, 1, positions[held[1].ID])
		assert.Equal(t, 2, positions[held[2].ID])
		assert.NotContains(t, positions, held[0].ID)
	})

	t.Run("venue cancel of a middle hold closes the gap", func(t *testing.T) {
		f := newEngineFixture(t)
		ctx := context.Background()

		venueB := f.addVenue("B")
		bidA := f.submitBid(t, f.addVenue("A"), 3)
		bidB := f.submitBid(t, venueB, 4)
		bidC := f.submitBid(t, f.addVenue("C"), 5)
		for _, bid := range []*VenueBid{bidA, bidB, bidC} {
			_, err := f.service.PlaceOnHold(ctx, bid.ID, f.artistID)
			require.NoError(t, err)
		}

		cancelled, err := f.service.CancelBid(ctx, bidB.ID, venueB.AccountID)
		require.NoError(t, err)
		assert.Equal(t, ReasonCancelledByVenue, cancelled.CancelledReason)

		positions := f.holdPositions(t)
		assert.Equal(t, 1, positions[bidA.ID])
		assert.Equal(t, 2, positions[bidC.ID])
	})
}

func TestAcceptBid(t *testing.T) {
	t.Run("cascade cancels siblings, completes request, creates show", func(t *testing.T) {
		f := newEngineFixture(t)
		ctx := context.Background()

		loser := f.submitBid(t, f.addVenue("The Crocodile"), 3)
		_, err := f.service.PlaceOnHold(ctx, loser.ID, f.artistID)
		require.NoError(t, err)
		winner := f.submitBid(t, f.addVenue("Neumos"), 4)

		result, err := f.service.AcceptBid(ctx, winner.ID, f.artistID)
		require.NoError(t, err)

		assert.Equal(t, StatusAccepted, result.Bid.Status)
		assert.NotNil(t, result.Bid.AcceptedAt)

		require.Len(t, result.CancelledSiblings, 1)
		assert.Equal(t, loser.ID, result.CancelledSiblings[0].ID)
		assert.Equal(t, ReasonSelectedElsewhere, result.CancelledSiblings[0].CancelledReason)

		req, err := f.requests.GetRequest(ctx, f.request.ID)
		require.NoError(t, err)
		assert.Equal(t, requests.StatusCompleted, req.Status)
		require.NotNil(t, result.Request)
		assert.Equal(t, requests.StatusCompleted, result.Request.Status)

		require.NotNil(t, result.Show)
		require.NotNil(t, result.Show.BidID)
		assert.Equal(t, winner.ID, *result.Show.BidID)
		assert.Equal(t, shows.StatusConfirmed, result.Show.Status)
	})

	t.Run("partial failure surfaces completed steps and retry converges", func(t *testing.T) {
		f := newEngineFixture(t)
		ctx := context.Background()

		loser := f.submitBid(t, f.addVenue("The Crocodile"), 3)
		winner := f.submitBid(t, f.addVenue("Neumos"), 4)

		f.repo.failUpdates[loser.ID] = 1

		_, err := f.service.AcceptBid(ctx, winner.ID, f.artistID)
		require.Error(t, err)

		var pe *apperrors.PersistenceError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, []apperrors.CascadeStep{apperrors.StepAcceptBid}, pe.Completed)

		// The accepted write landed, the sibling cancel did not.
		stored, err := f.repo.GetByID(ctx, winner.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, stored.Status)

		result, err := f.service.AcceptBid(ctx, winner.ID, f.artistID)
		require.NoError(t, err)

		require.Len(t, result.CancelledSiblings, 1)
		assert.Equal(t, loser.ID, result.CancelledSiblings[0].ID)
		assert.Len(t, f.shows.byBid, 1)
	})

	t.Run("retry does not duplicate the show", func(t *testing.T) {
		f := newEngineFixture(t)
		ctx := context.Background()

		winner := f.submitBid(t, f.addVenue("Neumos"), 4)

		first, err := f.service.AcceptBid(ctx, winner.ID, f.artistID)
		require.NoError(t, err)
		second, err := f.service.AcceptBid(ctx, winner.ID, f.artistID)
		require.NoError(t, err)

		assert.Equal(t, first.Show.ID, second.Show.ID)
		assert.Len(t, f.shows.byBid, 1)
	})

	t.Run("rejects declined bid", func(t *testing.T) {
		f := newEngineFixture(t)
		ctx := context.Background()

		bid := f.submitBid(t, f.addVenue("Neumos"), 4)
		_, err := f.service.DeclineBid(ctx, bid.ID, f.artistID, "")
		require.NoError(t, err)

		_, err = f.service.AcceptBid(ctx, bid.ID, f.artistID)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})
}

func TestDeclineBid(t *testing.T) {
	t.Run("stamps reason and timestamp", func(t *testing.T) {
		f := newEngineFixture(t)

		bid := f.submitBid(t, f.addVenue("Neumos"), 4)
		declined, err := f.service.DeclineBid(context.Background(), bid.ID, f.artistID, "guarantee too low")
		require.NoError(t, err)

		assert.Equal(t, StatusDeclined, declined.Status)
		assert.Equal(t, "guarantee too low", declined.DeclinedReason)
		assert.NotNil(t, declined.DeclinedAt)
	})

	t.Run("terminal bid is left unchanged", func(t *testing.T) {
		f := newEngineFixture(t)
		ctx := context.Background()

		bid := f.submitBid(t, f.addVenue("Neumos"), 4)
		_, err := f.service.DeclineBid(ctx, bid.ID, f.artistID, "first")
		require.NoError(t, err)

		_, err = f.service.DeclineBid(ctx, bid.ID, f.artistID, "second")
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

		stored, err := f.repo.GetByID(ctx, bid.ID)
		require.NoError(t, err)
		assert.Equal(t, "first", stored.DeclinedReason)
	})
}

func TestCancelAllForRequest(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	pending := f.submitBid(t, f.addVenue("A"), 3)
	held := f.submitBid(t, f.addVenue("B"), 4)
	_, err := f.service.PlaceOnHold(ctx, held.ID, f.artistID)
	require.NoError(t, err)
	declined := f.submitBid(t, f.addVenue("C"), 5)
	_, err = f.service.DeclineBid(ctx, declined.ID, f.artistID, "")
	require.NoError(t, err)

	count, err := f.service.CancelAllForRequest(ctx, f.request.ID, ReasonRequestDeleted)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, id := range []uuid.UUID{pending.ID, held.ID} {
		bid, err := f.repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, bid.Status)
		assert.Equal(t, ReasonRequestDeleted, bid.CancelledReason)
		assert.Nil(t, bid.HoldPosition)
	}

	bid, err := f.repo.GetByID(ctx, declined.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDeclined, bid.Status)
}

func TestConcurrentHoldPlacement(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
		ids = append(ids, f.submitBid(t, f.addVenue(name), 3).ID)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			_, errs[i] = f.service.PlaceOnHold(ctx, id, f.artistID)
		}(i, id)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrHoldLimitExceeded)
		}
	}
	assert.Equal(t, 3, succeeded)

	positions := f.holdPositions(t)
	seen := make(map[int]bool)
	for _, p := range positions {
		seen[p] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, seen)
}

func TestExpireOverdueHolds(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	stale := f.submitBid(t, f.addVenue("A"), 3)
	_, err := f.service.PlaceOnHold(ctx, stale.ID, f.artistID)
	require.NoError(t, err)
	fresh := f.submitBid(t, f.addVenue("B"), 4)
	_, err = f.service.PlaceOnHold(ctx, fresh.ID, f.artistID)
	require.NoError(t, err)

	// Backdate the first hold past its expiry.
	bid, err := f.repo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	past := time.Now().Add(-time.Hour)
	longAgo := time.Now().Add(-8 * 24 * time.Hour)
	bid.HeldAt = &longAgo
	bid.HeldUntil = &past
	require.NoError(t, f.repo.Update(ctx, bid))

	count, err := f.service.ExpireOverdueHolds(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	expired, err := f.repo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, expired.Status)
	assert.Nil(t, expired.HoldPosition)

	positions := f.holdPositions(t)
	assert.Equal(t, 1, positions[fresh.ID])
}

func TestListByTourRequestCaching(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	fc := newFakeCache()
	f.service.SetCacheService(fc, time.Minute)

	first := f.submitBid(t, f.addVenue("A"), 3)

	t.Run("first read fills the cache", func(t *testing.T) {
		listed, err := f.service.ListByTourRequest(ctx, f.request.ID)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, first.ID, listed[0].ID)
		assert.Contains(t, fc.entries, cache.KeyRequestBids(f.request.ID.String()))
	})

	t.Run("second read is served from the cache", func(t *testing.T) {
		// Write to the repo directly so no invalidation fires.
		hidden := &VenueBid{TourRequestID: f.request.ID, Status: StatusPending}
		require.NoError(t, f.repo.Create(ctx, hidden))

		listed, err := f.service.ListByTourRequest(ctx, f.request.ID)
		require.NoError(t, err)
		assert.Len(t, listed, 1)
		assert.Equal(t, 1, fc.hits)
	})

	t.Run("submitting a bid invalidates the cache", func(t *testing.T) {
		f.submitBid(t, f.addVenue("B"), 4)

		listed, err := f.service.ListByTourRequest(ctx, f.request.ID)
		require.NoError(t, err)
		assert.Len(t, listed, 3)
	})
}
