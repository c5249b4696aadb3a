package requests

import (
	"context"
	"errors"
	"testing"
	"time"

	"tourboard/internal/shared/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequestRepo struct {
	byID    map[uuid.UUID]*TourRequest
	deleted int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{byID: make(map[uuid.UUID]*TourRequest)}
}

func (r *fakeRequestRepo) Create(ctx context.Context, req *TourRequest) error {
	req.ID = uuid.New()
	req.CreatedAt = time.Now()
	cp := *req
	r.byID[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*TourRequest, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]TourRequest, error) {
	var out []TourRequest
	for _, req := range r.byID {
		if req.ArtistID == artistID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ListActive(ctx context.Context) ([]TourRequest, error) {
	var out []TourRequest
	for _, req := range r.byID {
		if req.Status == StatusActive {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) Update(ctx context.Context, req *TourRequest) error {
	if _, ok := r.byID[req.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *req
	r.byID[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	req, ok := r.byID[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.Status = status
	return nil
}

func (r *fakeRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.byID, id)
	r.deleted++
	return nil
}

type fakeBidCanceller struct {
	calls  int
	reason string
	count  int
}

func (f *fakeBidCanceller) CancelAllForRequest(ctx context.Context, tourRequestID uuid.UUID, reason string) (int, error) {
	f.calls++
	f.reason = reason
	return f.count, nil
}

func datePtr(t time.Time) *time.Time { return &t }

func rangePayload() CreateRequestPayload {
	return CreateRequestPayload{
		ArtistName: "The Midnight Sparrows",
		Title:      "Pacific Northwest run",
		StartDate:  datePtr(time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)),
		EndDate:    datePtr(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)),
	}
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("date range request", func(t *testing.T) {
		repo := newFakeRequestRepo()
		svc := NewService(repo)

		artistID := uuid.New()
		req, err := svc.CreateRequest(ctx, artistID, rangePayload())
		require.NoError(t, err)

		assert.Equal(t, StatusActive, req.Status)
		assert.Equal(t, PriorityMedium, req.Priority)
		assert.Equal(t, "flexible", req.AgeRestriction)
		assert.Equal(t, artistID, req.ArtistID)
	})

	t.Run("single date request", func(t *testing.T) {
		repo := newFakeRequestRepo()
		svc := NewService(repo)

		payload := rangePayload()
		payload.StartDate, payload.EndDate = nil, nil
		payload.RequestDate = datePtr(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))

		req, err := svc.CreateRequest(ctx, uuid.New(), payload)
		require.NoError(t, err)
		assert.True(t, req.HasSingleDate())
	})

	t.Run("window must be single date or range, not both", func(t *testing.T) {
		repo := newFakeRequestRepo()
		svc := NewService(repo)

		payload := rangePayload()
		payload.RequestDate = datePtr(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))
		_, err := svc.CreateRequest(ctx, uuid.New(), payload)
		assert.ErrorIs(t, err, apperrors.ErrInvalidWindow)
		assert.True(t, apperrors.IsValidation(err))
		assert.Empty(t, repo.byID)
	})

	t.Run("window must not be empty", func(t *testing.T) {
		repo := newFakeRequestRepo()
		svc := NewService(repo)

		payload := rangePayload()
		payload.StartDate, payload.EndDate = nil, nil
		_, err := svc.CreateRequest(ctx, uuid.New(), payload)
		assert.ErrorIs(t, err, apperrors.ErrInvalidWindow)
	})

	t.Run("start after end is rejected", func(t *testing.T) {
		repo := newFakeRequestRepo()
		svc := NewService(repo)

		payload := rangePayload()
		payload.StartDate, payload.EndDate = payload.EndDate, payload.StartDate
		_, err := svc.CreateRequest(ctx, uuid.New(), payload)
		assert.ErrorIs(t, err, apperrors.ErrInvalidWindow)
	})
}

func TestPauseResume(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRequestRepo()
	svc := NewService(repo)

	artistID := uuid.New()
	req, err := svc.CreateRequest(ctx, artistID, rangePayload())
	require.NoError(t, err)

	t.Run("pause then resume", func(t *testing.T) {
		paused, err := svc.PauseRequest(ctx, req.ID, artistID)
		require.NoError(t, err)
		assert.Equal(t, StatusPaused, paused.Status)
		assert.False(t, paused.Status.AcceptsBids())

		resumed, err := svc.ResumeRequest(ctx, req.ID, artistID)
		require.NoError(t, err)
		assert.Equal(t, StatusActive, resumed.Status)
		assert.True(t, resumed.Status.AcceptsBids())
	})

	t.Run("resume only applies to paused requests", func(t *testing.T) {
		_, err := svc.ResumeRequest(ctx, req.ID, artistID)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("only the owner may transition", func(t *testing.T) {
		_, err := svc.PauseRequest(ctx, req.ID, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestUpdateRequest(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRequestRepo()
	svc := NewService(repo)

	artistID := uuid.New()
	req, err := svc.CreateRequest(ctx, artistID, rangePayload())
	require.NoError(t, err)

	title := "West coast run"
	guarantee := 400.0
	updated, err := svc.UpdateRequest(ctx, req.ID, artistID, UpdateRequestPayload{
		Title:        &title,
		GuaranteeMin: &guarantee,
	})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, guarantee, updated.GuaranteeMin)

	t.Run("completed request is frozen", func(t *testing.T) {
		require.NoError(t, svc.MarkCompleted(ctx, req.ID))
		_, err := svc.UpdateRequest(ctx, req.ID, artistID, UpdateRequestPayload{Title: &title})
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})
}

func TestDeleteRequest(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRequestRepo()
	svc := NewService(repo)

	canceller := &fakeBidCanceller{count: 2}
	svc.SetBidCanceller(canceller)

	artistID := uuid.New()
	req, err := svc.CreateRequest(ctx, artistID, rangePayload())
	require.NoError(t, err)

	t.Run("non-owner cannot delete", func(t *testing.T) {
		_, err := svc.DeleteRequest(ctx, req.ID, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Zero(t, canceller.calls)
	})

	t.Run("delete cancels attached bids first", func(t *testing.T) {
		cancelled, err := svc.DeleteRequest(ctx, req.ID, artistID)
		require.NoError(t, err)
		assert.Equal(t, 2, cancelled)
		assert.Equal(t, 1, canceller.calls)
		assert.Equal(t, "Show request was deleted", canceller.reason)
		assert.Equal(t, 1, repo.deleted)
	})
}

// brokenCache fails every operation, standing in for an unreachable Redis.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string, interface{}) error { return errCacheDown }
func (brokenCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errCacheDown
}
func (brokenCache) Delete(context.Context, ...string) error      { return nil }
func (brokenCache) DeletePattern(context.Context, string) error  { return nil }
func (brokenCache) Ping(context.Context) error                   { return errCacheDown }
func (brokenCache) GetOrSet(context.Context, string, time.Duration, func() (interface{}, error), interface{}) error {
	return errCacheDown
}

var errCacheDown = errors.New("cache unavailable")

func TestListActiveSurvivesCacheOutage(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRequestRepo()
	svc := NewService(repo)
	svc.SetCacheService(brokenCache{}, time.Minute)

	artistID := uuid.New()
	_, err := svc.CreateRequest(ctx, artistID, rangePayload())
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
