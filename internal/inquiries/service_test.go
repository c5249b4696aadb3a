package inquiries

import (
	"context"
	"testing"
	"time"

	"tourboard/internal/shared/apperrors"
	"tourboard/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInquiryRepo struct {
	byID map[uuid.UUID]*BookingInquiry
}

func newFakeInquiryRepo() *fakeInquiryRepo {
	return &fakeInquiryRepo{byID: make(map[uuid.UUID]*BookingInquiry)}
}

func (r *fakeInquiryRepo) Create(ctx context.Context, inquiry *BookingInquiry) error {
	inquiry.ID = uuid.New()
	inquiry.CreatedAt = time.Now()
	cp := *inquiry
	r.byID[inquiry.ID] = &cp
	return nil
}

func (r *fakeInquiryRepo) GetByID(ctx context.Context, id uuid.UUID) (*BookingInquiry, error) {
	inquiry, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *inquiry
	cp.Responses = append([]BookingResponse(nil), inquiry.Responses...)
	return &cp, nil
}

func (r *fakeInquiryRepo) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]BookingInquiry, error) {
	var out []BookingInquiry
	for _, inquiry := range r.byID {
		if inquiry.FromAccountID == accountID || inquiry.ToAccountID == accountID {
			out = append(out, *inquiry)
		}
	}
	return out, nil
}

func (r *fakeInquiryRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	inquiry, ok := r.byID[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	inquiry.Status = status
	return nil
}

func (r *fakeInquiryRepo) AddResponse(ctx context.Context, response *BookingResponse) error {
	inquiry, ok := r.byID[response.InquiryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	response.ID = uuid.New()
	inquiry.Responses = append(inquiry.Responses, *response)
	return nil
}

func (r *fakeInquiryRepo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	for _, inquiry := range r.byID {
		if inquiry.Status.IsOpen() && inquiry.ExpiresAt.Before(now) {
			inquiry.Status = StatusExpired
			count++
		}
	}
	return count, nil
}

type recordingNotifier struct {
	received []*BookingInquiry
}

func (n *recordingNotifier) InquiryReceived(ctx context.Context, inquiry *BookingInquiry) {
	n.received = append(n.received, inquiry)
}

func inquiryFixture() (*fakeInquiryRepo, Service) {
	repo := newFakeInquiryRepo()
	svc := NewService(repo, config.NegotiationConfig{InquiryExpiry: 30 * 24 * time.Hour})
	return repo, svc
}

func TestCreateInquiry(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending thread and notifies recipient", func(t *testing.T) {
		_, svc := inquiryFixture()
		notifier := &recordingNotifier{}
		svc.SetNotifier(notifier)

		from := uuid.New()
		to := uuid.New()
		inquiry, err := svc.CreateInquiry(ctx, from, CreateInquiryRequest{
			ToAccountID: to.String(),
			Subject:     "Friday in November?",
			Message:     "We are routing through town and have the 13th open.",
		})
		require.NoError(t, err)

		assert.Equal(t, StatusPending, inquiry.Status)
		assert.Equal(t, to, inquiry.ToAccountID)
		assert.True(t, inquiry.ExpiresAt.After(time.Now()))
		require.Len(t, notifier.received, 1)
		assert.Equal(t, inquiry.ID, notifier.received[0].ID)
	})

	t.Run("cannot write to yourself", func(t *testing.T) {
		_, svc := inquiryFixture()
		from := uuid.New()
		_, err := svc.CreateInquiry(ctx, from, CreateInquiryRequest{
			ToAccountID: from.String(),
			Subject:     "hello",
			Message:     "me",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})
}

func TestGetInquiry(t *testing.T) {
	ctx := context.Background()
	_, svc := inquiryFixture()

	from := uuid.New()
	to := uuid.New()
	inquiry, err := svc.CreateInquiry(ctx, from, CreateInquiryRequest{
		ToAccountID: to.String(),
		Subject:     "Friday in November?",
		Message:     "Open date on the 13th.",
	})
	require.NoError(t, err)

	t.Run("sender view leaves status pending", func(t *testing.T) {
		got, err := svc.GetInquiry(ctx, inquiry.ID, from)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, got.Status)
	})

	t.Run("recipient view marks it viewed", func(t *testing.T) {
		got, err := svc.GetInquiry(ctx, inquiry.ID, to)
		require.NoError(t, err)
		assert.Equal(t, StatusViewed, got.Status)
	})

	t.Run("strangers are rejected", func(t *testing.T) {
		_, err := svc.GetInquiry(ctx, inquiry.ID, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestRespondAndResolve(t *testing.T) {
	ctx := context.Background()
	_, svc := inquiryFixture()

	from := uuid.New()
	to := uuid.New()
	inquiry, err := svc.CreateInquiry(ctx, from, CreateInquiryRequest{
		ToAccountID: to.String(),
		Subject:     "Friday in November?",
		Message:     "Open date on the 13th.",
	})
	require.NoError(t, err)

	t.Run("either party may respond", func(t *testing.T) {
		updated, err := svc.Respond(ctx, inquiry.ID, to, RespondRequest{Message: "The 13th works, what is your draw?"})
		require.NoError(t, err)
		assert.Equal(t, StatusResponded, updated.Status)
		require.Len(t, updated.Responses, 1)
		assert.Equal(t, to, updated.Responses[0].AccountID)

		updated, err = svc.Respond(ctx, inquiry.ID, from, RespondRequest{Message: "Around 150 locally."})
		require.NoError(t, err)
		assert.Len(t, updated.Responses, 2)
	})

	t.Run("only recipient may resolve", func(t *testing.T) {
		_, err := svc.Resolve(ctx, inquiry.ID, from, "accept")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

		resolved, err := svc.Resolve(ctx, inquiry.ID, to, "accept")
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, resolved.Status)
	})

	t.Run("closed thread takes no more responses", func(t *testing.T) {
		_, err := svc.Respond(ctx, inquiry.ID, from, RespondRequest{Message: "one more thing"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

		_, err = svc.Resolve(ctx, inquiry.ID, to, "decline")
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})
}

func TestExpireOverdue(t *testing.T) {
	ctx := context.Background()
	repo, svc := inquiryFixture()

	from := uuid.New()
	stale, err := svc.CreateInquiry(ctx, from, CreateInquiryRequest{
		ToAccountID: uuid.New().String(),
		Subject:     "old thread",
		Message:     "hello?",
	})
	require.NoError(t, err)
	fresh, err := svc.CreateInquiry(ctx, from, CreateInquiryRequest{
		ToAccountID: uuid.New().String(),
		Subject:     "new thread",
		Message:     "hello!",
	})
	require.NoError(t, err)

	repo.byID[stale.ID].ExpiresAt = time.Now().Add(-time.Hour)

	count, err := svc.ExpireOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, StatusExpired, repo.byID[stale.ID].Status)
	assert.Equal(t, StatusPending, repo.byID[fresh.ID].Status)
}
