package requests

import (
	"context"
	"fmt"
	"time"

	"tourboard/internal/shared/apperrors"
	"tourboard/pkg/cache"

	"github.com/google/uuid"
)

// BidCanceller is implemented by the negotiation engine. Declared here to
// avoid a circular dependency: deleting a request must force-cancel every
// non-terminal bid attached to it before the row goes away.
type BidCanceller interface {
	CancelAllForRequest(ctx context.Context, tourRequestID uuid.UUID, reason string) (int, error)
}

type Service interface {
	CreateRequest(ctx context.Context, artistID uuid.UUID, payload CreateRequestPayload) (*TourRequest, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*TourRequest, error)
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]TourRequest, error)
	ListActive(ctx context.Context) ([]TourRequest, error)
	UpdateRequest(ctx context.Context, id, artistID uuid.UUID, payload UpdateRequestPayload) (*TourRequest, error)
	PauseRequest(ctx context.Context, id, artistID uuid.UUID) (*TourRequest, error)
	ResumeRequest(ctx context.Context, id, artistID uuid.UUID) (*TourRequest, error)
	DeleteRequest(ctx context.Context, id, artistID uuid.UUID) (int, error)

	// MarkCompleted is invoked only by the negotiation engine when a bid
	// against this request is accepted.
	MarkCompleted(ctx context.Context, id uuid.UUID) error

	SetBidCanceller(bc BidCanceller)
	SetCacheService(cacheService cache.Service, ttl time.Duration)
}

type service struct {
	repo         Repository
	bidCanceller BidCanceller
	cacheService cache.Service
	cacheTTL     time.Duration
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetBidCanceller(bc BidCanceller) {
	s.bidCanceller = bc
}

func (s *service) SetCacheService(cacheService cache.Service, ttl time.Duration) {
	s.cacheService = cacheService
	s.cacheTTL = ttl
}

func (s *service) CreateRequest(ctx context.Context, artistID uuid.UUID, payload CreateRequestPayload) (*TourRequest, error) {
	priority := Priority(payload.Priority)
	if priority == "" {
		priority = PriorityMedium
	}
	ageRestriction := payload.AgeRestriction
	if ageRestriction == "" {
		ageRestriction = "flexible"
	}

	req := &TourRequest{
		ArtistID:                artistID,
		ArtistName:              payload.ArtistName,
		RequestDate:             payload.RequestDate,
		StartDate:               payload.StartDate,
		EndDate:                 payload.EndDate,
		Flexibility:             Flexibility(payload.Flexibility),
		Title:                   payload.Title,
		Description:             payload.Description,
		Location:                payload.Location,
		Genres:                  StringList(payload.Genres),
		ExpectedDrawMin:         payload.ExpectedDrawMin,
		ExpectedDrawMax:         payload.ExpectedDrawMax,
		ExpectedDrawDescription: payload.ExpectedDrawDescription,
		Equipment:               StringList(payload.Equipment),
		GuaranteeMin:            payload.GuaranteeMin,
		GuaranteeMax:            payload.GuaranteeMax,
		AcceptsDoorDeals:        payload.AcceptsDoorDeals,
		Merchandising:           payload.Merchandising,
		TravelMethod:            payload.TravelMethod,
		Lodging:                 payload.Lodging,
		AgeRestriction:          ageRestriction,
		Priority:                priority,
		Status:                  StatusActive,
	}

	if err := req.ValidateWindow(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, apperrors.NewPersistenceError("requests.Create", err)
	}

	s.invalidateActiveCache(ctx)
	return req, nil
}

func (s *service) GetRequest(ctx context.Context, id uuid.UUID) (*TourRequest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]TourRequest, error) {
	return s.repo.ListByArtist(ctx, artistID)
}

// ListActive is the public timeline; it reads through the cache and
// tolerates slightly stale data since mutations invalidate on write.
func (s *service) ListActive(ctx context.Context) ([]TourRequest, error) {
	if s.cacheService == nil {
		return s.repo.ListActive(ctx)
	}

	var result []TourRequest
	err := s.cacheService.GetOrSet(ctx, cache.KeyActiveRequests(), s.cacheTTL, func() (interface{}, error) {
		return s.repo.ListActive(ctx)
	}, &result)
	if err != nil {
		// The timeline must stay up when the cache round-trip fails.
		return s.repo.ListActive(ctx)
	}
	return result, nil
}

func (s *service) UpdateRequest(ctx context.Context, id, artistID uuid.UUID, payload UpdateRequestPayload) (*TourRequest, error) {
	req, err := s.getOwned(ctx, id, artistID)
	if err != nil {
		return nil, err
	}

	if req.Status == StatusCompleted || req.Status == StatusCancelled {
		return nil, fmt.Errorf("request %s is %s: %w", id, req.Status, apperrors.ErrInvalidTransition)
	}

	applyRequestUpdates(req, payload)

	if err := s.repo.Update(ctx, req); err != nil {
		return nil, apperrors.NewPersistenceError("requests.Update", err)
	}

	s.invalidateActiveCache(ctx)
	return req, nil
}

func (s *service) PauseRequest(ctx context.Context, id, artistID uuid.UUID) (*TourRequest, error) {
	return s.transition(ctx, id, artistID, StatusActive, StatusPaused)
}

func (s *service) ResumeRequest(ctx context.Context, id, artistID uuid.UUID) (*TourRequest, error) {
	return s.transition(ctx, id, artistID, StatusPaused, StatusActive)
}

// DeleteRequest force-cancels every non-terminal bid on the request, then
// removes it. Returns how many bids were cancelled.
func (s *service) DeleteRequest(ctx context.Context, id, artistID uuid.UUID) (int, error) {
	if _, err := s.getOwned(ctx, id, artistID); err != nil {
		return 0, err
	}

	cancelled := 0
	if s.bidCanceller != nil {
		n, err := s.bidCanceller.CancelAllForRequest(ctx, id, "Show request was deleted")
		if err != nil {
			return 0, fmt.Errorf("failed to cancel attached bids: %w", err)
		}
		cancelled = n
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return cancelled, apperrors.NewPersistenceError("requests.Delete", err)
	}

	s.invalidateActiveCache(ctx)
	return cancelled, nil
}

func (s *service) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.UpdateStatus(ctx, id, StatusCompleted); err != nil {
		return apperrors.NewPersistenceError("requests.MarkCompleted", err)
	}
	s.invalidateActiveCache(ctx)
	return nil
}

func (s *service) transition(ctx context.Context, id, artistID uuid.UUID, from, to Status) (*TourRequest, error) {
	req, err := s.getOwned(ctx, id, artistID)
	if err != nil {
		return nil, err
	}

	if req.Status != from {
		return nil, fmt.Errorf("request %s is %s, not %s: %w", id, req.Status, from, apperrors.ErrInvalidTransition)
	}

	req.Status = to
	if err := s.repo.Update(ctx, req); err != nil {
		return nil, apperrors.NewPersistenceError("requests.Transition", err)
	}

	s.invalidateActiveCache(ctx)
	return req, nil
}

func (s *service) getOwned(ctx context.Context, id, artistID uuid.UUID) (*TourRequest, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ArtistID != artistID {
		return nil, apperrors.ErrUnauthorized
	}
	return req, nil
}

func (s *service) invalidateActiveCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, cache.KeyActiveRequests())
}

func applyRequestUpdates(req *TourRequest, payload UpdateRequestPayload) {
	if payload.Title != nil {
		req.Title = *payload.Title
	}
	if payload.Description != nil {
		req.Description = *payload.Description
	}
	if payload.Location != nil {
		req.Location = *payload.Location
	}
	if payload.Genres != nil {
		req.Genres = StringList(payload.Genres)
	}
	if payload.Equipment != nil {
		req.Equipment = StringList(payload.Equipment)
	}
	if payload.GuaranteeMin != nil {
		req.GuaranteeMin = *payload.GuaranteeMin
	}
	if payload.GuaranteeMax != nil {
		req.GuaranteeMax = *payload.GuaranteeMax
	}
	if payload.AcceptsDoorDeals != nil {
		req.AcceptsDoorDeals = *payload.AcceptsDoorDeals
	}
	if payload.Merchandising != nil {
		req.Merchandising = *payload.Merchandising
	}
	if payload.TravelMethod != nil {
		req.TravelMethod = *payload.TravelMethod
	}
	if payload.Lodging != nil {
		req.Lodging = *payload.Lodging
	}
	if payload.AgeRestriction != nil {
		req.AgeRestriction = *payload.AgeRestriction
	}
	if payload.Priority != nil {
		req.Priority = Priority(*payload.Priority)
	}
}
