package bids

import (
	"context"
	"sort"
	"time"

	"tourboard/internal/requests"
	"tourboard/internal/shared/apperrors"
	"tourboard/internal/shared/config"
	"tourboard/internal/shows"
	"tourboard/internal/venues"
	"tourboard/pkg/cache"
	"tourboard/pkg/logger"

	"github.com/google/uuid"
)

// RequestSource is the slice of the tour request service the engine
// needs. requests.Service satisfies it.
type RequestSource interface {
	GetRequest(ctx context.Context, id uuid.UUID) (*requests.TourRequest, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) error
}

// ShowFactory is the slice of the show service the engine needs.
// shows.Service satisfies it.
type ShowFactory interface {
	CreateFromBid(ctx context.Context, input shows.CreateFromBidInput) (*shows.Show, error)
}

// VenueDirectory resolves venues for ownership checks and show creation.
// venues.Service satisfies it.
type VenueDirectory interface {
	GetVenue(ctx context.Context, id uuid.UUID) (*venues.Venue, error)
	GetVenueForAccount(ctx context.Context, accountID uuid.UUID) (*venues.Venue, error)
}

type Service interface {
	SubmitBid(ctx context.Context, venueAccountID, tourRequestID uuid.UUID, payload SubmitBidPayload) (*VenueBid, error)
	GetBid(ctx context.Context, id uuid.UUID) (*VenueBid, error)
	ListByTourRequest(ctx context.Context, tourRequestID uuid.UUID) ([]VenueBid, error)
	ListByVenueAccount(ctx context.Context, venueAccountID uuid.UUID) ([]VenueBid, error)

	PlaceOnHold(ctx context.Context, bidID, artistID uuid.UUID) (*VenueBid, error)
	AcceptBid(ctx context.Context, bidID, artistID uuid.UUID) (*AcceptBidResponse, error)
	DeclineBid(ctx context.Context, bidID, artistID uuid.UUID, reason string) (*VenueBid, error)
	CancelBid(ctx context.Context, bidID, venueAccountID uuid.UUID) (*VenueBid, error)

	// CancelAllForRequest implements requests.BidCanceller for the
	// delete-request cascade.
	CancelAllForRequest(ctx context.Context, tourRequestID uuid.UUID, reason string) (int, error)

	// ExpireOverdueHolds is driven by the sweep job.
	ExpireOverdueHolds(ctx context.Context) (int, error)

	SetEventPublisher(pub EventPublisher)
	SetCacheService(cacheService cache.Service, ttl time.Duration)
}

type service struct {
	repo        Repository
	requestsSvc RequestSource
	showsSvc    ShowFactory
	venueDir    VenueDirectory
	cfg         config.NegotiationConfig

	locks     *requestLocks
	publisher EventPublisher

	cacheService cache.Service
	cacheTTL     time.Duration

	log *logger.Logger
}

func NewService(repo Repository, requestsSvc RequestSource, showsSvc ShowFactory, venueDir VenueDirectory, cfg config.NegotiationConfig) Service {
	return &service{
		repo:        repo,
		requestsSvc: requestsSvc,
		showsSvc:    showsSvc,
		venueDir:    venueDir,
		cfg:         cfg,
		locks:       newRequestLocks(),
		log:         logger.GetDefault(),
	}
}

func (s *service) SetEventPublisher(pub EventPublisher) {
	s.publisher = pub
}

func (s *service) SetCacheService(cacheService cache.Service, ttl time.Duration) {
	s.cacheService = cacheService
	s.cacheTTL = ttl
}

func (s *service) SubmitBid(ctx context.Context, venueAccountID, tourRequestID uuid.UUID, payload SubmitBidPayload) (*VenueBid, error) {
	venueID, err := uuid.Parse(payload.VenueID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	venue, err := s.venueDir.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if venue.AccountID != venueAccountID {
		return nil, apperrors.ErrUnauthorized
	}

	req, err := s.requestsSvc.GetRequest(ctx, tourRequestID)
	if err != nil {
		return nil, err
	}
	if !req.Status.AcceptsBids() {
		return nil, apperrors.ErrRequestNotActive
	}
	if !req.WindowContains(payload.ProposedDate) {
		return nil, apperrors.ErrDateOutOfWindow
	}
	if payload.Capacity <= 0 {
		return nil, apperrors.ErrInvalidCapacity
	}

	bid := &VenueBid{
		TourRequestID:      tourRequestID,
		VenueID:            venueID,
		VenueName:          venue.Name,
		ProposedDate:       payload.ProposedDate,
		AlternativeDates:   StringList(payload.AlternativeDates),
		Guarantee:          payload.Guarantee,
		DoorDealSplit:      payload.DoorDealSplit,
		DoorDealMinimum:    payload.DoorDealMinimum,
		TicketPriceAdvance: payload.TicketPriceAdvance,
		TicketPriceDoor:    payload.TicketPriceDoor,
		Capacity:           payload.Capacity,
		AgeRestriction:     payload.AgeRestriction,
		EquipmentProvided:  BoolMap(payload.EquipmentProvided),
		Promotion:          BoolMap(payload.Promotion),
		Lodging:            payload.Lodging,
		LoadIn:             payload.LoadIn,
		Soundcheck:         payload.Soundcheck,
		DoorsOpen:          payload.DoorsOpen,
		ShowTime:           payload.ShowTime,
		Curfew:             payload.Curfew,
		BillingPosition:    payload.BillingPosition,
		LineupPosition:     payload.LineupPosition,
		SetLength:          payload.SetLength,
		OtherActs:          payload.OtherActs,
		BillingNotes:       payload.BillingNotes,
		Message:            payload.Message,
		AdditionalTerms:    payload.AdditionalTerms,
		Status:             StatusPending,
	}

	if err := s.repo.Create(ctx, bid); err != nil {
		return nil, apperrors.NewPersistenceError("bids.Create", err)
	}

	s.invalidateBidsCache(ctx, tourRequestID)
	s.log.LogBidSubmitted(ctx, bid.ID.String(), tourRequestID.String(), venueID.String())
	if s.publisher != nil {
		s.publisher.BidSubmitted(ctx, bid)
	}
	return bid, nil
}

func (s *service) GetBid(ctx context.Context, id uuid.UUID) (*VenueBid, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByTourRequest reads through the cache; it may briefly see a bid
// mid-transition, which callers tolerate.
func (s *service) ListByTourRequest(ctx context.Context, tourRequestID uuid.UUID) ([]VenueBid, error) {
	if s.cacheService == nil {
		return s.repo.ListByTourRequest(ctx, tourRequestID)
	}

	var result []VenueBid
	err := s.cacheService.GetOrSet(ctx, cache.KeyRequestBids(tourRequestID.String()), s.cacheTTL, func() (interface{}, error) {
		return s.repo.ListByTourRequest(ctx, tourRequestID)
	}, &result)
	if err != nil {
		return s.repo.ListByTourRequest(ctx, tourRequestID)
	}
	return result, nil
}

func (s *service) ListByVenueAccount(ctx context.Context, venueAccountID uuid.UUID) ([]VenueBid, error) {
	venue, err := s.venueForAccount(ctx, venueAccountID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByVenue(ctx, venue.ID)
}

func (s *service) PlaceOnHold(ctx context.Context, bidID, artistID uuid.UUID) (*VenueBid, error) {
	bid, err := s.repo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(bid.TourRequestID)
	defer unlock()

	// Re-read under the lock; another mutation may have landed first.
	bid, err = s.repo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedRequest(ctx, bid.TourRequestID, artistID); err != nil {
		return nil, err
	}

	if bid.Status != StatusPending && bid.Status != StatusHold {
		return nil, apperrors.ErrInvalidTransition
	}

	siblings, err := s.repo.ListByTourRequest(ctx, bid.TourRequestID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("bids.ListByTourRequest", err)
	}

	held := 0
	for _, sibling := range siblings {
		if sibling.Status == StatusHold && sibling.ID != bid.ID {
			held++
		}
	}
	if held >= s.cfg.MaxConcurrentHolds {
		return nil, apperrors.ErrHoldLimitExceeded
	}

	now := time.Now()
	until := now.Add(s.cfg.HoldDuration)
	bid.Status = StatusHold
	bid.HeldAt = &now
	bid.HeldUntil = &until

	if err := s.repo.Update(ctx, bid); err != nil {
		return nil, apperrors.NewPersistenceError("bids.Update", err)
	}

	if err := s.renumberHolds(ctx, bid.TourRequestID, bid); err != nil {
		return nil, err
	}

	s.invalidateBidsCache(ctx, bid.TourRequestID)
	if s.publisher != nil {
		s.publisher.BidHeld(ctx, bid)
	}
	return bid, nil
}

func (s *service) AcceptBid(ctx context.Context, bidID, artistID uuid.UUID) (*AcceptBidResponse, error) {
	bid, err := s.repo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(bid.TourRequestID)
	defer unlock()

	bid, err = s.repo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	req, err := s.ownedRequest(ctx, bid.TourRequestID, artistID)
	if err != nil {
		return nil, err
	}

	// A bid already accepted means a prior cascade failed partway; resume
	// it instead of rejecting the retry.
	resuming := bid.Status == StatusAccepted
	if !resuming && !bid.Status.CanResolve() {
		return nil, apperrors.ErrInvalidTransition
	}

	var completed []apperrors.CascadeStep

	if !resuming {
		now := time.Now()
		bid.Status = StatusAccepted
		bid.AcceptedAt = &now
		bid.clearHold()
		if err := s.repo.Update(ctx, bid); err != nil {
			return nil, apperrors.NewPersistenceError("bids.AcceptBid", err, completed...)
		}
	}
	completed = append(completed, apperrors.StepAcceptBid)

	cancelled, err := s.cancelSiblings(ctx, bid)
	if err != nil {
		return nil, apperrors.NewPersistenceError("bids.CancelSiblings", err, completed...)
	}
	completed = append(completed, apperrors.StepCancelSiblings)

	if err := s.requestsSvc.MarkCompleted(ctx, req.ID); err != nil {
		return nil, apperrors.NewPersistenceError("requests.MarkCompleted", err, completed...)
	}
	completed = append(completed, apperrors.StepCompleteRequest)
	req.Status = requests.StatusCompleted

	venue, err := s.venueDir.GetVenue(ctx, bid.VenueID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("venues.GetVenue", err, completed...)
	}

	show, err := s.showsSvc.CreateFromBid(ctx, shows.CreateFromBidInput{
		BidID:           bid.ID,
		TourRequestID:   req.ID,
		ArtistID:        req.ArtistID,
		ArtistName:      req.ArtistName,
		VenueID:         venue.ID,
		VenueName:       venue.Name,
		Date:            bid.ProposedDate,
		City:            venue.City,
		State:           venue.State,
		Capacity:        bid.Capacity,
		AgeRestriction:  bid.AgeRestriction,
		Guarantee:       bid.Guarantee,
		DoorDealSplit:   bid.DoorDealSplit,
		DoorDealMinimum: bid.DoorDealMinimum,
		LoadIn:          bid.LoadIn,
		Soundcheck:      bid.Soundcheck,
		DoorsOpen:       bid.DoorsOpen,
		ShowTime:        bid.ShowTime,
		Curfew:          bid.Curfew,
	})
	if err != nil {
		return nil, apperrors.NewPersistenceError("shows.CreateFromBid", err, completed...)
	}

	s.invalidateBidsCache(ctx, bid.TourRequestID)
	s.log.LogBidAccepted(ctx, bid.ID.String(), bid.TourRequestID.String(), len(cancelled))
	if s.publisher != nil {
		s.publisher.BidAccepted(ctx, bid, cancelled)
	}

	return &AcceptBidResponse{
		Bid:               bid,
		CancelledSiblings: cancelled,
		Request:           req,
		Show:              show,
	}, nil
}

func (s *service) DeclineBid(ctx context.Context, bidID, artistID uuid.UUID, reason string) (*VenueBid, error) {
	bid, err := s.repo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(bid.TourRequestID)
	defer unlock()

	bid, err = s.repo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedRequest(ctx, bid.TourRequestID, artistID); err != nil {
		return nil, err
	}

	if !bid.Status.CanResolve() {
		return nil, apperrors.ErrInvalidTransition
	}

	wasHold := bid.Status == StatusHold
	now := time.Now()
	bid.Status = StatusDeclined
	bid.DeclinedAt = &now
	bid.DeclinedReason = reason
	bid.clearHold()

	if err := s.repo.Update(ctx, bid); err != nil {
		return nil, apperrors.NewPersistenceError("bids.Update", err)
	}

	if wasHold {
		if err := s.renumberHolds(ctx, bid.TourRequestID, nil); err != nil {
			return nil, err
		}
	}

	s.invalidateBidsCache(ctx, bid.TourRequestID)
	if s.publisher != nil {
		s.publisher.BidDeclined(ctx, bid)
	}
	return bid, nil
}

func (s *service) CancelBid(ctx context.Context, bidID, venueAccountID uuid.UUID) (*VenueBid, error) {
	bid, err := s.repo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(bid.TourRequestID)
	defer unlock()

	bid, err = s.repo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	venue, err := s.venueDir.GetVenue(ctx, bid.VenueID)
	if err != nil {
		return nil, err
	}
	if venue.AccountID != venueAccountID {
		return nil, apperrors.ErrUnauthorized
	}

	if !bid.Status.CanResolve() {
		return nil, apperrors.ErrInvalidTransition
	}

	wasHold := bid.Status == StatusHold
	now := time.Now()
	bid.Status = StatusCancelled
	bid.CancelledAt = &now
	bid.CancelledReason = ReasonCancelledByVenue
	bid.clearHold()

	if err := s.repo.Update(ctx, bid); err != nil {
		return nil, apperrors.NewPersistenceError("bids.Update", err)
	}

	if wasHold {
		if err := s.renumberHolds(ctx, bid.TourRequestID, nil); err != nil {
			return nil, err
		}
	}

	s.invalidateBidsCache(ctx, bid.TourRequestID)
	if s.publisher != nil {
		s.publisher.BidCancelled(ctx, bid)
	}
	return bid, nil
}

func (s *service) CancelAllForRequest(ctx context.Context, tourRequestID uuid.UUID, reason string) (int, error) {
	unlock := s.locks.Lock(tourRequestID)
	defer unlock()

	siblings, err := s.repo.ListByTourRequest(ctx, tourRequestID)
	if err != nil {
		return 0, apperrors.NewPersistenceError("bids.ListByTourRequest", err)
	}

	now := time.Now()
	cancelled := 0
	for i := range siblings {
		bid := &siblings[i]
		if bid.Status.IsTerminal() {
			continue
		}
		bid.Status = StatusCancelled
		bid.CancelledAt = &now
		bid.CancelledReason = reason
		bid.clearHold()
		if err := s.repo.Update(ctx, bid); err != nil {
			return cancelled, apperrors.NewPersistenceError("bids.Update", err)
		}
		cancelled++
	}

	s.invalidateBidsCache(ctx, tourRequestID)
	return cancelled, nil
}

func (s *service) ExpireOverdueHolds(ctx context.Context) (int, error) {
	overdue, err := s.repo.ListExpiredHolds(ctx, time.Now())
	if err != nil {
		return 0, apperrors.NewPersistenceError("bids.ListExpiredHolds", err)
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	byRequest := make(map[uuid.UUID][]VenueBid)
	for _, bid := range overdue {
		byRequest[bid.TourRequestID] = append(byRequest[bid.TourRequestID], bid)
	}

	var expired []VenueBid
	now := time.Now()
	for tourRequestID, group := range byRequest {
		unlock := s.locks.Lock(tourRequestID)

		for i := range group {
			// Re-read under the lock; the hold may have resolved meanwhile.
			bid, err := s.repo.GetByID(ctx, group[i].ID)
			if err != nil {
				continue
			}
			if bid.Status != StatusHold || bid.HeldUntil == nil || bid.HeldUntil.After(now) {
				continue
			}
			bid.Status = StatusExpired
			bid.clearHold()
			if err := s.repo.Update(ctx, bid); err != nil {
				unlock()
				return len(expired), apperrors.NewPersistenceError("bids.Update", err)
			}
			expired = append(expired, *bid)
		}

		if err := s.renumberHolds(ctx, tourRequestID, nil); err != nil {
			unlock()
			return len(expired), err
		}
		unlock()
		s.invalidateBidsCache(ctx, tourRequestID)
	}

	if len(expired) > 0 {
		s.log.LogHoldsExpired(ctx, len(expired))
		if s.publisher != nil {
			s.publisher.HoldsExpired(ctx, expired)
		}
	}
	return len(expired), nil
}

// cancelSiblings transitions every non-terminal bid on the same request,
// other than keep, to cancelled. Already-cancelled siblings are skipped,
// which is what makes cascade retries idempotent.
func (s *service) cancelSiblings(ctx context.Context, keep *VenueBid) ([]VenueBid, error) {
	siblings, err := s.repo.ListByTourRequest(ctx, keep.TourRequestID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var cancelled []VenueBid
	for i := range siblings {
		bid := &siblings[i]
		if bid.ID == keep.ID || bid.Status.IsTerminal() {
			continue
		}
		bid.Status = StatusCancelled
		bid.CancelledAt = &now
		bid.CancelledReason = ReasonSelectedElsewhere
		bid.clearHold()
		if err := s.repo.Update(ctx, bid); err != nil {
			return cancelled, err
		}
		cancelled = append(cancelled, *bid)
	}
	return cancelled, nil
}

// renumberHolds recomputes dense hold positions 1..k ordered by held_at
// ascending and persists only the rows whose position changed. Caller
// must hold the request lock. When justHeld is non-nil its in-memory
// position is updated too so the caller returns fresh data.
func (s *service) renumberHolds(ctx context.Context, tourRequestID uuid.UUID, justHeld *VenueBid) error {
	siblings, err := s.repo.ListByTourRequest(ctx, tourRequestID)
	if err != nil {
		return apperrors.NewPersistenceError("bids.ListByTourRequest", err)
	}

	var held []*VenueBid
	for i := range siblings {
		if siblings[i].Status == StatusHold {
			held = append(held, &siblings[i])
		}
	}
	sort.Slice(held, func(i, j int) bool {
		return held[i].HeldAt.Before(*held[j].HeldAt)
	})

	for i, bid := range held {
		position := i + 1
		if justHeld != nil && bid.ID == justHeld.ID {
			justHeld.HoldPosition = &position
		}
		if bid.HoldPosition != nil && *bid.HoldPosition == position {
			continue
		}
		bid.HoldPosition = &position
		if err := s.repo.Update(ctx, bid); err != nil {
			return apperrors.NewPersistenceError("bids.Update", err)
		}
	}
	return nil
}

// ownedRequest loads the parent request and verifies the artist owns it.
func (s *service) ownedRequest(ctx context.Context, tourRequestID, artistID uuid.UUID) (*requests.TourRequest, error) {
	req, err := s.requestsSvc.GetRequest(ctx, tourRequestID)
	if err != nil {
		return nil, err
	}
	if req.ArtistID != artistID {
		return nil, apperrors.ErrUnauthorized
	}
	return req, nil
}

func (s *service) venueForAccount(ctx context.Context, accountID uuid.UUID) (*venues.Venue, error) {
	return s.venueDir.GetVenueForAccount(ctx, accountID)
}

func (s *service) invalidateBidsCache(ctx context.Context, tourRequestID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, cache.KeyRequestBids(tourRequestID.String())); err != nil {
		s.log.WithError(err).Warn("failed to invalidate bid cache")
	}
}
