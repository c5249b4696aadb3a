package shows

import (
	"context"
	"time"

	"tourboard/internal/availability"
	"tourboard/internal/shared/apperrors"
	"tourboard/internal/venues"
	"tourboard/pkg/logger"

	"github.com/google/uuid"
)

// VenueDirectory is the slice of the venue service the show layer needs.
// Declared here so tests can fake it.
type VenueDirectory interface {
	GetVenue(ctx context.Context, id uuid.UUID) (*venues.Venue, error)
	LookupCalendar(ctx context.Context, venueID uuid.UUID) (*availability.VenueCalendar, error)
}

type Service interface {
	ConfirmDirectShow(ctx context.Context, accountID uuid.UUID, accountType string, req ConfirmDirectShowRequest) (*Show, error)

	// CreateFromBid is invoked only by the negotiation engine after a bid
	// is accepted. Idempotent: a second call with the same bid id returns
	// the existing show.
	CreateFromBid(ctx context.Context, input CreateFromBidInput) (*Show, error)

	GetShow(ctx context.Context, id uuid.UUID) (*Show, error)
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]Show, error)
	ListByVenue(ctx context.Context, venueID uuid.UUID) ([]Show, error)

	// BookedOnDate feeds the availability checker with the venue's shows
	// on a given day.
	BookedOnDate(ctx context.Context, venueID uuid.UUID, date time.Time) ([]availability.BookedShow, error)

	CancelShow(ctx context.Context, id, accountID uuid.UUID, accountType string) (*Show, error)
}

type service struct {
	repo     Repository
	venueDir VenueDirectory
	log      *logger.Logger
}

func NewService(repo Repository, venueDir VenueDirectory) Service {
	return &service{
		repo:     repo,
		venueDir: venueDir,
		log:      logger.GetDefault(),
	}
}

func (s *service) ConfirmDirectShow(ctx context.Context, accountID uuid.UUID, accountType string, req ConfirmDirectShowRequest) (*Show, error) {
	artistID, err := uuid.Parse(req.ArtistID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	venue, err := s.venueDir.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	// Either side of the pairing may confirm, nobody else.
	switch accountType {
	case "ARTIST":
		if artistID != accountID {
			return nil, apperrors.ErrUnauthorized
		}
	case "VENUE":
		if venue.AccountID != accountID {
			return nil, apperrors.ErrUnauthorized
		}
	default:
		return nil, apperrors.ErrUnauthorized
	}

	available, err := s.dateAvailable(ctx, venueID, req.Date)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperrors.ErrDateUnavailable
	}

	show := &Show{
		ArtistID:        artistID,
		ArtistName:      req.ArtistName,
		VenueID:         venueID,
		VenueName:       venue.Name,
		Date:            req.Date,
		City:            venue.City,
		State:           venue.State,
		Capacity:        venue.Capacity,
		AgeRestriction:  venue.AgeRestriction,
		Guarantee:       req.Guarantee,
		DoorDealSplit:   req.DoorDealSplit,
		DoorDealMinimum: req.DoorDealMinimum,
		LoadIn:          req.LoadIn,
		Soundcheck:      req.Soundcheck,
		DoorsOpen:       req.DoorsOpen,
		ShowTime:        req.ShowTime,
		Curfew:          req.Curfew,
		Status:          StatusConfirmed,
	}

	if err := s.repo.Create(ctx, show); err != nil {
		return nil, apperrors.NewPersistenceError("shows.Create", err)
	}

	s.log.LogShowConfirmed(ctx, show.ID.String(), show.ArtistID.String(), show.VenueID.String())
	return show, nil
}

func (s *service) CreateFromBid(ctx context.Context, input CreateFromBidInput) (*Show, error) {
	existing, err := s.repo.GetByBidID(ctx, input.BidID)
	if err == nil {
		return existing, nil
	}
	if err != apperrors.ErrNotFound {
		return nil, err
	}

	bidID := input.BidID
	tourRequestID := input.TourRequestID
	show := &Show{
		ArtistID:        input.ArtistID,
		ArtistName:      input.ArtistName,
		VenueID:         input.VenueID,
		VenueName:       input.VenueName,
		Date:            input.Date,
		City:            input.City,
		State:           input.State,
		Capacity:        input.Capacity,
		AgeRestriction:  input.AgeRestriction,
		Guarantee:       input.Guarantee,
		DoorDealSplit:   input.DoorDealSplit,
		DoorDealMinimum: input.DoorDealMinimum,
		LoadIn:          input.LoadIn,
		Soundcheck:      input.Soundcheck,
		DoorsOpen:       input.DoorsOpen,
		ShowTime:        input.ShowTime,
		Curfew:          input.Curfew,
		Status:          StatusConfirmed,
		BidID:           &bidID,
		TourRequestID:   &tourRequestID,
	}

	if err := s.repo.Create(ctx, show); err != nil {
		return nil, err
	}

	s.log.LogShowConfirmed(ctx, show.ID.String(), show.ArtistID.String(), show.VenueID.String())
	return show, nil
}

func (s *service) GetShow(ctx context.Context, id uuid.UUID) (*Show, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]Show, error) {
	return s.repo.ListByArtist(ctx, artistID)
}

func (s *service) ListByVenue(ctx context.Context, venueID uuid.UUID) ([]Show, error) {
	return s.repo.ListByVenue(ctx, venueID)
}

func (s *service) BookedOnDate(ctx context.Context, venueID uuid.UUID, date time.Time) ([]availability.BookedShow, error) {
	shows, err := s.repo.ListByVenueOnDate(ctx, venueID, date)
	if err != nil {
		return nil, err
	}
	booked := make([]availability.BookedShow, 0, len(shows))
	for _, show := range shows {
		booked = append(booked, availability.BookedShow{
			Date:   show.Date,
			Status: show.Status.String(),
		})
	}
	return booked, nil
}

func (s *service) CancelShow(ctx context.Context, id, accountID uuid.UUID, accountType string) (*Show, error) {
	show, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch accountType {
	case "ARTIST":
		if show.ArtistID != accountID {
			return nil, apperrors.ErrUnauthorized
		}
	case "VENUE":
		venue, err := s.venueDir.GetVenue(ctx, show.VenueID)
		if err != nil {
			return nil, err
		}
		if venue.AccountID != accountID {
			return nil, apperrors.ErrUnauthorized
		}
	default:
		return nil, apperrors.ErrUnauthorized
	}

	if show.Status == StatusCancelled {
		return nil, apperrors.ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, apperrors.NewPersistenceError("shows.UpdateStatus", err)
	}

	show.Status = StatusCancelled
	return show, nil
}

func (s *service) dateAvailable(ctx context.Context, venueID uuid.UUID, date time.Time) (bool, error) {
	cal, err := s.venueDir.LookupCalendar(ctx, venueID)
	if err != nil {
		return false, err
	}
	booked, err := s.BookedOnDate(ctx, venueID, date)
	if err != nil {
		return false, err
	}
	return availability.IsDateAvailable(cal, booked, date), nil
}
