package venues

import (
	"context"
	"fmt"
	"time"

	"tourboard/internal/availability"
	"tourboard/internal/shared/apperrors"
	"tourboard/pkg/cache"

	"github.com/google/uuid"
)

type Service interface {
	CreateVenue(ctx context.Context, accountID uuid.UUID, req CreateVenueRequest) (*Venue, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*Venue, error)
	GetVenueForAccount(ctx context.Context, accountID uuid.UUID) (*Venue, error)
	ListVenues(ctx context.Context, city, state string) ([]Venue, error)
	UpdateAvailability(ctx context.Context, venueID, accountID uuid.UUID, req UpdateAvailabilityRequest) (*Venue, error)

	// LookupCalendar serves the availability checker with the venue's
	// restricted dates.
	LookupCalendar(ctx context.Context, venueID uuid.UUID) (*availability.VenueCalendar, error)

	// SetCacheService injects the optional cache dependency
	SetCacheService(cacheService cache.Service, ttl time.Duration)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	cacheTTL     time.Duration
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service, ttl time.Duration) {
	s.cacheService = cacheService
	s.cacheTTL = ttl
}

func (s *service) CreateVenue(ctx context.Context, accountID uuid.UUID, req CreateVenueRequest) (*Venue, error) {
	ageRestriction := req.AgeRestriction
	if ageRestriction == "" {
		ageRestriction = "all-ages"
	}

	venue := &Venue{
		AccountID:      accountID,
		Name:           req.Name,
		City:           req.City,
		State:          req.State,
		Capacity:       req.Capacity,
		AgeRestriction: ageRestriction,
		ContactEmail:   req.ContactEmail,
		Description:    req.Description,
		BlackoutDates:  DateList(req.BlackoutDates),
	}

	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	return venue, nil
}

func (s *service) GetVenue(ctx context.Context, id uuid.UUID) (*Venue, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetVenueForAccount(ctx context.Context, accountID uuid.UUID) (*Venue, error) {
	return s.repo.GetByAccountID(ctx, accountID)
}

func (s *service) ListVenues(ctx context.Context, city, state string) ([]Venue, error) {
	return s.repo.List(ctx, city, state)
}

func (s *service) UpdateAvailability(ctx context.Context, venueID, accountID uuid.UUID, req UpdateAvailabilityRequest) (*Venue, error) {
	venue, err := s.repo.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}

	if venue.AccountID != accountID {
		return nil, apperrors.ErrUnauthorized
	}

	venue.UnavailableDates = DateList(req.UnavailableDates)
	venue.BlackoutDates = DateList(req.BlackoutDates)

	if err := s.repo.Update(ctx, venue); err != nil {
		return nil, apperrors.NewPersistenceError("venues.UpdateAvailability", err)
	}

	s.invalidateCalendarCache(ctx, venueID)
	return venue, nil
}

func (s *service) LookupCalendar(ctx context.Context, venueID uuid.UUID) (*availability.VenueCalendar, error) {
	fetch := func() (interface{}, error) {
		venue, err := s.repo.GetByID(ctx, venueID)
		if err != nil {
			return nil, err
		}
		return &availability.VenueCalendar{
			VenueID:          venue.ID,
			UnavailableDates: venue.UnavailableDates,
			BlackoutDates:    venue.BlackoutDates,
		}, nil
	}

	if s.cacheService == nil {
		cal, err := fetch()
		if err != nil {
			return nil, err
		}
		return cal.(*availability.VenueCalendar), nil
	}

	var cal availability.VenueCalendar
	err := s.cacheService.GetOrSet(ctx, cache.KeyVenueAvailability(venueID.String()), s.cacheTTL, fetch, &cal)
	if err != nil {
		return nil, err
	}
	return &cal, nil
}

func (s *service) invalidateCalendarCache(ctx context.Context, venueID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, cache.KeyVenueAvailability(venueID.String()))
}
