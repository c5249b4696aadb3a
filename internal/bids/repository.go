package bids

import (
	"context"
	"errors"
	"time"

	"tourboard/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, bid *VenueBid) error
	GetByID(ctx context.Context, id uuid.UUID) (*VenueBid, error)
	ListByTourRequest(ctx context.Context, tourRequestID uuid.UUID) ([]VenueBid, error)
	ListByVenue(ctx context.Context, venueID uuid.UUID) ([]VenueBid, error)
	Update(ctx context.Context, bid *VenueBid) error
	ListExpiredHolds(ctx context.Context, now time.Time) ([]VenueBid, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, bid *VenueBid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*VenueBid, error) {
	var bid VenueBid
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (r *repository) ListByTourRequest(ctx context.Context, tourRequestID uuid.UUID) ([]VenueBid, error) {
	var result []VenueBid
	err := r.db.WithContext(ctx).
		Where("tour_request_id = ?", tourRequestID).
		Order("created_at ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) ListByVenue(ctx context.Context, venueID uuid.UUID) ([]VenueBid, error) {
	var result []VenueBid
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}

// Update saves the full row. Hold fields are written explicitly so that
// clearing a hold actually nulls the columns.
func (r *repository) Update(ctx context.Context, bid *VenueBid) error {
	return r.db.WithContext(ctx).
		Model(bid).
		Select("*").
		Omit("id", "created_at").
		Updates(bid).Error
}

func (r *repository) ListExpiredHolds(ctx context.Context, now time.Time) ([]VenueBid, error) {
	var result []VenueBid
	err := r.db.WithContext(ctx).
		Where("status = ? AND held_until < ?", StatusHold, now).
		Order("tour_request_id, held_at ASC").
		Find(&result).Error
	return result, err
}
