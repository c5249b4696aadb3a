package shows

import (
	"context"
	"errors"
	"time"

	"tourboard/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, show *Show) error
	GetByID(ctx context.Context, id uuid.UUID) (*Show, error)
	GetByBidID(ctx context.Context, bidID uuid.UUID) (*Show, error)
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]Show, error)
	ListByVenue(ctx context.Context, venueID uuid.UUID) ([]Show, error)
	ListByVenueOnDate(ctx context.Context, venueID uuid.UUID, date time.Time) ([]Show, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, show *Show) error {
	return r.db.WithContext(ctx).Create(show).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Show, error) {
	var show Show
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&show).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &show, nil
}

func (r *repository) GetByBidID(ctx context.Context, bidID uuid.UUID) (*Show, error) {
	var show Show
	err := r.db.WithContext(ctx).Where("bid_id = ?", bidID).First(&show).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &show, nil
}

func (r *repository) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]Show, error) {
	var result []Show
	err := r.db.WithContext(ctx).
		Where("artist_id = ?", artistID).
		Order("date ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) ListByVenue(ctx context.Context, venueID uuid.UUID) ([]Show, error) {
	var result []Show
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("date ASC").
		Find(&result).Error
	return result, err
}

// ListByVenueOnDate matches on the calendar day, not the timestamp.
func (r *repository) ListByVenueOnDate(ctx context.Context, venueID uuid.UUID, date time.Time) ([]Show, error) {
	day := date.Format("2006-01-02")
	var result []Show
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND DATE(date) = ?", venueID, day).
		Find(&result).Error
	return result, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return r.db.WithContext(ctx).
		Model(&Show{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}
