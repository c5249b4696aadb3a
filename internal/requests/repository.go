package requests

import (
	"context"
	"errors"
	"time"

	"tourboard/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, req *TourRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*TourRequest, error)
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]TourRequest, error)
	ListActive(ctx context.Context) ([]TourRequest, error)
	Update(ctx context.Context, req *TourRequest) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req *TourRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*TourRequest, error) {
	var req TourRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *repository) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]TourRequest, error) {
	var result []TourRequest
	err := r.db.WithContext(ctx).
		Where("artist_id = ?", artistID).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}

func (r *repository) ListActive(ctx context.Context) ([]TourRequest, error) {
	var result []TourRequest
	err := r.db.WithContext(ctx).
		Model(&TourRequest{}).
		Select("tour_requests.*, (?) AS bid_count",
			r.db.Table("venue_bids").
				Select("COUNT(*)").
				Where("venue_bids.tour_request_id = tour_requests.id").
				Where("venue_bids.status IN ?", []string{"pending", "hold"})).
		Where("status = ?", StatusActive).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, req *TourRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return r.db.WithContext(ctx).
		Model(&TourRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&TourRequest{}, "id = ?", id).Error
}
