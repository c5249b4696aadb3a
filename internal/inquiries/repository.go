package inquiries

import (
	"context"
	"errors"
	"time"

	"tourboard/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, inquiry *BookingInquiry) error
	GetByID(ctx context.Context, id uuid.UUID) (*BookingInquiry, error)
	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]BookingInquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	AddResponse(ctx context.Context, response *BookingResponse) error
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, inquiry *BookingInquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*BookingInquiry, error) {
	var inquiry BookingInquiry
	err := r.db.WithContext(ctx).
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&inquiry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &inquiry, nil
}

func (r *repository) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]BookingInquiry, error) {
	var result []BookingInquiry
	err := r.db.WithContext(ctx).
		Where("from_account_id = ? OR to_account_id = ?", accountID, accountID).
		Order("updated_at DESC").
		Find(&result).Error
	return result, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return r.db.WithContext(ctx).
		Model(&BookingInquiry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *repository) AddResponse(ctx context.Context, response *BookingResponse) error {
	return r.db.WithContext(ctx).Create(response).Error
}

// ExpireOverdue flips every still-open inquiry past its expiry in one
// statement and returns how many rows changed.
func (r *repository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&BookingInquiry{}).
		Where("expires_at < ? AND status IN ?", now, []Status{StatusPending, StatusViewed, StatusResponded}).
		Updates(map[string]interface{}{
			"status":     StatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
