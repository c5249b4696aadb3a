package venues

import (
	"context"
	"errors"

	"tourboard/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*Venue, error)
	List(ctx context.Context, city, state string) ([]Venue, error)
	Update(ctx context.Context, venue *Venue) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, venue *Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&venue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &venue, nil
}

func (r *repository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&venue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &venue, nil
}

func (r *repository) List(ctx context.Context, city, state string) ([]Venue, error) {
	var result []Venue
	query := r.db.WithContext(ctx).Model(&Venue{})
	if city != "" {
		query = query.Where("city ILIKE ?", city)
	}
	if state != "" {
		query = query.Where("state ILIKE ?", state)
	}
	err := query.Order("name ASC").Find(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, venue *Venue) error {
	return r.db.WithContext(ctx).Save(venue).Error
}
