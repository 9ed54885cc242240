package repository

import (
	"context"

	"github.com/Sabogal22/Sistema-de-inventario/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationRepository mirrors CategoryRepository for the location namespace.
type LocationRepository interface {
	Create(ctx context.Context, l *model.Location) error
	List(ctx context.Context) ([]model.Location, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error)
	FindByName(ctx context.Context, name string) (*model.Location, error)
	Update(ctx context.Context, l *model.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountItems(ctx context.Context, id uuid.UUID) (int64, error)
}

type locationRepo struct{ db *gorm.DB }

func NewLocationRepository(db *gorm.DB) LocationRepository { return &locationRepo{db: db} }

func (r *locationRepo) Create(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *locationRepo) List(ctx context.Context) ([]model.Location, error) {
	var list []model.Location
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *locationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	var l model.Location
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *locationRepo) FindByName(ctx context.Context, name string) (*model.Location, error) {
	var l model.Location
	if err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *locationRepo) Update(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *locationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Location{}, "id = ?", id).Error
}

func (r *locationRepo) CountItems(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).Where("location_id = ?", id).Count(&n).Error
	return n, err
}
