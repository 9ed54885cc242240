package repository

import (
	"context"

	"github.com/Sabogal22/Sistema-de-inventario/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusRepository provides read access to the administrative status labels
// plus the seed path used at startup.
type StatusRepository interface {
	List(ctx context.Context) ([]model.Status, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Status, error)
	FindByName(ctx context.Context, name string) (*model.Status, error)
	Create(ctx context.Context, s *model.Status) error
}

type statusRepo struct{ db *gorm.DB }

func NewStatusRepository(db *gorm.DB) StatusRepository { return &statusRepo{db: db} }

func (r *statusRepo) List(ctx context.Context) ([]model.Status, error) {
	var list []model.Status
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *statusRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Status, error) {
	var s model.Status
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *statusRepo) FindByName(ctx context.Context, name string) (*model.Status, error) {
	var s model.Status
	if err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *statusRepo) Create(ctx context.Context, s *model.Status) error {
	return r.db.WithContext(ctx).Create(s).Error
}
