package repository

import (
	"context"

	"github.com/Sabogal22/Sistema-de-inventario/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository defines data access for per-user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByItemTx(tx *gorm.DB, itemID uuid.UUID) error
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	var list []model.Notification
	err := r.db.WithContext(ctx).
		Where("recipient_user_id = ?", userID).
		Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).Update("is_read", true).Error
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error
}

func (r *notificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Notification{}, "id = ?", id).Error
}

func (r *notificationRepo) DeleteByItemTx(tx *gorm.DB, itemID uuid.UUID) error {
	return tx.Delete(&model.Notification{}, "item_id = ?", itemID).Error
}
