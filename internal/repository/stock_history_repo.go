package repository

import (
	"context"

	"github.com/Sabogal22/Sistema-de-inventario/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockHistoryRepository defines access to the append-only stock ledger.
// There is deliberately no update path: entries are written once inside the
// same transaction as the stock change and removed only when their item is.
type StockHistoryRepository interface {
	CreateTx(tx *gorm.DB, e *model.StockHistoryEntry) error
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.StockHistoryEntry, error)
	CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error)
	DeleteByItemTx(tx *gorm.DB, itemID uuid.UUID) error
}

type stockHistoryRepo struct{ db *gorm.DB }

func NewStockHistoryRepository(db *gorm.DB) StockHistoryRepository {
	return &stockHistoryRepo{db: db}
}

func (r *stockHistoryRepo) CreateTx(tx *gorm.DB, e *model.StockHistoryEntry) error {
	return tx.Create(e).Error
}

func (r *stockHistoryRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.StockHistoryEntry, error) {
	var entries []model.StockHistoryEntry
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *stockHistoryRepo) CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.StockHistoryEntry{}).
		Where("item_id = ?", itemID).Count(&n).Error
	return n, err
}

func (r *stockHistoryRepo) DeleteByItemTx(tx *gorm.DB, itemID uuid.UUID) error {
	return tx.Delete(&model.StockHistoryEntry{}, "item_id = ?", itemID).Error
}
