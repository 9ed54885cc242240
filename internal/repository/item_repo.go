package repository

import (
	"context"

	"github.com/Sabogal22/Sistema-de-inventario/internal/dto"
	"github.com/Sabogal22/Sistema-de-inventario/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemRepository defines the data access contract for inventory items.
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	List(ctx context.Context, filter dto.ItemFilter) ([]model.Item, error)
	// ListAll returns every item with its catalog rows preloaded, used by the
	// dashboard, which recomputes counts on demand.
	ListAll(ctx context.Context) ([]model.Item, error)
	Search(ctx context.Context, query string) ([]model.Item, error)
	Update(ctx context.Context, it *model.Item) error

	// Used inside transactions; callers must pass the tx instance.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Item, error)
	SetStockTx(tx *gorm.DB, id uuid.UUID, stock int) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepo{db: db} }

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Location").Preload("Status").
		First(&it, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) List(ctx context.Context, filter dto.ItemFilter) ([]model.Item, error) {
	q := r.db.WithContext(ctx).Model(&model.Item{}).
		Preload("Category").Preload("Location").Preload("Status")

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.LocationID != "" {
		q = q.Where("location_id = ?", filter.LocationID)
	}
	if filter.StatusID != "" {
		q = q.Where("status_id = ?", filter.StatusID)
	}

	var items []model.Item
	err := q.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) ListAll(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Location").Preload("Status").
		Order("name ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) Search(ctx context.Context, query string) ([]model.Item, error) {
	like := "%" + query + "%"
	var items []model.Item
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Location").Preload("Status").
		Where("name ILIKE ? OR description ILIKE ?", like, like).
		Order("name ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Save(it).Error
}

// FindByIDForUpdateTx reads the item under a row lock so the check-then-write
// sequence of a stock mutation cannot interleave with another transaction.
func (r *itemRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Item, error) {
	var it model.Item
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&it, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) SetStockTx(tx *gorm.DB, id uuid.UUID, stock int) error {
	return tx.Model(&model.Item{}).Where("id = ?", id).Update("stock", stock).Error
}

func (r *itemRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Item{}, "id = ?", id).Error
}

func (r *itemRepo) DB() *gorm.DB { return r.db }
