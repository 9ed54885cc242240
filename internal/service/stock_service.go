package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Sabogal22/Sistema-de-inventario/internal/apierror"
	"github.com/Sabogal22/Sistema-de-inventario/internal/dto"
	"github.com/Sabogal22/Sistema-de-inventario/internal/model"
	"github.com/Sabogal22/Sistema-de-inventario/internal/repository"
	"github.com/Sabogal22/Sistema-de-inventario/internal/stockstatus"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LowStockNotifier receives ledger transitions that cross a threshold.
// Delivery is best-effort: the ledger logs failures and never rolls back a
// committed stock mutation because of one.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, item *model.Item, newStock int) error
}

// StockService is the stock ledger: the only writer of Item.Stock. Every
// successful mutation appends exactly one history entry in the same
// transaction as the stock update.
type StockService interface {
	ApplyChange(ctx context.Context, itemID uuid.UUID, action string, quantity int, actorID uuid.UUID) (*dto.UpdateStockResponse, error)
	History(ctx context.Context, itemID uuid.UUID) ([]dto.StockHistoryEntryResponse, error)
}

type stockService struct {
	items    repository.ItemRepository
	history  repository.StockHistoryRepository
	notifier LowStockNotifier

	// One mutex per item id. Mutations on the same item are serialized so the
	// read-check-write sequence is atomic; different items never contend.
	locks sync.Map
}

func NewStockService(
	items repository.ItemRepository,
	history repository.StockHistoryRepository,
	notifier LowStockNotifier,
) StockService {
	return &stockService{items: items, history: history, notifier: notifier}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *stockService) lockItem(id uuid.UUID) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (s *stockService) ApplyChange(ctx context.Context, itemID uuid.UUID, action string, quantity int, actorID uuid.UUID) (*dto.UpdateStockResponse, error) {
	if action != model.StockActionAdd && action != model.StockActionSubtract {
		return nil, apierror.Validation("type debe ser add o subtract")
	}
	if quantity <= 0 {
		return nil, apierror.Validation("quantity debe ser un entero positivo")
	}

	mu := s.lockItem(itemID)
	mu.Lock()
	defer mu.Unlock()

	var (
		entry    model.StockHistoryEntry
		newStock int
		oldStock int
	)
	txErr := runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
		it, err := s.items.FindByIDForUpdateTx(tx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Ítem no encontrado")
			}
			return err
		}

		oldStock = it.Stock
		if action == model.StockActionAdd {
			newStock = oldStock + quantity
		} else {
			newStock = oldStock - quantity
		}
		// The one invariant that matters: stock never goes negative. Reject
		// before touching anything so neither stock nor history changes.
		if newStock < 0 {
			return apierror.InsufficientStock("Stock insuficiente para la operación")
		}

		if err := s.items.SetStockTx(tx, itemID, newStock); err != nil {
			return err
		}
		entry = model.StockHistoryEntry{
			ItemID:      itemID,
			Action:      action,
			Quantity:    quantity,
			OldStock:    oldStock,
			NewStock:    newStock,
			ActorUserID: actorID,
		}
		return s.history.CreateTx(tx, &entry)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Reload for threshold + notification context; the mutation is already
	// committed, so a read failure here only skips the notification.
	it, err := s.items.FindByID(ctx, itemID)
	if err == nil {
		s.maybeNotify(ctx, it, oldStock, newStock)
	}

	status := stockstatus.Derive(newStock, minStockOf(it, newStock))
	return &dto.UpdateStockResponse{
		Success:     true,
		Stock:       newStock,
		HistoryID:   entry.ID.String(),
		StockStatus: string(status),
	}, nil
}

func minStockOf(it *model.Item, fallback int) int {
	if it != nil {
		return it.MinStock
	}
	// Item vanished between commit and reload; derive against itself so the
	// status degrades to Agotado/Disponible without a threshold.
	if fallback == 0 {
		return 1
	}
	return fallback
}

// maybeNotify fires the low-stock notifier when the derived status crosses
// downward: Disponible → BajoStock/Agotado, or anything → Agotado.
// Fire-and-forget: errors are logged, never returned.
func (s *stockService) maybeNotify(ctx context.Context, it *model.Item, oldStock, newStock int) {
	if s.notifier == nil {
		return
	}
	before := stockstatus.Derive(oldStock, it.MinStock)
	after := stockstatus.Derive(newStock, it.MinStock)

	crossedBelow := before == stockstatus.Available &&
		(after == stockstatus.Low || after == stockstatus.Depleted)
	depleted := before != stockstatus.Depleted && after == stockstatus.Depleted

	if !crossedBelow && !depleted {
		return
	}
	if err := s.notifier.NotifyLowStock(ctx, it, newStock); err != nil {
		log.Error().Err(err).
			Str("item_id", it.ID.String()).
			Int("stock", newStock).
			Msg("low-stock notification failed")
	}
}

func (s *stockService) History(ctx context.Context, itemID uuid.UUID) ([]dto.StockHistoryEntryResponse, error) {
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Ítem no encontrado")
		}
		return nil, err
	}
	entries, err := s.history.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.StockHistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, dto.StockHistoryEntryResponse{
			ID:          e.ID.String(),
			ItemID:      e.ItemID.String(),
			Action:      e.Action,
			Quantity:    e.Quantity,
			OldStock:    e.OldStock,
			NewStock:    e.NewStock,
			ActorUserID: e.ActorUserID.String(),
			CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return result, nil
}
