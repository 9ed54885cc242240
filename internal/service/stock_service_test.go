package service

import (
	"context"
	"sync"
	"testing"

	"github.com/Sabogal22/Sistema-de-inventario/internal/apierror"
	"github.com/Sabogal22/Sistema-de-inventario/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItem(t *testing.T, repo *stubItemRepo, stock, minStock int) *model.Item {
	t.Helper()
	it := &model.Item{
		Name:       "Taladro",
		CategoryID: uuid.New(),
		LocationID: uuid.New(),
		StatusID:   uuid.New(),
		Stock:      stock,
		MinStock:   minStock,
	}
	require.NoError(t, repo.Create(context.Background(), it))
	return it
}

func TestApplyChangeAddAndSubtract(t *testing.T) {
	items := newStubItemRepo()
	history := newStubHistoryRepo()
	svc := NewStockService(items, history, nil)
	it := seedItem(t, items, 10, 3)
	actor := uuid.New()

	resp, err := svc.ApplyChange(context.Background(), it.ID, model.StockActionAdd, 5, actor)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 15, resp.Stock)
	assert.NotEmpty(t, resp.HistoryID)

	resp, err = svc.ApplyChange(context.Background(), it.ID, model.StockActionSubtract, 12, actor)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Stock)

	entries, err := svc.History(context.Background(), it.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first
	assert.Equal(t, model.StockActionSubtract, entries[0].Action)
	assert.Equal(t, 15, entries[0].OldStock)
	assert.Equal(t, 3, entries[0].NewStock)
	assert.Equal(t, actor.String(), entries[0].ActorUserID)
}

func TestApplyChangeRejectsNegativeStock(t *testing.T) {
	items := newStubItemRepo()
	history := newStubHistoryRepo()
	svc := NewStockService(items, history, nil)
	it := seedItem(t, items, 5, 3)

	_, err := svc.ApplyChange(context.Background(), it.ID, model.StockActionSubtract, 6, uuid.New())
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInsufficientStock))

	// Neither stock nor history changed
	got, err := items.FindByID(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
	n, err := history.CountByItem(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestApplyChangeValidation(t *testing.T) {
	items := newStubItemRepo()
	svc := NewStockService(items, newStubHistoryRepo(), nil)
	it := seedItem(t, items, 5, 3)

	_, err := svc.ApplyChange(context.Background(), it.ID, "transfer", 1, uuid.New())
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))

	_, err = svc.ApplyChange(context.Background(), it.ID, model.StockActionAdd, 0, uuid.New())
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))

	_, err = svc.ApplyChange(context.Background(), it.ID, model.StockActionSubtract, -2, uuid.New())
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))

	_, err = svc.ApplyChange(context.Background(), uuid.New(), model.StockActionAdd, 1, uuid.New())
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

// Scenario from the client flow: stock 5, minimum 3. Subtracting 3 leaves 2
// (below minimum, notification fires); subtracting 5 more is rejected and the
// item stays untouched.
func TestApplyChangeLowStockScenario(t *testing.T) {
	items := newStubItemRepo()
	history := newStubHistoryRepo()
	notifier := &fakeNotifier{}
	svc := NewStockService(items, history, notifier)
	it := seedItem(t, items, 5, 3)

	resp, err := svc.ApplyChange(context.Background(), it.ID, model.StockActionSubtract, 3, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Stock)
	assert.Equal(t, "BajoStock", resp.StockStatus)
	assert.Equal(t, 1, notifier.count())

	_, err = svc.ApplyChange(context.Background(), it.ID, model.StockActionSubtract, 5, uuid.New())
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInsufficientStock))

	got, err := items.FindByID(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
	assert.Equal(t, 1, notifier.count())
}

func TestApplyChangeNotifiesOnDepletion(t *testing.T) {
	items := newStubItemRepo()
	notifier := &fakeNotifier{}
	svc := NewStockService(items, newStubHistoryRepo(), notifier)
	it := seedItem(t, items, 2, 3) // already BajoStock

	// BajoStock -> BajoStock: no new alert
	_, err := svc.ApplyChange(context.Background(), it.ID, model.StockActionSubtract, 1, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, notifier.count())

	// BajoStock -> Agotado: alert
	resp, err := svc.ApplyChange(context.Background(), it.ID, model.StockActionSubtract, 1, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "Agotado", resp.StockStatus)
	assert.Equal(t, 1, notifier.count())
}

func TestApplyChangeDoesNotNotifyWhileAvailable(t *testing.T) {
	items := newStubItemRepo()
	notifier := &fakeNotifier{}
	svc := NewStockService(items, newStubHistoryRepo(), notifier)
	it := seedItem(t, items, 10, 3)

	_, err := svc.ApplyChange(context.Background(), it.ID, model.StockActionSubtract, 5, uuid.New())
	require.NoError(t, err)

	_, err = svc.ApplyChange(context.Background(), it.ID, model.StockActionAdd, 20, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 0, notifier.count())
}

// Concurrent mutations on the same item must serialize: the final stock equals
// the sum of all accepted changes and every accepted change has exactly one
// history entry.
func TestApplyChangeConcurrent(t *testing.T) {
	items := newStubItemRepo()
	history := newStubHistoryRepo()
	svc := NewStockService(items, history, nil)
	it := seedItem(t, items, 100, 1)
	actor := uuid.New()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = svc.ApplyChange(context.Background(), it.ID, model.StockActionAdd, 2, actor)
		}()
		go func() {
			defer wg.Done()
			_, _ = svc.ApplyChange(context.Background(), it.ID, model.StockActionSubtract, 1, actor)
		}()
	}
	wg.Wait()

	got, err := items.FindByID(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, 100+n*2-n, got.Stock)

	count, err := history.CountByItem(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2*n), count)
}

func TestHistoryUnknownItem(t *testing.T) {
	svc := NewStockService(newStubItemRepo(), newStubHistoryRepo(), nil)
	_, err := svc.History(context.Background(), uuid.New())
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}
