package usecase

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-inventory-service/config"
	"github.com/fekuna/omnipos-inventory-service/internal/auth"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/product"
	"github.com/fekuna/omnipos-inventory-service/pkg/apperror"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLedgerConfig = config.LedgerConfig{
	OpTimeout:           time.Second,
	HookTimeout:         time.Second,
	MovementPageSize:    100,
	HistoryDefaultLimit: 50,
	BulkCheckParallel:   4,
}

type fixture struct {
	store *fakeStore
	hook  *recordingHook
	gate  *stubGate
	uc    inventory.UseCase
}

func newFixture() *fixture {
	f := &fixture{
		store: newFakeStore(),
		hook:  &recordingHook{},
		gate: &stubGate{products: map[int64]model.Product{
			1: {ID: 1, Name: "Arabica Beans", SKU: "ARA-001"},
			2: {ID: 2, Name: "Paper Cups", SKU: "CUP-002"},
		}},
	}
	f.uc = NewInventoryUseCase(f.store, f.gate, f.hook, testLedgerConfig, logger.NewNop())
	return f
}

func intPtr(i int) *int { return &i }

func requireKind(t *testing.T, err error, kind apperror.Kind) *apperror.Error {
	t.Helper()
	require.Error(t, err)
	ae, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %T", err)
	require.Equal(t, kind, ae.Kind)
	return ae
}

func op(productID int64, qty int, ref string) *dto.StockOperationInput {
	return &dto.StockOperationInput{ProductID: productID, Quantity: qty, OrderRef: ref}
}

func TestReserveThenConfirm_RaisesLowStockAlert(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	inv, err := f.uc.Create(ctx, &dto.CreateInventoryInput{ProductID: 1, SKU: "ARA-001", Quantity: 100, ReorderLevel: intPtr(20)})
	require.NoError(t, err)
	assert.Equal(t, 1000, inv.MaxStockLevel)
	assert.NotNil(t, inv.LastRestockedAt)

	inv, err = f.uc.Reserve(ctx, op(1, 90, "ORD-1"))
	require.NoError(t, err)
	assert.Equal(t, 10, inv.Available())

	_, err = f.uc.Reserve(ctx, op(1, 20, "ORD-2"))
	ae := requireKind(t, err, apperror.KindInsufficientStock)
	require.NotNil(t, ae.Stock)
	assert.Equal(t, 10, ae.Stock.Available)
	assert.Equal(t, 20, ae.Stock.Requested)
	assert.Equal(t, 10, ae.Stock.Shortage)

	inv, err = f.uc.ConfirmDeduction(ctx, op(1, 90, "ORD-1"))
	require.NoError(t, err)
	assert.Equal(t, 10, inv.Quantity)
	assert.Equal(t, 0, inv.ReservedQuantity)

	a, ok := f.store.alert(1, model.AlertLowStock)
	require.True(t, ok)
	assert.Equal(t, model.AlertActive, a.Status)
	assert.Equal(t, 10, a.CurrentQuantity)
	_, ok = f.store.alert(1, model.AlertOutOfStock)
	assert.False(t, ok)

	require.Equal(t, 1, f.hook.count())
	call := f.hook.calls[0]
	assert.Equal(t, 990, call.eval.SuggestedQuantity)
	require.Len(t, call.raised, 1)
	assert.Equal(t, model.AlertLowStock, call.raised[0].AlertType)

	log := f.store.movementLog()
	require.Len(t, log, 3)
	assert.Equal(t, model.MovementIn, log[0].MovementType)
	assert.Equal(t, model.RefInitialStock, *log[0].ReferenceType)
	assert.Equal(t, model.MovementOut, log[1].MovementType)
	assert.Equal(t, model.RefOrderReservation, *log[1].ReferenceType)
	assert.Equal(t, 90, log[1].Quantity)
	assert.Equal(t, model.RefOrderFulfillment, *log[2].ReferenceType)
	assert.Equal(t, "ORD-1", *log[2].ReferenceID)
}

func TestReceiveStock_ResolvesLowStockAlert(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 30, ReorderLevel: 20, MaxStockLevel: 1000})

	_, err := f.uc.ConfirmDeduction(ctx, op(1, 20, "ORD-1"))
	require.NoError(t, err)
	require.Equal(t, 1, f.store.activeAlerts(1))

	inv, err := f.uc.ReceiveStock(ctx, &dto.ReceiveStockInput{ProductID: 1, Quantity: 50, SupplierRef: "PO-9"})
	require.NoError(t, err)
	assert.Equal(t, 60, inv.Quantity)
	assert.NotNil(t, inv.LastRestockedAt)

	a, ok := f.store.alert(1, model.AlertLowStock)
	require.True(t, ok)
	assert.Equal(t, model.AlertResolved, a.Status)
	assert.Equal(t, 0, f.store.activeAlerts(1))

	log := f.store.movementLog()
	last := log[len(log)-1]
	assert.Equal(t, model.MovementIn, last.MovementType)
	assert.Equal(t, model.RefPurchaseOrder, *last.ReferenceType)
	assert.Equal(t, "Stock received from supplier order #PO-9", *last.Notes)
}

func TestReceiveStock_RaisesOverstock(t *testing.T) {
	f := newFixture()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 90, ReorderLevel: 20, MaxStockLevel: 100})

	_, err := f.uc.ReceiveStock(context.Background(), &dto.ReceiveStockInput{ProductID: 1, Quantity: 20})
	require.NoError(t, err)

	a, ok := f.store.alert(1, model.AlertOverstock)
	require.True(t, ok)
	assert.Equal(t, 110, a.CurrentQuantity)
	assert.Equal(t, 1, f.hook.count())
}

func TestReserve_NoOversellUnderConcurrency(t *testing.T) {
	f := newFixture()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 50, ReorderLevel: 5, MaxStockLevel: 100})

	const workers = 120
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, insufficient := 0, 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Reserve(context.Background(), op(1, 1, "ORD"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if apperror.KindOf(err) == apperror.KindInsufficientStock {
				insufficient++
			}
		}()
	}
	wg.Wait()

	inv, _ := f.store.snapshot(1)
	assert.Equal(t, 50, succeeded)
	assert.Equal(t, workers-50, insufficient)
	assert.Equal(t, 50, inv.ReservedQuantity)
	assert.LessOrEqual(t, inv.ReservedQuantity, inv.Quantity)
}

func TestRelease_ClampsAtZero(t *testing.T) {
	f := newFixture()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 40, ReservedQuantity: 5, ReorderLevel: 5, MaxStockLevel: 100})

	inv, err := f.uc.Release(context.Background(), op(1, 10, "ORD-3"))

	require.NoError(t, err)
	assert.Equal(t, 0, inv.ReservedQuantity)
	assert.Equal(t, 40, inv.Quantity)
	log := f.store.movementLog()
	require.Len(t, log, 1)
	assert.Equal(t, model.MovementReturned, log[0].MovementType)
	assert.Equal(t, model.RefOrderCancellation, *log[0].ReferenceType)
	assert.Equal(t, 5, log[0].Quantity)
}

func TestRelease_NothingReservedLogsZero(t *testing.T) {
	f := newFixture()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 40, ReorderLevel: 5, MaxStockLevel: 100})

	inv, err := f.uc.Release(context.Background(), op(1, 7, "ORD-8"))

	require.NoError(t, err)
	assert.Equal(t, 0, inv.ReservedQuantity)
	log := f.store.movementLog()
	require.Len(t, log, 1)
	assert.Equal(t, 0, log[0].Quantity)
}

func TestRelease_Missing(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Release(context.Background(), op(99, 1, "ORD-9"))

	requireKind(t, err, apperror.KindNotFound)
}

func TestConfirmDeduction_MovementFailureRollsBack(t *testing.T) {
	f := newFixture()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 30, ReservedQuantity: 10, ReorderLevel: 25, MaxStockLevel: 100})
	f.store.logErr = errors.New("connection reset")

	_, err := f.uc.ConfirmDeduction(context.Background(), op(1, 10, "ORD-4"))

	requireKind(t, err, apperror.KindStorageFailure)
	inv, _ := f.store.snapshot(1)
	assert.Equal(t, 30, inv.Quantity)
	assert.Equal(t, 10, inv.ReservedQuantity)
	assert.Empty(t, f.store.movementLog())
	assert.Equal(t, 0, f.store.activeAlerts(1))
	assert.Equal(t, 0, f.hook.count())
}

func TestConfirmDeduction_InsufficientQuantity(t *testing.T) {
	f := newFixture()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 5, ReorderLevel: 2, MaxStockLevel: 100})

	_, err := f.uc.ConfirmDeduction(context.Background(), op(1, 8, "ORD-5"))

	ae := requireKind(t, err, apperror.KindInsufficientStock)
	assert.Equal(t, 3, ae.Stock.Shortage)
	assert.Equal(t, 5, ae.Stock.Available)
	assert.Equal(t, "On hand: 5, Requested: 8, Shortage: 3", ae.Details)
}

func TestConfirmDeduction_AlertIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 25, ReorderLevel: 20, MaxStockLevel: 100})

	_, err := f.uc.ConfirmDeduction(ctx, op(1, 10, "A"))
	require.NoError(t, err)
	first, _ := f.store.alert(1, model.AlertLowStock)

	_, err = f.uc.ConfirmDeduction(ctx, op(1, 5, "B"))
	require.NoError(t, err)
	second, _ := f.store.alert(1, model.AlertLowStock)

	assert.Equal(t, 1, f.store.activeAlerts(1))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 15, first.CurrentQuantity)
	assert.Equal(t, 10, second.CurrentQuantity)
}

func TestConfirmDeduction_OutOfStockAlsoRaised(t *testing.T) {
	f := newFixture()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 10, ReservedQuantity: 10, ReorderLevel: 5, MaxStockLevel: 100})

	inv, err := f.uc.ConfirmDeduction(context.Background(), op(1, 10, "ORD-6"))

	require.NoError(t, err)
	assert.Equal(t, 0, inv.Quantity)
	assert.Equal(t, 2, f.store.activeAlerts(1))
}

func TestDelete_BlockedByReservation(t *testing.T) {
	f := newFixture()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 30, ReservedQuantity: 3, ReorderLevel: 5, MaxStockLevel: 100})

	err := f.uc.Delete(context.Background(), 1)

	requireKind(t, err, apperror.KindConflict)
	inv, ok := f.store.snapshot(1)
	require.True(t, ok)
	assert.Equal(t, 3, inv.ReservedQuantity)
	assert.Empty(t, f.store.movementLog())
}

func TestDelete_LogsClosingMovement(t *testing.T) {
	f := newFixture()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 30, ReorderLevel: 5, MaxStockLevel: 100})

	require.NoError(t, f.uc.Delete(context.Background(), 1))

	_, ok := f.store.snapshot(1)
	assert.False(t, ok)
	log := f.store.movementLog()
	require.Len(t, log, 1)
	assert.Equal(t, model.MovementOut, log[0].MovementType)
	assert.Equal(t, 30, log[0].Quantity)
	assert.Equal(t, model.RefInventoryDeletion, *log[0].ReferenceType)

	requireKind(t, f.uc.Delete(context.Background(), 1), apperror.KindNotFound)
}

func TestCreate_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate", func(t *testing.T) {
		f := newFixture()
		f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001"})
		_, err := f.uc.Create(ctx, &dto.CreateInventoryInput{ProductID: 1, SKU: "ARA-001"})
		requireKind(t, err, apperror.KindConflict)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Create(ctx, &dto.CreateInventoryInput{ProductID: 77, SKU: "X"})
		requireKind(t, err, apperror.KindNotFound)
	})

	t.Run("gate down", func(t *testing.T) {
		f := newFixture()
		f.gate.err = product.ErrUnavailable
		_, err := f.uc.Create(ctx, &dto.CreateInventoryInput{ProductID: 1, SKU: "ARA-001"})
		requireKind(t, err, apperror.KindUpstreamUnavailable)
	})

	t.Run("negative quantity", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Create(ctx, &dto.CreateInventoryInput{ProductID: 1, Quantity: -1})
		requireKind(t, err, apperror.KindValidation)
	})
}

func TestCreate_ZeroQuantityLogsNothing(t *testing.T) {
	f := newFixture()

	inv, err := f.uc.Create(context.Background(), &dto.CreateInventoryInput{ProductID: 2})

	require.NoError(t, err)
	assert.Equal(t, "CUP-002", inv.SKU)
	assert.Equal(t, dto.DefaultReorderLevel, inv.ReorderLevel)
	assert.Nil(t, inv.LastRestockedAt)
	assert.Empty(t, f.store.movementLog())
}

func TestAdjustStock_Direction(t *testing.T) {
	tests := []struct {
		name     string
		typ      model.MovementType
		qty      int
		expected int
	}{
		{"damaged subtracts", model.MovementDamaged, 5, 45},
		{"expired subtracts absolute", model.MovementExpired, -5, 45},
		{"out subtracts", model.MovementOut, 5, 45},
		{"in adds absolute", model.MovementIn, -4, 54},
		{"returned adds", model.MovementReturned, 4, 54},
		{"adjustment passes negative through", model.MovementAdjustment, -3, 47},
		{"adjustment passes positive through", model.MovementAdjustment, 3, 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 50, ReorderLevel: 5, MaxStockLevel: 100})
			ctx := auth.WithPerformer(context.Background(), "clerk-1")

			inv, err := f.uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: 1, MovementType: tt.typ, Quantity: tt.qty})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, inv.Quantity)
			log := f.store.movementLog()
			require.Len(t, log, 1)
			assert.Equal(t, tt.typ, log[0].MovementType)
			assert.Greater(t, log[0].Quantity, 0)
			assert.Equal(t, model.RefManualAdjustment, *log[0].ReferenceType)
			assert.Equal(t, "clerk-1", *log[0].PerformedBy)
		})
	}
}

func TestAdjustStock_CannotDropBelowReserved(t *testing.T) {
	f := newFixture()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 20, ReservedQuantity: 15, ReorderLevel: 5, MaxStockLevel: 100})

	_, err := f.uc.AdjustStock(context.Background(), &dto.AdjustStockInput{ProductID: 1, MovementType: model.MovementDamaged, Quantity: 8})

	ae := requireKind(t, err, apperror.KindInsufficientStock)
	assert.Equal(t, 5, ae.Stock.Available)
	inv, _ := f.store.snapshot(1)
	assert.Equal(t, 20, inv.Quantity)
}

func TestAdjustStock_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: 1, MovementType: "reserve", Quantity: 1})
	requireKind(t, err, apperror.KindValidation)

	_, err = f.uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: 1, MovementType: model.MovementIn, Quantity: 0})
	requireKind(t, err, apperror.KindValidation)
}

func TestStockOperations_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Reserve(ctx, op(0, 1, ""))
	requireKind(t, err, apperror.KindValidation)
	_, err = f.uc.Reserve(ctx, op(1, 0, ""))
	requireKind(t, err, apperror.KindValidation)
	_, err = f.uc.Release(ctx, op(1, -2, ""))
	requireKind(t, err, apperror.KindValidation)
	_, err = f.uc.Reserve(ctx, op(404, 1, ""))
	requireKind(t, err, apperror.KindNotFound)
}

func TestReturnStock(t *testing.T) {
	f := newFixture()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 10, ReorderLevel: 20, MaxStockLevel: 100})

	inv, err := f.uc.ReturnStock(context.Background(), op(1, 2, "ORD-8"))

	require.NoError(t, err)
	assert.Equal(t, 12, inv.Quantity)
	assert.Nil(t, inv.LastRestockedAt)
	log := f.store.movementLog()
	assert.Equal(t, model.RefOrderReturn, *log[0].ReferenceType)
}

func TestLedgerInvariantHoldsUnderRandomOperations(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 100, ReorderLevel: 10, MaxStockLevel: 200})
	rng := rand.New(rand.NewSource(42))

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		seed := rng.Int63()
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := rand.New(rand.NewSource(seed))
			for i := 0; i < 200; i++ {
				qty := 1 + r.Intn(15)
				switch r.Intn(5) {
				case 0:
					f.uc.Reserve(ctx, op(1, qty, "R"))
				case 1:
					f.uc.Release(ctx, op(1, qty, "R"))
				case 2:
					f.uc.ConfirmDeduction(ctx, op(1, qty, "R"))
				case 3:
					f.uc.ReceiveStock(ctx, &dto.ReceiveStockInput{ProductID: 1, Quantity: qty})
				case 4:
					f.uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: 1, MovementType: model.MovementDamaged, Quantity: qty})
				}
			}
		}()
	}
	wg.Wait()

	inv, _ := f.store.snapshot(1)
	assert.GreaterOrEqual(t, inv.ReservedQuantity, 0)
	assert.LessOrEqual(t, inv.ReservedQuantity, inv.Quantity)
	for _, m := range f.store.movementLog() {
		assert.GreaterOrEqual(t, m.Quantity, 0)
	}
}

func TestMutation_TimeoutIsRetryableStorageFailure(t *testing.T) {
	f := newFixture()
	f.store.blockTx = true
	cfg := testLedgerConfig
	cfg.OpTimeout = 20 * time.Millisecond
	uc := NewInventoryUseCase(f.store, f.gate, nil, cfg, logger.NewNop())

	_, err := uc.Reserve(context.Background(), op(1, 1, "ORD"))

	ae := requireKind(t, err, apperror.KindStorageFailure)
	assert.True(t, ae.Retryable)
}

func TestBulkCheck_ReportsPerItem(t *testing.T) {
	f := newFixture()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 50, ReservedQuantity: 10})
	f.store.seed(model.Inventory{ProductID: 2, SKU: "CUP-002", Quantity: 5})
	f.store.seed(model.Inventory{ProductID: 3, SKU: "LID-003", Quantity: 5})
	f.store.readErr[3] = errors.New("read timeout")

	res, err := f.uc.BulkCheck(context.Background(), []dto.BulkCheckItem{
		{ProductID: 1, Quantity: 40},
		{ProductID: 2, Quantity: 8},
		{ProductID: 3, Quantity: 1},
		{ProductID: 9, Quantity: 1},
	})

	require.NoError(t, err)
	assert.False(t, res.AllAvailable)
	require.Len(t, res.Items, 4)
	assert.True(t, res.Items[0].Available)
	assert.Equal(t, 40, res.Items[0].CurrentStock)
	assert.False(t, res.Items[1].Available)
	assert.Equal(t, 3, res.Items[1].Shortage)
	assert.Equal(t, "read timeout", res.Items[2].Error)
	assert.Equal(t, "inventory not found", res.Items[3].Reason)
	assert.Len(t, res.UnavailableItems, 3)

	_, err = f.uc.BulkCheck(context.Background(), nil)
	requireKind(t, err, apperror.KindValidation)
}

func TestMovementReads_ApplyLimits(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.ListMovements(ctx, &dto.MovementFilters{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, f.store.lastFilters.Limit)

	_, err = f.uc.History(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, f.store.lastFilters.Limit)
	require.NotNil(t, f.store.lastFilters.ProductID)
	assert.Equal(t, int64(1), *f.store.lastFilters.ProductID)

	_, err = f.uc.ListMovements(ctx, &dto.MovementFilters{MovementType: "teleport"})
	requireKind(t, err, apperror.KindValidation)
}

func TestGetByProduct_EnrichesName(t *testing.T) {
	f := newFixture()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 9, ReservedQuantity: 4})

	view, err := f.uc.GetByProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Arabica Beans", view.ProductName)
	assert.Equal(t, 5, view.AvailableQuantity)

	f.gate.err = product.ErrUnavailable
	view, err = f.uc.GetByProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, view.ProductName)

	_, err = f.uc.GetByProduct(context.Background(), 99)
	requireKind(t, err, apperror.KindNotFound)
}

func TestUpdateSettings(t *testing.T) {
	f := newFixture()
	f.store.seed(model.Inventory{ProductID: 1, SKU: "ARA-001", Quantity: 9, ReorderLevel: 5, MaxStockLevel: 100})

	inv, err := f.uc.UpdateSettings(context.Background(), 1, &dto.UpdateSettingsInput{ReorderLevel: intPtr(12)})
	require.NoError(t, err)
	assert.Equal(t, 12, inv.ReorderLevel)
	assert.Equal(t, 9, inv.Quantity)

	_, err = f.uc.UpdateSettings(context.Background(), 1, &dto.UpdateSettingsInput{})
	requireKind(t, err, apperror.KindValidation)
	_, err = f.uc.UpdateSettings(context.Background(), 5, &dto.UpdateSettingsInput{ReorderLevel: intPtr(1)})
	requireKind(t, err, apperror.KindNotFound)
}
