package inventory

import (
	"context"

	"github.com/fekuna/omnipos-inventory-service/internal/alert"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
)

type Repository interface {
	// Reads
	GetByProduct(ctx context.Context, productID int64) (*model.Inventory, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, error)
	Analytics(ctx context.Context) (*model.InventoryAnalytics, error)

	// Settings never touch quantities, so they skip the ledger transaction.
	UpdateSettings(ctx context.Context, productID int64, input *dto.UpdateSettingsInput) (*model.Inventory, error)

	// WithinTx runs fn in one transaction, committing only when fn returns nil.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the ledger store inside one unit of work. Guarded updates return
// (nil, nil) when their predicate does not hold.
type Tx interface {
	Insert(ctx context.Context, inv *model.Inventory) error
	LockByProduct(ctx context.Context, productID int64) (*model.Inventory, error)

	Reserve(ctx context.Context, productID int64, qty int) (*model.Inventory, error)
	Release(ctx context.Context, productID int64, qty int) (*model.Inventory, error)
	Deduct(ctx context.Context, productID int64, qty int) (*model.Inventory, error)
	ApplyDelta(ctx context.Context, productID int64, delta int, restock bool) (*model.Inventory, error)
	Delete(ctx context.Context, productID int64) (*model.Inventory, error)

	LogMovement(ctx context.Context, m *model.StockMovement) error

	UpsertAlert(ctx context.Context, a *model.StockAlert) error
	ResolveAlerts(ctx context.Context, productID int64, types []model.AlertType) (int64, error)
}

// ThresholdHook receives the post-commit side of an evaluation. It must absorb its own failures.
type ThresholdHook interface {
	AfterCommit(ctx context.Context, inv model.Inventory, eval alert.Evaluation, raised []model.StockAlert)
}
