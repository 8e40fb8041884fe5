package inventory

import (
	"context"

	"github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
)

type UseCase interface {
	// Ledger mutations
	Create(ctx context.Context, input *dto.CreateInventoryInput) (*model.Inventory, error)
	Reserve(ctx context.Context, input *dto.StockOperationInput) (*model.Inventory, error)
	Release(ctx context.Context, input *dto.StockOperationInput) (*model.Inventory, error)
	ConfirmDeduction(ctx context.Context, input *dto.StockOperationInput) (*model.Inventory, error)
	ReceiveStock(ctx context.Context, input *dto.ReceiveStockInput) (*model.Inventory, error)
	ReturnStock(ctx context.Context, input *dto.StockOperationInput) (*model.Inventory, error)
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Inventory, error)
	Delete(ctx context.Context, productID int64) error
	UpdateSettings(ctx context.Context, productID int64, input *dto.UpdateSettingsInput) (*model.Inventory, error)

	// Reads
	GetByProduct(ctx context.Context, productID int64) (*dto.InventoryView, error)
	List(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, error)
	BulkCheck(ctx context.Context, items []dto.BulkCheckItem) (*dto.BulkCheckResult, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, error)
	History(ctx context.Context, productID int64, limit int) ([]model.StockMovement, error)
	Analytics(ctx context.Context) (*model.InventoryAnalytics, error)
}
