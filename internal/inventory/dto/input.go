package dto

import "github.com/fekuna/omnipos-inventory-service/internal/model"

const (
	DefaultReorderLevel  = 10
	DefaultMaxStockLevel = 1000
)

type CreateInventoryInput struct {
	ProductID         int64
	SKU               string
	Quantity          int
	ReorderLevel      *int
	MaxStockLevel     *int
	WarehouseLocation *string
	PerformedBy       string
}

// StockOperationInput drives reserve, release, confirm-deduction and return.
type StockOperationInput struct {
	ProductID   int64
	Quantity    int
	OrderRef    string
	PerformedBy string
}

type ReceiveStockInput struct {
	ProductID   int64
	Quantity    int
	SupplierRef string
	Notes       string
	PerformedBy string
}

// AdjustStockInput.Quantity is signed; its sign only matters for movement types
// that do not imply a direction.
type AdjustStockInput struct {
	ProductID    int64
	MovementType model.MovementType
	Quantity     int
	Notes        string
	PerformedBy  string
}

type UpdateSettingsInput struct {
	WarehouseLocation *string `json:"warehouse_location"`
	ReorderLevel      *int    `json:"reorder_level"`
	MaxStockLevel     *int    `json:"max_stock_level"`
}

type BulkCheckItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
