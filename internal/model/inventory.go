package model

import "time"

type Inventory struct {
	ID                int64      `db:"id" json:"id"`
	ProductID         int64      `db:"product_id" json:"product_id"`
	SKU               string     `db:"sku" json:"sku"`
	Quantity          int        `db:"quantity" json:"quantity"`
	ReservedQuantity  int        `db:"reserved_quantity" json:"reserved_quantity"`
	WarehouseLocation *string    `db:"warehouse_location" json:"warehouse_location"`
	ReorderLevel      int        `db:"reorder_level" json:"reorder_level"`
	MaxStockLevel     int        `db:"max_stock_level" json:"max_stock_level"`
	LastRestockedAt   *time.Time `db:"last_restocked_at" json:"last_restocked_at"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// Available is the stock not earmarked for in-flight orders.
func (i *Inventory) Available() int {
	return i.Quantity - i.ReservedQuantity
}

type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment"
	MovementReserve    MovementType = "reserve"
	MovementRelease    MovementType = "release"
	MovementReturned   MovementType = "returned"
	MovementDamaged    MovementType = "damaged"
	MovementExpired    MovementType = "expired"
)

func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment, MovementReserve,
		MovementRelease, MovementReturned, MovementDamaged, MovementExpired:
		return true
	}
	return false
}

const (
	RefInitialStock      = "initial_stock"
	RefOrderReservation  = "order_reservation"
	RefOrderCancellation = "order_cancellation"
	RefOrderFulfillment  = "order_fulfillment"
	RefOrderReturn       = "order_return"
	RefPurchaseOrder     = "purchase_order"
	RefManualAdjustment  = "manual_adjustment"
	RefInventoryDeletion = "inventory_deletion"
)

// StockMovement is one immutable audit entry. Quantity is always a magnitude;
// direction follows from MovementType.
type StockMovement struct {
	ID            int64        `db:"id" json:"id"`
	ProductID     int64        `db:"product_id" json:"product_id"`
	SKU           string       `db:"sku" json:"sku"`
	MovementType  MovementType `db:"movement_type" json:"movement_type"`
	Quantity      int          `db:"quantity" json:"quantity"`
	ReferenceType *string      `db:"reference_type" json:"reference_type"`
	ReferenceID   *string      `db:"reference_id" json:"reference_id"`
	Notes         *string      `db:"notes" json:"notes"`
	PerformedBy   *string      `db:"performed_by" json:"performed_by"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

type InventoryAnalytics struct {
	TotalProducts      int64   `db:"total_products" json:"total_products"`
	TotalStock         int64   `db:"total_stock" json:"total_stock"`
	TotalReserved      int64   `db:"total_reserved" json:"total_reserved"`
	LowStockProducts   int64   `db:"low_stock_products" json:"low_stock_products"`
	OutOfStockProducts int64   `db:"out_of_stock_products" json:"out_of_stock_products"`
	AvgStockPerProduct float64 `db:"avg_stock_per_product" json:"avg_stock_per_product"`
}
