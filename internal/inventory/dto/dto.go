package dto

import (
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
)

type InventoryFilters struct {
	LowStock bool
}

type MovementFilters struct {
	ProductID    *int64
	MovementType string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
}

// InventoryView is a record enriched for display.
type InventoryView struct {
	model.Inventory
	AvailableQuantity int    `json:"available_quantity"`
	ProductName       string `json:"product_name,omitempty"`
}

func NewInventoryView(inv *model.Inventory) *InventoryView {
	return &InventoryView{Inventory: *inv, AvailableQuantity: inv.Available()}
}

type BulkCheckItemResult struct {
	ProductID    int64  `json:"product_id"`
	SKU          string `json:"sku,omitempty"`
	Available    bool   `json:"available"`
	CurrentStock int    `json:"current_stock"`
	Requested    int    `json:"requested"`
	Shortage     int    `json:"shortage,omitempty"`
	Reason       string `json:"reason,omitempty"`
	Error        string `json:"error,omitempty"`
}

type BulkCheckResult struct {
	AllAvailable     bool                  `json:"all_available"`
	Items            []BulkCheckItemResult `json:"items"`
	UnavailableItems []BulkCheckItemResult `json:"unavailable_items"`
}
