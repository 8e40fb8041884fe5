package model

import "time"

type AlertType string

const (
	AlertLowStock   AlertType = "low_stock"
	AlertOutOfStock AlertType = "out_of_stock"
	AlertOverstock  AlertType = "overstock"
)

type AlertStatus string

const (
	AlertActive   AlertStatus = "active"
	AlertResolved AlertStatus = "resolved"
	AlertIgnored  AlertStatus = "ignored"
)

func (s AlertStatus) Valid() bool {
	return s == AlertActive || s == AlertResolved || s == AlertIgnored
}

// StockAlert is unique per (ProductID, AlertType); re-triggering updates it in place.
type StockAlert struct {
	ID              int64       `db:"id" json:"id"`
	ProductID       int64       `db:"product_id" json:"product_id"`
	SKU             string      `db:"sku" json:"sku"`
	CurrentQuantity int         `db:"current_quantity" json:"current_quantity"`
	ReorderLevel    int         `db:"reorder_level" json:"reorder_level"`
	AlertType       AlertType   `db:"alert_type" json:"alert_type"`
	Status          AlertStatus `db:"status" json:"status"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}

// AlertWithStock joins an alert with the live inventory row.
type AlertWithStock struct {
	StockAlert
	WarehouseLocation *string `db:"warehouse_location" json:"warehouse_location"`
	ActualQuantity    int     `db:"actual_quantity" json:"actual_quantity"`
	ReservedQuantity  int     `db:"reserved_quantity" json:"reserved_quantity"`
}

type AlertStats struct {
	ActiveAlerts   int64 `db:"active_alerts" json:"active_alerts"`
	ResolvedAlerts int64 `db:"resolved_alerts" json:"resolved_alerts"`
	IgnoredAlerts  int64 `db:"ignored_alerts" json:"ignored_alerts"`
	TotalAlerts    int64 `db:"total_alerts" json:"total_alerts"`
}

type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionApproved SuggestionStatus = "approved"
	SuggestionRejected SuggestionStatus = "rejected"
	SuggestionOrdered  SuggestionStatus = "ordered"
)

// CanTransitionTo reports whether a suggestion may move from s to next.
func (s SuggestionStatus) CanTransitionTo(next SuggestionStatus) bool {
	switch s {
	case SuggestionPending:
		return next == SuggestionApproved || next == SuggestionRejected
	case SuggestionApproved:
		return next == SuggestionOrdered || next == SuggestionRejected
	}
	return false
}

func (s SuggestionStatus) Valid() bool {
	switch s {
	case SuggestionPending, SuggestionApproved, SuggestionRejected, SuggestionOrdered:
		return true
	}
	return false
}

type ReorderSuggestion struct {
	ID                int64            `db:"id" json:"id"`
	ProductID         int64            `db:"product_id" json:"product_id"`
	SKU               string           `db:"sku" json:"sku"`
	CurrentQuantity   int              `db:"current_quantity" json:"current_quantity"`
	SuggestedQuantity int              `db:"suggested_quantity" json:"suggested_quantity"`
	Status            SuggestionStatus `db:"status" json:"status"`
	ProcessedAt       *time.Time       `db:"processed_at" json:"processed_at"`
	ProcessedBy       *string          `db:"processed_by" json:"processed_by"`
	Notes             *string          `db:"notes" json:"notes"`
	CreatedAt         time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time        `db:"updated_at" json:"updated_at"`
}

// AlertEvent is the notification published after an alert is raised.
type AlertEvent struct {
	EventType       string    `json:"event_type"`
	AlertID         int64     `json:"alert_id"`
	ProductID       int64     `json:"product_id"`
	ProductName     string    `json:"product_name"`
	SKU             string    `json:"sku"`
	AlertType       AlertType `json:"alert_type"`
	CurrentQuantity int       `json:"current_quantity"`
	ReorderLevel    int       `json:"reorder_level"`
	OccurredAt      time.Time `json:"occurred_at"`
}
