package alert

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
)

type Repository interface {
	// Alerts
	ListAlerts(ctx context.Context, status model.AlertStatus) ([]model.AlertWithStock, error)
	SweepLowStock(ctx context.Context) ([]model.StockAlert, error)
	UpdateAlertStatus(ctx context.Context, id int64, status model.AlertStatus) (*model.StockAlert, error)
	Stats(ctx context.Context, since time.Time) (*model.AlertStats, error)

	// Reorder suggestions
	InsertSuggestion(ctx context.Context, s *model.ReorderSuggestion) error
	ListSuggestions(ctx context.Context, status model.SuggestionStatus) ([]model.ReorderSuggestion, error)
	GetSuggestion(ctx context.Context, id int64) (*model.ReorderSuggestion, error)
	// UpdateSuggestionStatus only applies when the row is still in status from.
	UpdateSuggestionStatus(ctx context.Context, id int64, from, to model.SuggestionStatus, processedBy, notes *string) (*model.ReorderSuggestion, error)
}

// Notifier publishes alert events to downstream consumers.
type Notifier interface {
	Publish(ctx context.Context, key string, payload any) error
}
