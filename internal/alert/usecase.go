package alert

import (
	"context"

	"github.com/fekuna/omnipos-inventory-service/internal/alert/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
)

type UseCase interface {
	// AfterCommit is the ledger's post-commit threshold hook.
	AfterCommit(ctx context.Context, inv model.Inventory, eval Evaluation, raised []model.StockAlert)

	CheckLowStock(ctx context.Context) ([]model.StockAlert, error)
	ListAlerts(ctx context.Context, status string) ([]model.AlertWithStock, error)
	ResolveAlert(ctx context.Context, id int64) (*model.StockAlert, error)
	IgnoreAlert(ctx context.Context, id int64) (*model.StockAlert, error)
	Stats(ctx context.Context) (*model.AlertStats, error)

	ListSuggestions(ctx context.Context, status string) ([]model.ReorderSuggestion, error)
	UpdateSuggestion(ctx context.Context, id int64, input *dto.UpdateSuggestionInput) (*model.ReorderSuggestion, error)
}
