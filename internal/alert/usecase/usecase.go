package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-inventory-service/config"
	"github.com/fekuna/omnipos-inventory-service/internal/alert"
	"github.com/fekuna/omnipos-inventory-service/internal/alert/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/auth"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/product"
	"github.com/fekuna/omnipos-inventory-service/pkg/apperror"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"go.uber.org/zap"
)

const (
	statsWindow     = 30 * 24 * time.Hour
	eventAlertRaise = "StockAlertRaised"
)

type alertUseCase struct {
	repo     alert.Repository
	gate     product.Gate
	notifier alert.Notifier
	cfg      config.LedgerConfig
	logger   logger.ZapLogger
}

// NewAlertUseCase wires the alert side of the ledger. gate and notifier may be nil.
func NewAlertUseCase(repo alert.Repository, gate product.Gate, notifier alert.Notifier, cfg config.LedgerConfig, log logger.ZapLogger) alert.UseCase {
	return &alertUseCase{
		repo:     repo,
		gate:     gate,
		notifier: notifier,
		cfg:      cfg,
		logger:   log,
	}
}

// storageCtx bounds a single repository call by the ledger operation timeout.
func (uc *alertUseCase) storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.cfg.OpTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.cfg.OpTimeout)
}

// storageErr marks failures caused by an expired storage deadline as retryable.
func storageErr(ctx context.Context, op string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		err = errors.Join(context.DeadlineExceeded, err)
	}
	return apperror.Storage(op, err)
}

// AfterCommit runs after a ledger mutation has committed. Every failure here is
// logged and absorbed.
func (uc *alertUseCase) AfterCommit(ctx context.Context, inv model.Inventory, eval alert.Evaluation, raised []model.StockAlert) {
	if len(raised) == 0 && eval.SuggestedQuantity == 0 {
		return
	}
	name := uc.productName(ctx, inv.ProductID)

	if eval.SuggestedQuantity > 0 {
		notes := fmt.Sprintf("Auto-generated: %s available stock (%d) at or below reorder level (%d)",
			name, eval.Available, inv.ReorderLevel)
		s := &model.ReorderSuggestion{
			ProductID:         inv.ProductID,
			SKU:               inv.SKU,
			CurrentQuantity:   inv.Quantity,
			SuggestedQuantity: eval.SuggestedQuantity,
			Status:            model.SuggestionPending,
			Notes:             &notes,
		}
		sctx, cancel := uc.storageCtx(ctx)
		err := uc.repo.InsertSuggestion(sctx, s)
		cancel()
		if err != nil {
			uc.logger.Error("failed to create reorder suggestion",
				zap.Int64("product_id", inv.ProductID),
				zap.Error(err),
			)
		}
	}

	for _, a := range raised {
		if a.Status != model.AlertActive {
			continue
		}
		uc.notify(ctx, name, a)
	}
}

func (uc *alertUseCase) productName(ctx context.Context, productID int64) string {
	placeholder := fmt.Sprintf("Product %d", productID)
	if uc.gate == nil {
		return placeholder
	}
	p, err := uc.gate.GetProductByID(ctx, productID)
	if err != nil || p == nil || p.Name == "" {
		uc.logger.Debug("product name enrichment failed", zap.Int64("product_id", productID), zap.Error(err))
		return placeholder
	}
	return p.Name
}

func (uc *alertUseCase) notify(ctx context.Context, name string, a model.StockAlert) {
	uc.logger.Warn("stock alert",
		zap.String("alert_type", string(a.AlertType)),
		zap.Int64("product_id", a.ProductID),
		zap.String("product_name", name),
		zap.String("sku", a.SKU),
		zap.Int("current_quantity", a.CurrentQuantity),
		zap.Int("reorder_level", a.ReorderLevel),
	)
	if uc.notifier == nil {
		return
	}

	event := model.AlertEvent{
		EventType:       eventAlertRaise,
		AlertID:         a.ID,
		ProductID:       a.ProductID,
		ProductName:     name,
		SKU:             a.SKU,
		AlertType:       a.AlertType,
		CurrentQuantity: a.CurrentQuantity,
		ReorderLevel:    a.ReorderLevel,
		OccurredAt:      time.Now().UTC(),
	}
	if err := uc.notifier.Publish(ctx, strconv.FormatInt(a.ProductID, 10), event); err != nil {
		uc.logger.Error("failed to publish stock alert",
			zap.Int64("alert_id", a.ID),
			zap.Int64("product_id", a.ProductID),
			zap.Error(err),
		)
	}
}

func (uc *alertUseCase) CheckLowStock(ctx context.Context) ([]model.StockAlert, error) {
	sctx, cancel := uc.storageCtx(ctx)
	created, err := uc.repo.SweepLowStock(sctx)
	cancel()
	if err != nil {
		uc.logger.Error("low stock sweep failed", zap.Error(err))
		return nil, storageErr(sctx, "check_low_stock", err)
	}
	uc.logger.Info("low stock sweep finished", zap.Int("alerts_created", len(created)))

	for _, a := range created {
		uc.notify(ctx, uc.productName(ctx, a.ProductID), a)
	}
	return created, nil
}

func (uc *alertUseCase) ListAlerts(ctx context.Context, status string) ([]model.AlertWithStock, error) {
	s := model.AlertStatus(status)
	if s != "" && !s.Valid() {
		return nil, apperror.Validationf("invalid alert status %q", status)
	}
	ctx, cancel := uc.storageCtx(ctx)
	defer cancel()

	items, err := uc.repo.ListAlerts(ctx, s)
	if err != nil {
		return nil, storageErr(ctx, "list_alerts", err)
	}
	return items, nil
}

func (uc *alertUseCase) ResolveAlert(ctx context.Context, id int64) (*model.StockAlert, error) {
	return uc.setAlertStatus(ctx, id, model.AlertResolved)
}

func (uc *alertUseCase) IgnoreAlert(ctx context.Context, id int64) (*model.StockAlert, error) {
	return uc.setAlertStatus(ctx, id, model.AlertIgnored)
}

func (uc *alertUseCase) setAlertStatus(ctx context.Context, id int64, status model.AlertStatus) (*model.StockAlert, error) {
	if id <= 0 {
		return nil, apperror.Validation("invalid alert id")
	}
	ctx, cancel := uc.storageCtx(ctx)
	defer cancel()

	a, err := uc.repo.UpdateAlertStatus(ctx, id, status)
	if err != nil {
		return nil, storageErr(ctx, "update_alert_status", err)
	}
	if a == nil {
		return nil, apperror.NotFound("alert not found")
	}
	return a, nil
}

func (uc *alertUseCase) Stats(ctx context.Context) (*model.AlertStats, error) {
	ctx, cancel := uc.storageCtx(ctx)
	defer cancel()

	s, err := uc.repo.Stats(ctx, time.Now().Add(-statsWindow))
	if err != nil {
		return nil, storageErr(ctx, "alert_stats", err)
	}
	return s, nil
}

func (uc *alertUseCase) ListSuggestions(ctx context.Context, status string) ([]model.ReorderSuggestion, error) {
	s := model.SuggestionStatus(status)
	if s != "" && !s.Valid() {
		return nil, apperror.Validationf("invalid suggestion status %q", status)
	}
	ctx, cancel := uc.storageCtx(ctx)
	defer cancel()

	items, err := uc.repo.ListSuggestions(ctx, s)
	if err != nil {
		return nil, storageErr(ctx, "list_suggestions", err)
	}
	return items, nil
}

func (uc *alertUseCase) UpdateSuggestion(ctx context.Context, id int64, in *dto.UpdateSuggestionInput) (*model.ReorderSuggestion, error) {
	if id <= 0 {
		return nil, apperror.Validation("invalid suggestion id")
	}
	if in == nil || !in.Status.Valid() {
		return nil, apperror.Validation("status must be one of pending, approved, rejected, ordered")
	}

	processedBy := in.ProcessedBy
	if processedBy == "" {
		processedBy = auth.GetPerformer(ctx)
	}

	ctx, cancel := uc.storageCtx(ctx)
	defer cancel()

	cur, err := uc.repo.GetSuggestion(ctx, id)
	if err != nil {
		return nil, storageErr(ctx, "get_suggestion", err)
	}
	if cur == nil {
		return nil, apperror.NotFound("reorder suggestion not found")
	}
	if !cur.Status.CanTransitionTo(in.Status) {
		return nil, apperror.Conflict(fmt.Sprintf("cannot move suggestion from %s to %s", cur.Status, in.Status))
	}

	var by *string
	if processedBy != "" {
		by = &processedBy
	}

	updated, err := uc.repo.UpdateSuggestionStatus(ctx, id, cur.Status, in.Status, by, in.Notes)
	if err != nil {
		return nil, storageErr(ctx, "update_suggestion", err)
	}
	if updated == nil {
		return nil, apperror.Conflict("reorder suggestion was modified concurrently")
	}
	return updated, nil
}
