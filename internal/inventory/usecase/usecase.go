package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-inventory-service/config"
	"github.com/fekuna/omnipos-inventory-service/internal/alert"
	"github.com/fekuna/omnipos-inventory-service/internal/auth"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/product"
	"github.com/fekuna/omnipos-inventory-service/pkg/apperror"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/fekuna/omnipos-inventory-service/internal/inventory"

type inventoryUseCase struct {
	repo   inventory.Repository
	gate   product.Gate
	hook   inventory.ThresholdHook
	cfg    config.LedgerConfig
	logger logger.ZapLogger
	tracer trace.Tracer
}

// NewInventoryUseCase builds the ledger engine. hook may be nil.
func NewInventoryUseCase(
	repo inventory.Repository,
	gate product.Gate,
	hook inventory.ThresholdHook,
	cfg config.LedgerConfig,
	log logger.ZapLogger,
) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		gate:   gate,
		hook:   hook,
		cfg:    cfg,
		logger: log,
		tracer: otel.Tracer(tracerName),
	}
}

// outcome is what a unit of work hands back for the post-commit step.
type outcome struct {
	inv    *model.Inventory
	eval   *alert.Evaluation
	raised []model.StockAlert
}

// mutate runs fn as one transaction bounded by the operation timeout, then
// fires the threshold hook once the commit has succeeded.
func (uc *inventoryUseCase) mutate(ctx context.Context, op string, productID int64, fn func(ctx context.Context, tx inventory.Tx, out *outcome) error) (*model.Inventory, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory."+op, trace.WithAttributes(attribute.Int64("product_id", productID)))
	defer span.End()

	opCtx, cancel := context.WithTimeout(ctx, uc.cfg.OpTimeout)
	defer cancel()

	out := &outcome{}
	err := uc.repo.WithinTx(opCtx, func(tx inventory.Tx) error {
		return fn(opCtx, tx, out)
	})
	if err != nil {
		err = uc.classify(opCtx, op, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperror.KindOf(err)))
		return nil, err
	}

	uc.afterCommit(ctx, out)
	return out.inv, nil
}

func (uc *inventoryUseCase) classify(ctx context.Context, op string, err error) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		err = errors.Join(context.DeadlineExceeded, err)
	}
	uc.logger.Error("ledger operation failed", zap.String("op", op), zap.Error(err))
	return apperror.Storage(op, err)
}

func (uc *inventoryUseCase) afterCommit(ctx context.Context, out *outcome) {
	if uc.hook == nil || out.eval == nil || out.inv == nil || out.eval.Empty() {
		return
	}
	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.HookTimeout)
	defer cancel()
	uc.hook.AfterCommit(hookCtx, *out.inv, *out.eval, out.raised)
}

// evaluate writes the alert side of an evaluation inside the open transaction.
func evaluate(ctx context.Context, tx inventory.Tx, inv *model.Inventory, ev alert.Evaluation, out *outcome) error {
	if len(ev.Resolve) > 0 {
		if _, err := tx.ResolveAlerts(ctx, inv.ProductID, ev.Resolve); err != nil {
			return fmt.Errorf("resolve alerts: %w", err)
		}
	}
	for _, at := range ev.Raise {
		current := ev.Available
		if at == model.AlertOverstock {
			current = inv.Quantity
		}
		a := model.StockAlert{
			ProductID:       inv.ProductID,
			SKU:             inv.SKU,
			CurrentQuantity: current,
			ReorderLevel:    inv.ReorderLevel,
			AlertType:       at,
		}
		if err := tx.UpsertAlert(ctx, &a); err != nil {
			return fmt.Errorf("upsert %s alert: %w", at, err)
		}
		out.raised = append(out.raised, a)
	}
	out.eval = &ev
	return nil
}

func movement(ctx context.Context, inv *model.Inventory, t model.MovementType, qty int, refType, refID, notes, performedBy string) *model.StockMovement {
	if qty < 0 {
		qty = -qty
	}
	m := &model.StockMovement{
		ProductID:     inv.ProductID,
		SKU:           inv.SKU,
		MovementType:  t,
		Quantity:      qty,
		ReferenceType: optional(refType),
		ReferenceID:   optional(refID),
		Notes:         optional(notes),
	}
	if performedBy == "" {
		performedBy = auth.GetPerformer(ctx)
	}
	m.PerformedBy = optional(performedBy)
	return m
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func validateStockOp(in *dto.StockOperationInput) error {
	if in == nil || in.ProductID <= 0 {
		return apperror.Validation("product_id is required")
	}
	if in.Quantity <= 0 {
		return apperror.Validation("quantity must be greater than zero")
	}
	return nil
}

func (uc *inventoryUseCase) Create(ctx context.Context, in *dto.CreateInventoryInput) (*model.Inventory, error) {
	if in == nil || in.ProductID <= 0 {
		return nil, apperror.Validation("product_id is required")
	}
	if in.Quantity < 0 {
		return nil, apperror.Validation("quantity cannot be negative")
	}

	inv := &model.Inventory{
		ProductID:         in.ProductID,
		SKU:               in.SKU,
		Quantity:          in.Quantity,
		WarehouseLocation: in.WarehouseLocation,
		ReorderLevel:      dto.DefaultReorderLevel,
		MaxStockLevel:     dto.DefaultMaxStockLevel,
	}
	if in.ReorderLevel != nil {
		inv.ReorderLevel = *in.ReorderLevel
	}
	if in.MaxStockLevel != nil {
		inv.MaxStockLevel = *in.MaxStockLevel
	}
	if inv.ReorderLevel < 0 || inv.MaxStockLevel < 0 {
		return nil, apperror.Validation("stock levels cannot be negative")
	}

	p, err := uc.gate.GetProductByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("product %d not found", in.ProductID))
		}
		uc.logger.Warn("product gate unavailable", zap.Int64("product_id", in.ProductID), zap.Error(err))
		return nil, apperror.UpstreamUnavailable("product service unavailable", err)
	}
	if inv.SKU == "" && p != nil {
		inv.SKU = p.SKU
	}
	if inv.SKU == "" {
		return nil, apperror.Validation("sku is required")
	}
	if inv.Quantity > 0 {
		now := time.Now()
		inv.LastRestockedAt = &now
	}

	return uc.mutate(ctx, "create", in.ProductID, func(ctx context.Context, tx inventory.Tx, out *outcome) error {
		existing, err := tx.LockByProduct(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.Conflict("inventory already exists for this product")
		}

		if err := tx.Insert(ctx, inv); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return apperror.Conflict("inventory already exists for this product")
			}
			return err
		}

		if inv.Quantity > 0 {
			m := movement(ctx, inv, model.MovementIn, inv.Quantity, model.RefInitialStock, "", "Initial stock", in.PerformedBy)
			if err := tx.LogMovement(ctx, m); err != nil {
				return err
			}
		}
		out.inv = inv
		return nil
	})
}

func (uc *inventoryUseCase) Reserve(ctx context.Context, in *dto.StockOperationInput) (*model.Inventory, error) {
	if err := validateStockOp(in); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, "reserve", in.ProductID, func(ctx context.Context, tx inventory.Tx, out *outcome) error {
		inv, err := tx.Reserve(ctx, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		if inv == nil {
			cur, err := tx.LockByProduct(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if cur == nil {
				return apperror.NotFound("inventory not found")
			}
			return apperror.InsufficientStock(cur.Available(), in.Quantity)
		}

		notes := fmt.Sprintf("Reserved for order #%s", in.OrderRef)
		m := movement(ctx, inv, model.MovementOut, in.Quantity, model.RefOrderReservation, in.OrderRef, notes, in.PerformedBy)
		if err := tx.LogMovement(ctx, m); err != nil {
			return err
		}
		out.inv = inv
		return nil
	})
}

func (uc *inventoryUseCase) Release(ctx context.Context, in *dto.StockOperationInput) (*model.Inventory, error) {
	if err := validateStockOp(in); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, "release", in.ProductID, func(ctx context.Context, tx inventory.Tx, out *outcome) error {
		cur, err := tx.LockByProduct(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if cur == nil {
			return apperror.NotFound("inventory not found")
		}
		// The row lock keeps reserved_quantity stable until the clamped update below.
		released := min(in.Quantity, cur.ReservedQuantity)

		inv, err := tx.Release(ctx, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		if inv == nil {
			return apperror.NotFound("inventory not found")
		}

		notes := fmt.Sprintf("Released from cancelled order #%s", in.OrderRef)
		if released < in.Quantity {
			notes = fmt.Sprintf("%s (requested %d, %d reserved)", notes, in.Quantity, cur.ReservedQuantity)
		}
		m := movement(ctx, inv, model.MovementReturned, released, model.RefOrderCancellation, in.OrderRef, notes, in.PerformedBy)
		if err := tx.LogMovement(ctx, m); err != nil {
			return err
		}
		out.inv = inv
		return nil
	})
}

func (uc *inventoryUseCase) ConfirmDeduction(ctx context.Context, in *dto.StockOperationInput) (*model.Inventory, error) {
	if err := validateStockOp(in); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, "confirm_deduction", in.ProductID, func(ctx context.Context, tx inventory.Tx, out *outcome) error {
		inv, err := tx.Deduct(ctx, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		if inv == nil {
			cur, err := tx.LockByProduct(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if cur == nil {
				return apperror.NotFound("inventory not found")
			}
			// Deduction consumes the reservation, so the shortage is against on-hand quantity.
			ae := apperror.InsufficientStock(cur.Quantity, in.Quantity)
			ae.Details = fmt.Sprintf("On hand: %d, Requested: %d, Shortage: %d", cur.Quantity, in.Quantity, ae.Stock.Shortage)
			return ae
		}

		notes := fmt.Sprintf("Fulfilled order #%s", in.OrderRef)
		m := movement(ctx, inv, model.MovementOut, in.Quantity, model.RefOrderFulfillment, in.OrderRef, notes, in.PerformedBy)
		if err := tx.LogMovement(ctx, m); err != nil {
			return err
		}
		out.inv = inv
		return evaluate(ctx, tx, inv, alert.EvaluateDepletion(*inv), out)
	})
}

func (uc *inventoryUseCase) ReceiveStock(ctx context.Context, in *dto.ReceiveStockInput) (*model.Inventory, error) {
	if in == nil || in.ProductID <= 0 {
		return nil, apperror.Validation("product_id is required")
	}
	if in.Quantity <= 0 {
		return nil, apperror.Validation("quantity must be greater than zero")
	}
	notes := in.Notes
	if notes == "" {
		notes = fmt.Sprintf("Stock received from supplier order #%s", in.SupplierRef)
	}

	return uc.mutate(ctx, "receive", in.ProductID, func(ctx context.Context, tx inventory.Tx, out *outcome) error {
		inv, err := tx.ApplyDelta(ctx, in.ProductID, in.Quantity, true)
		if err != nil {
			return err
		}
		if inv == nil {
			return apperror.NotFound("inventory not found")
		}

		m := movement(ctx, inv, model.MovementIn, in.Quantity, model.RefPurchaseOrder, in.SupplierRef, notes, in.PerformedBy)
		if err := tx.LogMovement(ctx, m); err != nil {
			return err
		}
		out.inv = inv
		return evaluate(ctx, tx, inv, alert.EvaluateRestock(*inv), out)
	})
}

// ReturnStock puts goods from a completed order back on the shelf.
func (uc *inventoryUseCase) ReturnStock(ctx context.Context, in *dto.StockOperationInput) (*model.Inventory, error) {
	if err := validateStockOp(in); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, "return", in.ProductID, func(ctx context.Context, tx inventory.Tx, out *outcome) error {
		inv, err := tx.ApplyDelta(ctx, in.ProductID, in.Quantity, false)
		if err != nil {
			return err
		}
		if inv == nil {
			return apperror.NotFound("inventory not found")
		}

		notes := fmt.Sprintf("Returned from order #%s", in.OrderRef)
		m := movement(ctx, inv, model.MovementReturned, in.Quantity, model.RefOrderReturn, in.OrderRef, notes, in.PerformedBy)
		if err := tx.LogMovement(ctx, m); err != nil {
			return err
		}
		out.inv = inv
		return evaluate(ctx, tx, inv, alert.EvaluateRestock(*inv), out)
	})
}

var adjustableTypes = map[model.MovementType]bool{
	model.MovementIn:         true,
	model.MovementOut:        true,
	model.MovementAdjustment: true,
	model.MovementDamaged:    true,
	model.MovementExpired:    true,
	model.MovementReturned:   true,
}

// adjustmentDelta derives the signed change for a manual adjustment. Typed
// movements imply their own direction; anything else passes the caller's sign through.
func adjustmentDelta(t model.MovementType, qty int) int {
	abs := qty
	if abs < 0 {
		abs = -abs
	}
	switch t {
	case model.MovementOut, model.MovementDamaged, model.MovementExpired:
		return -abs
	case model.MovementIn, model.MovementReturned:
		return abs
	default:
		return qty
	}
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, in *dto.AdjustStockInput) (*model.Inventory, error) {
	if in == nil || in.ProductID <= 0 {
		return nil, apperror.Validation("product_id is required")
	}
	if !adjustableTypes[in.MovementType] {
		return nil, apperror.Validationf("invalid movement_type %q", in.MovementType)
	}
	if in.Quantity == 0 {
		return nil, apperror.Validation("quantity cannot be zero")
	}
	delta := adjustmentDelta(in.MovementType, in.Quantity)

	return uc.mutate(ctx, "adjust", in.ProductID, func(ctx context.Context, tx inventory.Tx, out *outcome) error {
		inv, err := tx.ApplyDelta(ctx, in.ProductID, delta, false)
		if err != nil {
			return err
		}
		if inv == nil {
			cur, err := tx.LockByProduct(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if cur == nil {
				return apperror.NotFound("inventory not found")
			}
			return apperror.InsufficientStock(cur.Available(), -delta)
		}

		m := movement(ctx, inv, in.MovementType, delta, model.RefManualAdjustment, "", in.Notes, in.PerformedBy)
		if err := tx.LogMovement(ctx, m); err != nil {
			return err
		}
		out.inv = inv
		if delta < 0 {
			return evaluate(ctx, tx, inv, alert.EvaluateDepletion(*inv), out)
		}
		return evaluate(ctx, tx, inv, alert.EvaluateRestock(*inv), out)
	})
}

func (uc *inventoryUseCase) Delete(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return apperror.Validation("product_id is required")
	}

	_, err := uc.mutate(ctx, "delete", productID, func(ctx context.Context, tx inventory.Tx, out *outcome) error {
		cur, err := tx.LockByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if cur == nil {
			return apperror.NotFound("inventory not found")
		}
		if cur.ReservedQuantity > 0 {
			return apperror.Conflict("cannot delete inventory with reserved stock")
		}

		deleted, err := tx.Delete(ctx, productID)
		if err != nil {
			return err
		}
		if deleted == nil {
			return apperror.Conflict("cannot delete inventory with reserved stock")
		}

		m := movement(ctx, deleted, model.MovementOut, deleted.Quantity, model.RefInventoryDeletion, "", "Inventory record deleted", "")
		return tx.LogMovement(ctx, m)
	})
	return err
}

func (uc *inventoryUseCase) UpdateSettings(ctx context.Context, productID int64, in *dto.UpdateSettingsInput) (*model.Inventory, error) {
	if productID <= 0 {
		return nil, apperror.Validation("product_id is required")
	}
	if in == nil || (in.WarehouseLocation == nil && in.ReorderLevel == nil && in.MaxStockLevel == nil) {
		return nil, apperror.Validation("no fields to update")
	}
	if (in.ReorderLevel != nil && *in.ReorderLevel < 0) || (in.MaxStockLevel != nil && *in.MaxStockLevel < 0) {
		return nil, apperror.Validation("stock levels cannot be negative")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.OpTimeout)
	defer cancel()

	inv, err := uc.repo.UpdateSettings(ctx, productID, in)
	if err != nil {
		return nil, uc.classify(ctx, "update_settings", err)
	}
	if inv == nil {
		return nil, apperror.NotFound("inventory not found")
	}
	return inv, nil
}

func (uc *inventoryUseCase) GetByProduct(ctx context.Context, productID int64) (*dto.InventoryView, error) {
	if productID <= 0 {
		return nil, apperror.Validation("product_id is required")
	}

	opCtx, cancel := context.WithTimeout(ctx, uc.cfg.OpTimeout)
	defer cancel()

	inv, err := uc.repo.GetByProduct(opCtx, productID)
	if err != nil {
		return nil, uc.classify(opCtx, "get", err)
	}
	if inv == nil {
		return nil, apperror.NotFound("inventory not found")
	}

	view := dto.NewInventoryView(inv)
	if p, err := uc.gate.GetProductByID(ctx, productID); err == nil && p != nil {
		view.ProductName = p.Name
	} else {
		uc.logger.Debug("product enrichment skipped", zap.Int64("product_id", productID), zap.Error(err))
	}
	return view, nil
}

func (uc *inventoryUseCase) List(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.OpTimeout)
	defer cancel()

	items, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, uc.classify(ctx, "list", err)
	}
	return items, nil
}

// BulkCheck reads every item independently; one failing read only marks its own item.
func (uc *inventoryUseCase) BulkCheck(ctx context.Context, items []dto.BulkCheckItem) (*dto.BulkCheckResult, error) {
	if len(items) == 0 {
		return nil, apperror.Validation("items must be a non-empty array")
	}

	ctx, span := uc.tracer.Start(ctx, "inventory.bulk_check", trace.WithAttributes(attribute.Int("items", len(items))))
	defer span.End()

	results := make([]dto.BulkCheckItemResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	if uc.cfg.BulkCheckParallel > 0 {
		g.SetLimit(uc.cfg.BulkCheckParallel)
	}

	for i, item := range items {
		g.Go(func() error {
			results[i] = uc.checkItem(gctx, item)
			return nil
		})
	}
	_ = g.Wait()

	res := &dto.BulkCheckResult{
		AllAvailable:     true,
		Items:            results,
		UnavailableItems: []dto.BulkCheckItemResult{},
	}
	for _, r := range results {
		if !r.Available {
			res.AllAvailable = false
			res.UnavailableItems = append(res.UnavailableItems, r)
		}
	}
	return res, nil
}

func (uc *inventoryUseCase) checkItem(ctx context.Context, item dto.BulkCheckItem) dto.BulkCheckItemResult {
	r := dto.BulkCheckItemResult{ProductID: item.ProductID, Requested: item.Quantity}
	if item.ProductID <= 0 || item.Quantity <= 0 {
		r.Reason = "invalid item"
		r.Error = "product_id and a positive quantity are required"
		return r
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.OpTimeout)
	defer cancel()

	inv, err := uc.repo.GetByProduct(ctx, item.ProductID)
	if err != nil {
		uc.logger.Warn("bulk check read failed", zap.Int64("product_id", item.ProductID), zap.Error(err))
		r.Reason = "check failed"
		r.Error = err.Error()
		return r
	}
	if inv == nil {
		r.Reason = "inventory not found"
		return r
	}

	r.SKU = inv.SKU
	r.CurrentStock = inv.Available()
	r.Available = r.CurrentStock >= item.Quantity
	if !r.Available {
		r.Shortage = item.Quantity - r.CurrentStock
		r.Reason = "insufficient stock"
	}
	return r
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, error) {
	f := dto.MovementFilters{}
	if filters != nil {
		f = *filters
	}
	if f.MovementType != "" && !model.MovementType(f.MovementType).Valid() {
		return nil, apperror.Validationf("invalid movement_type %q", f.MovementType)
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return nil, apperror.Validation("start_date must not be after end_date")
	}
	if f.Limit <= 0 || f.Limit > uc.cfg.MovementPageSize {
		f.Limit = uc.cfg.MovementPageSize
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.OpTimeout)
	defer cancel()

	items, err := uc.repo.ListMovements(ctx, &f)
	if err != nil {
		return nil, uc.classify(ctx, "list_movements", err)
	}
	return items, nil
}

func (uc *inventoryUseCase) History(ctx context.Context, productID int64, limit int) ([]model.StockMovement, error) {
	if productID <= 0 {
		return nil, apperror.Validation("product_id is required")
	}
	if limit <= 0 {
		limit = uc.cfg.HistoryDefaultLimit
	}
	if limit > uc.cfg.MovementPageSize {
		limit = uc.cfg.MovementPageSize
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.OpTimeout)
	defer cancel()

	items, err := uc.repo.ListMovements(ctx, &dto.MovementFilters{ProductID: &productID, Limit: limit})
	if err != nil {
		return nil, uc.classify(ctx, "history", err)
	}
	return items, nil
}

func (uc *inventoryUseCase) Analytics(ctx context.Context) (*model.InventoryAnalytics, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.OpTimeout)
	defer cancel()

	a, err := uc.repo.Analytics(ctx)
	if err != nil {
		return nil, uc.classify(ctx, "analytics", err)
	}
	return a, nil
}
