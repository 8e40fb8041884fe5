package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-inventory-service/internal/inventory"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const inventoryColumns = `id, product_id, sku, quantity, reserved_quantity, warehouse_location,
	reorder_level, max_stock_level, last_restocked_at, created_at, updated_at`

const movementColumns = `id, product_id, sku, movement_type, quantity, reference_type,
	reference_id, notes, performed_by, created_at`

const alertColumns = `id, product_id, sku, current_quantity, reorder_level, alert_type,
	status, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

var _ inventory.Repository = (*PGRepository)(nil)

func (r *PGRepository) GetByProduct(ctx context.Context, productID int64) (*model.Inventory, error) {
	var inv model.Inventory
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1`
	if err := r.DB.GetContext(ctx, &inv, query, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory`
	if f != nil && f.LowStock {
		query += ` WHERE quantity <= reorder_level ORDER BY quantity ASC, product_id`
	} else {
		query += ` ORDER BY product_id`
	}

	items := []model.Inventory{}
	err := r.DB.SelectContext(ctx, &items, query)
	return items, err
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, error) {
	conditions := []string{}
	args := []interface{}{}

	if f.ProductID != nil {
		args = append(args, *f.ProductID)
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if f.MovementType != "" {
		args = append(args, f.MovementType)
		conditions = append(conditions, fmt.Sprintf("movement_type = $%d", len(args)))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	query := `SELECT ` + movementColumns + ` FROM stock_movements`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	items := []model.StockMovement{}
	err := r.DB.SelectContext(ctx, &items, query, args...)
	return items, err
}

func (r *PGRepository) Analytics(ctx context.Context) (*model.InventoryAnalytics, error) {
	query := `
        SELECT
            COUNT(*) AS total_products,
            COALESCE(SUM(quantity), 0) AS total_stock,
            COALESCE(SUM(reserved_quantity), 0) AS total_reserved,
            COUNT(*) FILTER (WHERE quantity <= reorder_level) AS low_stock_products,
            COUNT(*) FILTER (WHERE quantity = 0) AS out_of_stock_products,
            COALESCE(AVG(quantity), 0)::float8 AS avg_stock_per_product
        FROM inventory
    `
	var a model.InventoryAnalytics
	if err := r.DB.GetContext(ctx, &a, query); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PGRepository) UpdateSettings(ctx context.Context, productID int64, in *dto.UpdateSettingsInput) (*model.Inventory, error) {
	query := `
        UPDATE inventory SET
            warehouse_location = COALESCE($2, warehouse_location),
            reorder_level = COALESCE($3, reorder_level),
            max_stock_level = COALESCE($4, max_stock_level),
            updated_at = NOW()
        WHERE product_id = $1
        RETURNING ` + inventoryColumns
	var inv model.Inventory
	err := r.DB.GetContext(ctx, &inv, query, productID, in.WarehouseLocation, in.ReorderLevel, in.MaxStockLevel)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGRepository) WithinTx(ctx context.Context, fn func(tx inventory.Tx) error) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type pgTx struct {
	tx *sqlx.Tx
}

func (t *pgTx) Insert(ctx context.Context, inv *model.Inventory) error {
	query := `
        INSERT INTO inventory (
            product_id, sku, quantity, reserved_quantity, warehouse_location,
            reorder_level, max_stock_level, last_restocked_at
        )
        VALUES ($1, $2, $3, 0, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at
    `
	return t.tx.QueryRowxContext(ctx, query,
		inv.ProductID, inv.SKU, inv.Quantity, inv.WarehouseLocation,
		inv.ReorderLevel, inv.MaxStockLevel, inv.LastRestockedAt,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
}

func (t *pgTx) LockByProduct(ctx context.Context, productID int64) (*model.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1 FOR UPDATE`
	return t.getInventory(ctx, query, productID)
}

// Reserve is the guarded compare-and-swap: the availability check and the increment are one statement.
func (t *pgTx) Reserve(ctx context.Context, productID int64, qty int) (*model.Inventory, error) {
	query := `
        UPDATE inventory
        SET reserved_quantity = reserved_quantity + $2, updated_at = NOW()
        WHERE product_id = $1 AND quantity - reserved_quantity >= $2
        RETURNING ` + inventoryColumns
	return t.getInventory(ctx, query, productID, qty)
}

func (t *pgTx) Release(ctx context.Context, productID int64, qty int) (*model.Inventory, error) {
	query := `
        UPDATE inventory
        SET reserved_quantity = GREATEST(reserved_quantity - $2, 0), updated_at = NOW()
        WHERE product_id = $1
        RETURNING ` + inventoryColumns
	return t.getInventory(ctx, query, productID, qty)
}

func (t *pgTx) Deduct(ctx context.Context, productID int64, qty int) (*model.Inventory, error) {
	query := `
        UPDATE inventory
        SET quantity = quantity - $2,
            reserved_quantity = GREATEST(reserved_quantity - $2, 0),
            updated_at = NOW()
        WHERE product_id = $1 AND quantity >= $2
        RETURNING ` + inventoryColumns
	return t.getInventory(ctx, query, productID, qty)
}

// ApplyDelta moves quantity by a signed delta without ever dropping below the reserved amount.
func (t *pgTx) ApplyDelta(ctx context.Context, productID int64, delta int, restock bool) (*model.Inventory, error) {
	query := `
        UPDATE inventory
        SET quantity = quantity + $2,
            last_restocked_at = CASE WHEN $3::boolean THEN NOW() ELSE last_restocked_at END,
            updated_at = NOW()
        WHERE product_id = $1 AND quantity + $2 >= reserved_quantity
        RETURNING ` + inventoryColumns
	return t.getInventory(ctx, query, productID, delta, restock)
}

func (t *pgTx) Delete(ctx context.Context, productID int64) (*model.Inventory, error) {
	query := `
        DELETE FROM inventory
        WHERE product_id = $1 AND reserved_quantity = 0
        RETURNING ` + inventoryColumns
	return t.getInventory(ctx, query, productID)
}

func (t *pgTx) LogMovement(ctx context.Context, m *model.StockMovement) error {
	query := `
        INSERT INTO stock_movements (
            product_id, sku, movement_type, quantity,
            reference_type, reference_id, notes, performed_by
        )
        VALUES (
            :product_id, :sku, :movement_type, :quantity,
            :reference_type, :reference_id, :notes, :performed_by
        )
    `
	if _, err := t.tx.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}
	return nil
}

// UpsertAlert keeps one row per (product, type). A repeat trigger refreshes the row and
// reactivates it unless an operator chose to ignore it.
func (t *pgTx) UpsertAlert(ctx context.Context, a *model.StockAlert) error {
	query := `
        INSERT INTO stock_alerts (product_id, sku, current_quantity, reorder_level, alert_type, status)
        VALUES ($1, $2, $3, $4, $5, 'active')
        ON CONFLICT (product_id, alert_type) DO UPDATE SET
            sku = EXCLUDED.sku,
            current_quantity = EXCLUDED.current_quantity,
            reorder_level = EXCLUDED.reorder_level,
            status = CASE WHEN stock_alerts.status = 'ignored' THEN 'ignored' ELSE 'active' END,
            updated_at = NOW()
        RETURNING ` + alertColumns
	return t.tx.GetContext(ctx, a, query, a.ProductID, a.SKU, a.CurrentQuantity, a.ReorderLevel, a.AlertType)
}

func (t *pgTx) ResolveAlerts(ctx context.Context, productID int64, types []model.AlertType) (int64, error) {
	names := make([]string, len(types))
	for i, at := range types {
		names[i] = string(at)
	}
	query := `
        UPDATE stock_alerts SET status = 'resolved', updated_at = NOW()
        WHERE product_id = $1 AND status = 'active' AND alert_type = ANY($2)
    `
	res, err := t.tx.ExecContext(ctx, query, productID, pq.Array(names))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t *pgTx) getInventory(ctx context.Context, query string, args ...interface{}) (*model.Inventory, error) {
	var inv model.Inventory
	if err := t.tx.GetContext(ctx, &inv, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}
