package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/alert"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const alertColumns = `id, product_id, sku, current_quantity, reorder_level, alert_type,
	status, created_at, updated_at`

const suggestionColumns = `id, product_id, sku, current_quantity, suggested_quantity, status,
	processed_at, processed_by, notes, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

var _ alert.Repository = (*PGRepository)(nil)

func (r *PGRepository) ListAlerts(ctx context.Context, status model.AlertStatus) ([]model.AlertWithStock, error) {
	query := `
        SELECT a.id, a.product_id, a.sku, a.current_quantity, a.reorder_level, a.alert_type,
               a.status, a.created_at, a.updated_at,
               i.warehouse_location,
               COALESCE(i.quantity, 0) AS actual_quantity,
               COALESCE(i.reserved_quantity, 0) AS reserved_quantity
        FROM stock_alerts a
        LEFT JOIN inventory i ON i.product_id = a.product_id
    `
	args := []interface{}{}
	if status != "" {
		query += ` WHERE a.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY a.updated_at DESC, a.id DESC`

	items := []model.AlertWithStock{}
	err := r.DB.SelectContext(ctx, &items, query, args...)
	return items, err
}

// SweepLowStock raises one low_stock alert per record at or below its reorder level in a
// single statement. Records with an active low_stock alert are skipped; resolved and ignored
// rows are reactivated.
func (r *PGRepository) SweepLowStock(ctx context.Context) ([]model.StockAlert, error) {
	query := `
        INSERT INTO stock_alerts (product_id, sku, current_quantity, reorder_level, alert_type, status)
        SELECT i.product_id, i.sku, i.quantity, i.reorder_level, 'low_stock', 'active'
        FROM inventory i
        WHERE i.quantity <= i.reorder_level
          AND NOT EXISTS (
              SELECT 1 FROM stock_alerts a
              WHERE a.product_id = i.product_id
                AND a.alert_type = 'low_stock'
                AND a.status = 'active'
          )
        ON CONFLICT (product_id, alert_type) DO UPDATE SET
            sku = EXCLUDED.sku,
            current_quantity = EXCLUDED.current_quantity,
            reorder_level = EXCLUDED.reorder_level,
            status = 'active',
            updated_at = NOW()
        RETURNING ` + alertColumns

	items := []model.StockAlert{}
	err := r.DB.SelectContext(ctx, &items, query)
	return items, err
}

func (r *PGRepository) UpdateAlertStatus(ctx context.Context, id int64, status model.AlertStatus) (*model.StockAlert, error) {
	query := `
        UPDATE stock_alerts SET status = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + alertColumns
	var a model.StockAlert
	if err := r.DB.GetContext(ctx, &a, query, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGRepository) Stats(ctx context.Context, since time.Time) (*model.AlertStats, error) {
	query := `
        SELECT
            COUNT(*) FILTER (WHERE status = 'active') AS active_alerts,
            COUNT(*) FILTER (WHERE status = 'resolved') AS resolved_alerts,
            COUNT(*) FILTER (WHERE status = 'ignored') AS ignored_alerts,
            COUNT(*) AS total_alerts
        FROM stock_alerts
        WHERE created_at >= $1
    `
	var s model.AlertStats
	if err := r.DB.GetContext(ctx, &s, query, since); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) InsertSuggestion(ctx context.Context, s *model.ReorderSuggestion) error {
	query := `
        INSERT INTO reorder_suggestions (product_id, sku, current_quantity, suggested_quantity, status, notes)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at
    `
	return r.DB.QueryRowxContext(ctx, query,
		s.ProductID, s.SKU, s.CurrentQuantity, s.SuggestedQuantity, s.Status, s.Notes,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *PGRepository) ListSuggestions(ctx context.Context, status model.SuggestionStatus) ([]model.ReorderSuggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM reorder_suggestions`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	items := []model.ReorderSuggestion{}
	err := r.DB.SelectContext(ctx, &items, query, args...)
	return items, err
}

func (r *PGRepository) GetSuggestion(ctx context.Context, id int64) (*model.ReorderSuggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM reorder_suggestions WHERE id = $1`
	var s model.ReorderSuggestion
	if err := r.DB.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) UpdateSuggestionStatus(ctx context.Context, id int64, from, to model.SuggestionStatus, processedBy, notes *string) (*model.ReorderSuggestion, error) {
	query := `
        UPDATE reorder_suggestions SET
            status = $3,
            processed_at = NOW(),
            processed_by = $4,
            notes = COALESCE($5, notes),
            updated_at = NOW()
        WHERE id = $1 AND status = $2
        RETURNING ` + suggestionColumns
	var s model.ReorderSuggestion
	if err := r.DB.GetContext(ctx, &s, query, id, from, to, processedBy, notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
