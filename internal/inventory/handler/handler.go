package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/inventory"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/pkg/apperror"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/fekuna/omnipos-inventory-service/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")

	inv.POST("/bulk-check", h.BulkCheck)
	inv.POST("/reserve", h.Reserve)
	inv.POST("/release", h.Release)
	inv.POST("/confirm-deduction", h.ConfirmDeduction)
	inv.POST("/return", h.ReturnStock)
	inv.POST("/receive", h.ReceiveStock)
	inv.POST("/adjust", h.AdjustStock)
	inv.GET("/analytics", h.Analytics)
	inv.GET("/history/:productId", h.History)
	inv.GET("/movements", h.ListMovements)

	inv.POST("", h.Create)
	inv.GET("", h.List)
	inv.GET("/product/:productId", h.GetByProduct)
	inv.PUT("/product/:productId", h.UpdateSettings)
	inv.DELETE("/product/:productId", h.Delete)
}

// reference accepts order and supplier ids sent either as JSON numbers or strings.
type reference string

func (r *reference) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = reference(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*r = reference(n.String())
	return nil
}

func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Validation(err.Error())
	}
	return nil
}

func productIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("invalid product id")
	}
	return id, nil
}

type createRequest struct {
	ProductID         int64   `json:"product_id" binding:"required,gt=0"`
	SKU               string  `json:"sku"`
	Quantity          int     `json:"quantity" binding:"gte=0"`
	ReorderLevel      *int    `json:"reorder_level" binding:"omitempty,gte=0"`
	MaxStockLevel     *int    `json:"max_stock_level" binding:"omitempty,gte=0"`
	WarehouseLocation *string `json:"warehouse_location"`
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req createRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	inv, err := h.uc.Create(c.Request.Context(), &dto.CreateInventoryInput{
		ProductID:         req.ProductID,
		SKU:               req.SKU,
		Quantity:          req.Quantity,
		ReorderLevel:      req.ReorderLevel,
		MaxStockLevel:     req.MaxStockLevel,
		WarehouseLocation: req.WarehouseLocation,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	h.logger.Info("inventory created", zap.Int64("product_id", inv.ProductID), zap.Int("quantity", inv.Quantity))
	response.OK(c, http.StatusCreated, "Inventory created successfully", dto.NewInventoryView(inv))
}

type stockRequest struct {
	ProductID int64     `json:"product_id" binding:"required,gt=0"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
	OrderID   reference `json:"order_id" binding:"required"`
}

func (h *InventoryHandler) stockOperation(c *gin.Context, fn func(*dto.StockOperationInput) (*model.Inventory, error), message string) {
	var req stockRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	inv, err := fn(&dto.StockOperationInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		OrderRef:  string(req.OrderID),
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, http.StatusOK, message, dto.NewInventoryView(inv))
}

func (h *InventoryHandler) Reserve(c *gin.Context) {
	h.stockOperation(c, func(in *dto.StockOperationInput) (*model.Inventory, error) {
		return h.uc.Reserve(c.Request.Context(), in)
	}, "Stock reserved successfully")
}

func (h *InventoryHandler) Release(c *gin.Context) {
	h.stockOperation(c, func(in *dto.StockOperationInput) (*model.Inventory, error) {
		return h.uc.Release(c.Request.Context(), in)
	}, "Stock released successfully")
}

func (h *InventoryHandler) ConfirmDeduction(c *gin.Context) {
	h.stockOperation(c, func(in *dto.StockOperationInput) (*model.Inventory, error) {
		return h.uc.ConfirmDeduction(c.Request.Context(), in)
	}, "Stock deduction confirmed")
}

func (h *InventoryHandler) ReturnStock(c *gin.Context) {
	h.stockOperation(c, func(in *dto.StockOperationInput) (*model.Inventory, error) {
		return h.uc.ReturnStock(c.Request.Context(), in)
	}, "Stock returned successfully")
}

type receiveRequest struct {
	ProductID       int64     `json:"product_id" binding:"required,gt=0"`
	Quantity        int       `json:"quantity" binding:"required,gt=0"`
	SupplierOrderID reference `json:"supplier_order_id"`
	Notes           string    `json:"notes"`
}

func (h *InventoryHandler) ReceiveStock(c *gin.Context) {
	var req receiveRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	inv, err := h.uc.ReceiveStock(c.Request.Context(), &dto.ReceiveStockInput{
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		SupplierRef: string(req.SupplierOrderID),
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, http.StatusOK, "Stock received successfully", dto.NewInventoryView(inv))
}

type adjustRequest struct {
	ProductID    int64  `json:"product_id" binding:"required,gt=0"`
	MovementType string `json:"movement_type" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required"`
	Notes        string `json:"notes"`
	PerformedBy  string `json:"performed_by"`
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req adjustRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	inv, err := h.uc.AdjustStock(c.Request.Context(), &dto.AdjustStockInput{
		ProductID:    req.ProductID,
		MovementType: model.MovementType(req.MovementType),
		Quantity:     req.Quantity,
		Notes:        req.Notes,
		PerformedBy:  req.PerformedBy,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	h.logger.Info("stock adjusted",
		zap.Int64("product_id", req.ProductID),
		zap.String("movement_type", req.MovementType),
		zap.Int("quantity", req.Quantity),
	)
	response.OK(c, http.StatusOK, "Stock adjusted successfully", dto.NewInventoryView(inv))
}

type bulkCheckRequest struct {
	Items []dto.BulkCheckItem `json:"items"`
}

func (h *InventoryHandler) BulkCheck(c *gin.Context) {
	var req bulkCheckRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	res, err := h.uc.BulkCheck(c.Request.Context(), req.Items)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, http.StatusOK, "", res)
}

func (h *InventoryHandler) List(c *gin.Context) {
	lowStock, _ := strconv.ParseBool(c.DefaultQuery("low_stock", "false"))

	items, err := h.uc.List(c.Request.Context(), &dto.InventoryFilters{LowStock: lowStock})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	out := make([]*dto.InventoryView, len(items))
	for i := range items {
		out[i] = dto.NewInventoryView(&items[i])
	}
	response.OK(c, http.StatusOK, "", out)
}

func (h *InventoryHandler) GetByProduct(c *gin.Context) {
	id, err := productIDParam(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	view, err := h.uc.GetByProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, http.StatusOK, "", view)
}

func (h *InventoryHandler) UpdateSettings(c *gin.Context) {
	id, err := productIDParam(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	var req dto.UpdateSettingsInput
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	inv, err := h.uc.UpdateSettings(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, http.StatusOK, "Inventory updated successfully", dto.NewInventoryView(inv))
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := productIDParam(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	h.logger.Info("inventory deleted", zap.Int64("product_id", id))
	response.OK(c, http.StatusOK, "Inventory deleted successfully", nil)
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, apperror.Validationf("invalid date %q", value)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	f := &dto.MovementFilters{MovementType: strings.TrimSpace(c.Query("movement_type"))}

	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, h.logger, apperror.Validation("invalid product_id"))
			return
		}
		f.ProductID = &id
	}

	var err error
	if f.StartDate, err = parseDate(c.Query("start_date")); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if f.EndDate, err = parseDate(c.Query("end_date")); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	items, err := h.uc.ListMovements(c.Request.Context(), f)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, http.StatusOK, "", items)
}

func (h *InventoryHandler) History(c *gin.Context) {
	id, err := productIDParam(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.uc.History(c.Request.Context(), id, limit)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, http.StatusOK, "", items)
}

func (h *InventoryHandler) Analytics(c *gin.Context) {
	a, err := h.uc.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, http.StatusOK, "", a)
}
