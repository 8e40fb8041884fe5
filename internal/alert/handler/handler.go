package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-inventory-service/internal/alert"
	"github.com/fekuna/omnipos-inventory-service/internal/alert/dto"
	"github.com/fekuna/omnipos-inventory-service/pkg/apperror"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/fekuna/omnipos-inventory-service/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AlertHandler struct {
	uc     alert.UseCase
	logger logger.ZapLogger
}

func NewAlertHandler(uc alert.UseCase, log logger.ZapLogger) *AlertHandler {
	return &AlertHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AlertHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/inventory/alerts", h.ListAlerts)
	rg.GET("/inventory/reorder-suggestions", h.ListSuggestions)
	rg.PATCH("/inventory/reorder-suggestions/:id", h.UpdateSuggestion)

	alerts := rg.Group("/alerts")
	alerts.POST("/check", h.CheckLowStock)
	alerts.GET("/stats", h.Stats)
	alerts.PATCH("/:id/resolve", h.Resolve)
	alerts.PATCH("/:id/ignore", h.Ignore)
}

func idParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("invalid id")
	}
	return id, nil
}

func (h *AlertHandler) ListAlerts(c *gin.Context) {
	items, err := h.uc.ListAlerts(c.Request.Context(), c.DefaultQuery("status", "active"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, http.StatusOK, "", items)
}

func (h *AlertHandler) CheckLowStock(c *gin.Context) {
	created, err := h.uc.CheckLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, http.StatusOK, "Low stock check completed", gin.H{
		"alerts_created": len(created),
		"alerts":         created,
	})
}

func (h *AlertHandler) Resolve(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	a, err := h.uc.ResolveAlert(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, http.StatusOK, "Alert resolved", a)
}

func (h *AlertHandler) Ignore(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	a, err := h.uc.IgnoreAlert(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, http.StatusOK, "Alert ignored", a)
}

func (h *AlertHandler) Stats(c *gin.Context) {
	s, err := h.uc.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, http.StatusOK, "", s)
}

func (h *AlertHandler) ListSuggestions(c *gin.Context) {
	items, err := h.uc.ListSuggestions(c.Request.Context(), c.DefaultQuery("status", "pending"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, http.StatusOK, "", items)
}

func (h *AlertHandler) UpdateSuggestion(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	var req dto.UpdateSuggestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, apperror.Validation(err.Error()))
		return
	}

	s, err := h.uc.UpdateSuggestion(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	h.logger.Info("reorder suggestion updated", zap.Int64("suggestion_id", id), zap.String("status", string(s.Status)))
	response.OK(c, http.StatusOK, "Reorder suggestion updated", s)
}
