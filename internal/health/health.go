package health

import (
	"context"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const ServiceName = "inventory-service"

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Checker struct {
	db      Pinger
	server  *health.Server
	logger  logger.ZapLogger
	timeout time.Duration
}

func NewChecker(db Pinger, server *health.Server, log logger.ZapLogger) *Checker {
	return &Checker{
		db:      db,
		server:  server,
		logger:  log,
		timeout: 2 * time.Second,
	}
}

// Check pings the ledger store and mirrors the result onto the gRPC health server.
func (h *Checker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	err := h.db.PingContext(ctx)
	status := grpc_health_v1.HealthCheckResponse_SERVING
	if err != nil {
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	if h.server != nil {
		h.server.SetServingStatus("", status)
		h.server.SetServingStatus(ServiceName, status)
	}
	return err
}

// Watch re-runs Check every interval until ctx is cancelled.
func (h *Checker) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthy := true
	for {
		if err := h.Check(ctx); err != nil {
			if healthy {
				h.logger.Warn("database health check failed", zap.Error(err))
			}
			healthy = false
		} else {
			if !healthy {
				h.logger.Info("database health restored")
			}
			healthy = true
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (h *Checker) Handler(c *gin.Context) {
	if err := h.Check(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"service": ServiceName,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": ServiceName,
	})
}
