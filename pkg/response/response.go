// Package response writes the service's JSON envelope.
package response

import (
	"github.com/fekuna/omnipos-inventory-service/pkg/apperror"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorBody struct {
	Success bool `json:"success"`
	*apperror.Error
}

func OK(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// Error maps err onto its status code. Server-side failures are logged with the request id.
func Error(c *gin.Context, log logger.ZapLogger, err error) {
	ae := apperror.From(err)
	status := ae.HTTPStatus()
	if status >= 500 {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorBody{Success: false, Error: ae})
}
