package auth

import (
	"context"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/metadata"
)

// UserIDHeader is set by the gateway after it has authenticated the caller.
const UserIDHeader = "X-User-ID"

// SystemPerformer marks mutations that originate from background consumers.
const SystemPerformer = "system"

type performerKey struct{}

// WithPerformer records who is performing the current ledger mutation.
func WithPerformer(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, performerKey{}, userID)
}

// GetPerformer returns the acting user, or "" when the call is anonymous.
func GetPerformer(ctx context.Context) string {
	if val, ok := ctx.Value(performerKey{}).(string); ok {
		return val
	}

	// Fallback to gRPC metadata
	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get("x-user-id"); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}

// Middleware copies the gateway's user header into the request context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader(UserIDHeader); userID != "" {
			c.Request = c.Request.WithContext(WithPerformer(c.Request.Context(), userID))
		}
		c.Next()
	}
}
