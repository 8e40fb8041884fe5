package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/product"
	"github.com/fekuna/omnipos-inventory-service/pkg/cache"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"go.uber.org/zap"
)

// CachedGate memoizes positive lookups in Redis. Cache errors never fail a lookup.
type CachedGate struct {
	next   product.Gate
	cache  *cache.RedisClient
	ttl    time.Duration
	logger logger.ZapLogger
}

func NewCachedGate(next product.Gate, rc *cache.RedisClient, ttl time.Duration, log logger.ZapLogger) *CachedGate {
	return &CachedGate{next: next, cache: rc, ttl: ttl, logger: log}
}

var _ product.Gate = (*CachedGate)(nil)

func cacheKey(id int64) string {
	return fmt.Sprintf("inventory:product:%d", id)
}

func (g *CachedGate) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := g.cache.GetJSON(ctx, cacheKey(id), &p)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		g.logger.Warn("product cache read failed", zap.Int64("product_id", id), zap.Error(err))
	}

	got, err := g.next.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := g.cache.SetJSON(ctx, cacheKey(id), got, g.ttl); err != nil {
		g.logger.Warn("product cache write failed", zap.Int64("product_id", id), zap.Error(err))
	}
	return got, nil
}
