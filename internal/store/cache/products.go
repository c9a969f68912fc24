// Package cache decorates store reads with Redis. A nil client bypasses the
// cache entirely, so handlers and tests can run without Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amazoniatrade/marketplace/internal/logging"
	"github.com/amazoniatrade/marketplace/internal/models"
)

type ProductReader interface {
	GetByID(ctx context.Context, id uint) (*models.Product, error)
}

type ProductCache struct {
	inner ProductReader
	rdb   *redis.Client
	ttl   time.Duration
}

func NewProductCache(rdb *redis.Client, ttl time.Duration, inner ProductReader) *ProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductCache{inner: inner, rdb: rdb, ttl: ttl}
}

func productKey(id uint) string {
	return fmt.Sprintf("products:%d", id)
}

// GetByID checks Redis first and falls back to the inner store. Cache
// failures degrade to a plain read, never to a request failure.
func (c *ProductCache) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	if c.rdb == nil {
		return c.inner.GetByID(ctx, id)
	}

	key := productKey(id)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var prod models.Product
		if err := json.Unmarshal(b, &prod); err == nil {
			return &prod, nil
		}
	}

	prod, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(prod); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			logging.FromContext(ctx).Warn("product cache set failed", "key", key, "error", err)
		}
	}
	return prod, nil
}

// Invalidate drops the cached entry, best effort.
func (c *ProductCache) Invalidate(ctx context.Context, id uint) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, productKey(id)).Err(); err != nil {
		logging.FromContext(ctx).Warn("product cache invalidate failed", "id", id, "error", err)
	}
}
