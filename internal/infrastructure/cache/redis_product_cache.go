package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appcatalog "github.com/ecoharvest/backend/internal/application/catalog"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisProductCache caches product detail responses in Redis. It backs both
// the catalog read path and stock-mutation invalidation, so stale quantities
// never outlive a write by more than one round trip.
type RedisProductCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisProductCache connects to Redis and returns a product cache
func NewRedisProductCache(cfg RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisProductCacheWithClient(client, ttl, logger), nil
}

// NewRedisProductCacheWithClient creates a cache with an existing Redis client.
// Useful for tests or when sharing a client across components.
func NewRedisProductCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisProductCache{
		client:    client,
		keyPrefix: "catalog:product:",
		ttl:       ttl,
		logger:    logger,
	}
}

func (c *RedisProductCache) key(productID uuid.UUID) string {
	return c.keyPrefix + productID.String()
}

// GetProduct returns a cached product response, or false on miss.
// Redis errors are treated as misses so the storefront stays up when
// Redis is down.
func (c *RedisProductCache) GetProduct(ctx context.Context, productID uuid.UUID) (*appcatalog.ProductResponse, bool) {
	raw, err := c.client.Get(ctx, c.key(productID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("product cache read failed",
				zap.String("product_id", productID.String()),
				zap.Error(err))
		}
		return nil, false
	}

	var resp appcatalog.ProductResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.logger.Warn("product cache entry corrupt, dropping",
			zap.String("product_id", productID.String()),
			zap.Error(err))
		c.client.Del(ctx, c.key(productID))
		return nil, false
	}
	return &resp, true
}

// SetProduct stores a product response with the configured TTL
func (c *RedisProductCache) SetProduct(ctx context.Context, product *appcatalog.ProductResponse) {
	if product == nil {
		return
	}
	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.keyPrefix+product.ID.String(), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
	}
}

// InvalidateProduct drops the cached entry for a product
func (c *RedisProductCache) InvalidateProduct(ctx context.Context, productID uuid.UUID) {
	if err := c.client.Del(ctx, c.key(productID)).Err(); err != nil {
		c.logger.Warn("product cache invalidation failed",
			zap.String("product_id", productID.String()),
			zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisProductCache) Close() error {
	return c.client.Close()
}

var _ appcatalog.ProductCache = (*RedisProductCache)(nil)
