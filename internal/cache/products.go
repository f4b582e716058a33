package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"tienda_back_end/internal/models"
	"tienda_back_end/internal/store"
)

const (
	productCacheTTL = 10 * time.Minute

	productKeyPrefix = "product:"
	allProductsKey   = "products:all"
)

// ProductCache is a read-through Redis cache in front of a
// ProductStore. Reads are served from Redis when possible; every write,
// including stock decrements, invalidates the affected keys. Cache
// failures are logged and fall through to the underlying store.
type ProductCache struct {
	next  store.ProductStore
	redis *redis.Client
}

var _ store.ProductStore = (*ProductCache)(nil)

func NewProductCache(next store.ProductStore, redisClient *redis.Client) *ProductCache {
	return &ProductCache{next: next, redis: redisClient}
}

func (c *ProductCache) GetByID(ctx context.Context, id string) (*models.Product, error) {
	key := productKeyPrefix + id
	if data, err := c.redis.Get(ctx, key).Result(); err == nil {
		var product models.Product
		if json.Unmarshal([]byte(data), &product) == nil {
			return &product, nil
		}
	}

	product, err := c.next.GetByID(ctx, id)
	if err != nil || product == nil {
		return product, err
	}

	if data, err := json.Marshal(product); err == nil {
		c.redis.Set(ctx, key, data, productCacheTTL)
	}
	return product, nil
}

func (c *ProductCache) List(ctx context.Context) ([]models.Product, error) {
	if data, err := c.redis.Get(ctx, allProductsKey).Result(); err == nil {
		var products []models.Product
		if json.Unmarshal([]byte(data), &products) == nil {
			return products, nil
		}
	}

	products, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		c.redis.Set(ctx, allProductsKey, data, productCacheTTL)
	}
	return products, nil
}

func (c *ProductCache) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	product, err := c.next.Create(ctx, input)
	if err == nil {
		c.invalidate(ctx, product.ID.Hex())
	}
	return product, err
}

func (c *ProductCache) Update(ctx context.Context, id string, input models.ProductInput) (*models.Product, error) {
	product, err := c.next.Update(ctx, id, input)
	if err == nil {
		c.invalidate(ctx, id)
	}
	return product, err
}

func (c *ProductCache) Delete(ctx context.Context, id string) error {
	err := c.next.Delete(ctx, id)
	if err == nil {
		c.invalidate(ctx, id)
	}
	return err
}

func (c *ProductCache) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	ok, err := c.next.DecrementStock(ctx, id, qty)
	if err == nil && ok {
		c.invalidate(ctx, id)
	}
	return ok, err
}

func (c *ProductCache) invalidate(ctx context.Context, id string) {
	if err := c.redis.Del(ctx, productKeyPrefix+id, allProductsKey).Err(); err != nil {
		log.WithError(err).WithField("productId", id).Warn("product cache invalidation failed")
	}
}
