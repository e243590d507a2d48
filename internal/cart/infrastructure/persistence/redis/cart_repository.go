package redis

import (
	"context"
	"errors"
	"time"

	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/cache"
)

// cartRedisRepository 购物车缓存，只缓存行引用与数量，不缓存价格
type cartRedisRepository struct {
	cache  *cache.RedisCache
	prefix string
	ttl    time.Duration
}

// NewCartRedisRepository 创建购物车缓存仓储
func NewCartRedisRepository(c *cache.RedisCache, ttl time.Duration) domain.CartRepository {
	return &cartRedisRepository{
		cache:  c,
		prefix: "cart:",
		ttl:    ttl,
	}
}

func (r *cartRedisRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.cache.GetJSON(ctx, r.key(userID), &cart)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRedisRepository) Save(ctx context.Context, cart *domain.Cart) error {
	if cart == nil {
		return nil
	}
	return r.cache.SetJSON(ctx, r.key(cart.UserID), cart, r.ttl)
}

func (r *cartRedisRepository) Delete(ctx context.Context, userID string) error {
	return r.cache.Delete(ctx, r.key(userID))
}

func (r *cartRedisRepository) key(userID string) string {
	return r.prefix + userID
}
