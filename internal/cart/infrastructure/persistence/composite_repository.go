// Package persistence 组合数据库与 Redis 的购物车仓储
package persistence

import (
	"context"
	"errors"

	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/logger"
)

type compositeCartRepository struct {
	db    domain.CartRepository
	cache domain.CartRepository
}

// NewCompositeCartRepository 数据库为准，Redis 为旁路缓存
func NewCompositeCartRepository(db, cache domain.CartRepository) domain.CartRepository {
	return &compositeCartRepository{
		db:    db,
		cache: cache,
	}
}

func (r *compositeCartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := r.cache.GetByUserID(ctx, userID)
	if err == nil && cart != nil {
		return cart, nil
	}

	cart, err = r.db.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Save(ctx, cart); err != nil {
		logger.Warn(ctx, "Failed to backfill cart cache", "user_id", userID, "error", err)
	}
	return cart, nil
}

func (r *compositeCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	if err := r.db.Save(ctx, cart); err != nil {
		// 版本冲突说明缓存副本已过期，删除后下次读取回源
		if errors.Is(err, domain.ErrCartConflict) {
			if derr := r.cache.Delete(ctx, cart.UserID); derr != nil {
				logger.Warn(ctx, "Failed to evict stale cart cache", "user_id", cart.UserID, "error", derr)
			}
		}
		return err
	}
	// 缓存写失败时删除旧值，避免读到过期的行
	if err := r.cache.Save(ctx, cart); err != nil {
		logger.Warn(ctx, "Failed to update cart cache", "user_id", cart.UserID, "error", err)
		_ = r.cache.Delete(ctx, cart.UserID)
	}
	return nil
}

func (r *compositeCartRepository) Delete(ctx context.Context, userID string) error {
	if err := r.db.Delete(ctx, userID); err != nil {
		return err
	}
	return r.cache.Delete(ctx, userID)
}
