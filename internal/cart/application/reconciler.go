package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/logger"
)

// reconciler 命令与查询服务共用的读取、快照和视图逻辑
type reconciler struct {
	repo    domain.CartRepository
	catalog domain.CatalogProvider
	opts    Options
}

// loadCart 读取购物车；不存在时返回新的空购物车，created 为 true
func (r reconciler) loadCart(ctx context.Context, userID string) (cart *domain.Cart, created bool, err error) {
	cart, err = r.repo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return domain.NewCart(userID), true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load cart: %w", err)
	}
	return cart, false, nil
}

// snapshot 取购物车所有商品的当前快照
func (r reconciler) snapshot(ctx context.Context, cart *domain.Cart) (domain.CatalogSnapshot, error) {
	if cart.IsEmpty() {
		return domain.CatalogSnapshot{}, nil
	}
	snapshot, err := r.catalog.Snapshot(ctx, cart.ProductIDs())
	if err != nil {
		return nil, fmt.Errorf("catalog snapshot: %w", err)
	}
	return snapshot, nil
}

func (r reconciler) view(cart *domain.Cart, snapshot domain.CatalogSnapshot) *CartDTO {
	return toCartDTO(domain.ComputeView(cart, snapshot, r.opts.policy()), r.opts.Currency)
}

func publish(ctx context.Context, publisher domain.EventPublisher, topic, key string, event any) {
	if err := publisher.Publish(ctx, topic, key, event); err != nil {
		logger.Warn(ctx, "Failed to publish cart event", "topic", topic, "user_id", key, "error", err)
	}
}
