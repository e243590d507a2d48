package domain

import "context"

// CartRepository 购物车仓储
type CartRepository interface {
	// GetByUserID 获取用户购物车，不存在时返回 ErrCartNotFound
	GetByUserID(ctx context.Context, userID string) (*Cart, error)
	// Save 保存购物车及全部行
	Save(ctx context.Context, cart *Cart) error
	// Delete 删除用户购物车，不存在时不报错
	Delete(ctx context.Context, userID string) error
}

// EventPublisher 领域事件发布
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
