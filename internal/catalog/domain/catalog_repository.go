package domain

import "context"

// ProductRepository 商品仓储。context 中带有事务时在该事务内执行
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	// GetByIDs 批量查询，不存在的 ID 直接忽略
	GetByIDs(ctx context.Context, ids []string) ([]*Product, error)
	List(ctx context.Context, category string, offset, limit int) ([]*Product, int, error)
	// DecrementStock 仅当商品已上架且库存足够时扣减，否则返回 ErrInsufficientStock
	DecrementStock(ctx context.Context, id string, qty int) error
	IncrementStock(ctx context.Context, id string, qty int) error
}

// EventPublisher 领域事件发布
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
