package domain

import "context"

// OrderRepository 订单仓储接口。context 中带有事务时在该事务内执行
type OrderRepository interface {
	// Save 新建订单或更新状态
	Save(ctx context.Context, order *Order) error
	// Get 根据订单 ID 获取订单，不存在返回 ErrOrderNotFound
	Get(ctx context.Context, orderID string) (*Order, error)
	// ListByUser 获取用户订单列表，按创建时间倒序
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Order, int64, error)
}
