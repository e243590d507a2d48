package application

import "context"

// StockService 库存扣减与回补，由商品目录仓储实现
type StockService interface {
	DecrementStock(ctx context.Context, productID string, qty int) error
	IncrementStock(ctx context.Context, productID string, qty int) error
}

// TxManager 事务管理，事务经由 txCtx 传递给各仓储
type TxManager interface {
	WithTx(ctx context.Context, fn func(txCtx context.Context) error) error
}
