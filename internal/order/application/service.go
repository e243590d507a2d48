package application

import (
	"context"

	"github.com/wyfcoding/storefront/internal/order/domain"
)

// OrderApplicationService 订单服务门面
type OrderApplicationService struct {
	command *OrderCommandService
	query   *OrderQueryService
}

// NewOrderApplicationService 创建订单应用服务
func NewOrderApplicationService(command *OrderCommandService, query *OrderQueryService) *OrderApplicationService {
	return &OrderApplicationService{command: command, query: query}
}

func (s *OrderApplicationService) PlaceOrder(ctx context.Context, userID string) (*OrderDTO, error) {
	return s.command.PlaceOrder(ctx, userID)
}

func (s *OrderApplicationService) UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus) (*OrderDTO, error) {
	return s.command.UpdateStatus(ctx, orderID, to)
}

func (s *OrderApplicationService) GetOrder(ctx context.Context, userID, orderID string) (*OrderDTO, error) {
	return s.query.GetOrder(ctx, userID, orderID)
}

func (s *OrderApplicationService) ListOrders(ctx context.Context, userID string, page, size int) (*OrderPageDTO, error) {
	return s.query.ListOrders(ctx, userID, page, size)
}
