package application

import (
	"context"

	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/pagination"
)

// OrderQueryService 处理订单相关的读操作
type OrderQueryService struct {
	repo domain.OrderRepository
}

// NewOrderQueryService 创建订单查询服务
func NewOrderQueryService(repo domain.OrderRepository) *OrderQueryService {
	return &OrderQueryService{repo: repo}
}

// GetOrder 获取用户的订单；订单属于其他用户时视为不存在
func (s *OrderQueryService) GetOrder(ctx context.Context, userID, orderID string) (*OrderDTO, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if userID != "" && order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return toOrderDTO(order), nil
}

// ListOrders 分页列出用户订单
func (s *OrderQueryService) ListOrders(ctx context.Context, userID string, page, size int) (*OrderPageDTO, error) {
	p := pagination.New(page, size)
	orders, total, err := s.repo.ListByUser(ctx, userID, p.Limit(), p.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]*OrderDTO, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderDTO(o))
	}
	return &OrderPageDTO{Items: items, Total: total, Page: p.Page, Size: p.Size}, nil
}
