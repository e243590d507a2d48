package application

import (
	"context"

	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

// CartQueryService 购物车读操作：每次读取都按当前快照重新对账
type CartQueryService struct {
	reconciler
	metrics *metrics.Metrics
}

// NewCartQueryService 创建购物车查询服务
func NewCartQueryService(
	repo domain.CartRepository,
	catalog domain.CatalogProvider,
	m *metrics.Metrics,
	opts Options,
) *CartQueryService {
	return &CartQueryService{
		reconciler: reconciler{repo: repo, catalog: catalog, opts: opts},
		metrics:    m,
	}
}

// GetCart 返回购物车视图，用户尚无购物车时返回空视图
func (s *CartQueryService) GetCart(ctx context.Context, userID string) (*CartDTO, error) {
	cart, _, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.snapshot(ctx, cart)
	if err != nil {
		return nil, err
	}
	return s.view(cart, snapshot), nil
}

// ValidateCart 结算前校验，不修改购物车
func (s *CartQueryService) ValidateCart(ctx context.Context, userID string) (*domain.ValidationResult, error) {
	cart, _, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.snapshot(ctx, cart)
	if err != nil {
		return nil, err
	}

	result := domain.ValidateForCheckout(cart, snapshot)
	s.metrics.RecordValidation(result.Valid, result.Codes())
	return &result, nil
}
