package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	cartdomain "github.com/wyfcoding/storefront/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

const cartCacheEvictAttempts = 3

var cartCacheEvictBackoff = 50 * time.Millisecond

// CheckoutOptions 下单使用的计价规则，与购物车一致
type CheckoutOptions struct {
	Policy   cartdomain.Policy
	Currency string
}

// OrderCommandService 处理订单相关的写操作
type OrderCommandService struct {
	orders    domain.OrderRepository
	carts     cartdomain.CartRepository
	cartCache cartdomain.CartRepository
	catalog   cartdomain.CatalogProvider
	stock     StockService
	tx        TxManager
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	opts      CheckoutOptions
}

// NewOrderCommandService 创建订单命令服务。carts 必须是数据库仓储以参与事务；cartCache 可为 nil
func NewOrderCommandService(
	orders domain.OrderRepository,
	carts cartdomain.CartRepository,
	cartCache cartdomain.CartRepository,
	catalog cartdomain.CatalogProvider,
	stock StockService,
	tx TxManager,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	opts CheckoutOptions,
) *OrderCommandService {
	return &OrderCommandService{
		orders:    orders,
		carts:     carts,
		cartCache: cartCache,
		catalog:   catalog,
		stock:     stock,
		tx:        tx,
		publisher: publisher,
		metrics:   m,
		opts:      opts,
	}
}

// PlaceOrder 把用户购物车转为订单。
// 校验不通过时返回 *domain.CartInvalidError 且没有任何副作用；
// 扣减库存、保存订单、清空购物车在同一事务中完成。
func (s *OrderCommandService) PlaceOrder(ctx context.Context, userID string) (*OrderDTO, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if errors.Is(err, cartdomain.ErrCartNotFound) || (err == nil && cart.IsEmpty()) {
		s.metrics.RecordOrder("rejected")
		return nil, domain.ErrEmptyCart
	}
	if err != nil {
		s.metrics.RecordOrder("failed")
		return nil, fmt.Errorf("load cart: %w", err)
	}

	snapshot, err := s.catalog.Snapshot(ctx, cart.ProductIDs())
	if err != nil {
		s.metrics.RecordOrder("failed")
		return nil, fmt.Errorf("catalog snapshot: %w", err)
	}

	result := cartdomain.ValidateForCheckout(cart, snapshot)
	if !result.Valid {
		s.metrics.RecordOrder("rejected")
		return nil, &domain.CartInvalidError{Result: result}
	}

	order, err := domain.NewOrder(userID, s.opts.Currency, cartdomain.ComputeView(cart, snapshot, s.opts.Policy))
	if err != nil {
		s.metrics.RecordOrder("failed")
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(txCtx context.Context) error {
		for _, line := range order.Lines {
			if err := s.stock.DecrementStock(txCtx, line.ProductID, line.Quantity); err != nil {
				if errors.Is(err, catalogdomain.ErrInsufficientStock) {
					return fmt.Errorf("%w: product %s", domain.ErrStockConflict, line.ProductID)
				}
				return err
			}
		}
		if err := s.orders.Save(txCtx, order); err != nil {
			return err
		}
		cart.Clear()
		return s.carts.Save(txCtx, cart)
	})
	if err != nil {
		if errors.Is(err, domain.ErrStockConflict) || errors.Is(err, cartdomain.ErrCartConflict) {
			s.metrics.RecordOrder("conflict")
		} else {
			s.metrics.RecordOrder("failed")
		}
		logger.Warn(ctx, "Order commit failed", "user_id", userID, "error", err)
		return nil, err
	}

	s.evictCartCache(ctx, userID)

	event := domain.OrderPlacedEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Lines:      make([]domain.OrderPlacedLine, 0, len(order.Lines)),
		GrandTotal: order.GrandTotal.StringFixed(2),
		Currency:   order.Currency,
		Timestamp:  time.Now(),
	}
	for _, l := range order.Lines {
		event.Lines = append(event.Lines, domain.OrderPlacedLine{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice.StringFixed(2)})
	}
	s.publish(ctx, domain.TopicOrderPlaced, order.ID, event)
	s.metrics.RecordOrder("placed")
	logger.Info(ctx, "Order placed", "order_id", order.ID, "user_id", userID, "grand_total", event.GrandTotal)

	return toOrderDTO(order), nil
}

// evictCartCache 清空购物车后删除缓存副本，失败时按退避重试。
// 最终仍失败时缓存里的旧副本带着旧版本号，写回会因版本冲突被拒绝
func (s *OrderCommandService) evictCartCache(ctx context.Context, userID string) {
	if s.cartCache == nil {
		return
	}
	var err error
	for attempt := 1; attempt <= cartCacheEvictAttempts; attempt++ {
		if err = s.cartCache.Delete(ctx, userID); err == nil {
			return
		}
		if attempt == cartCacheEvictAttempts {
			break
		}
		select {
		case <-ctx.Done():
			logger.Warn(ctx, "Failed to invalidate cart cache", "user_id", userID, "error", ctx.Err())
			return
		case <-time.After(cartCacheEvictBackoff * time.Duration(attempt)):
		}
	}
	logger.Warn(ctx, "Failed to invalidate cart cache", "user_id", userID, "attempts", cartCacheEvictAttempts, "error", err)
}

// UpdateStatus 订单状态流转；取消时回补库存
func (s *OrderCommandService) UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus) (*OrderDTO, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	from, err := order.Transition(to)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(txCtx context.Context) error {
		if to == domain.OrderStatusCancelled {
			for _, line := range order.Lines {
				if err := s.stock.IncrementStock(txCtx, line.ProductID, line.Quantity); err != nil && !errors.Is(err, catalogdomain.ErrProductNotFound) {
					return err
				}
			}
		}
		return s.orders.Save(txCtx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.TopicOrderStatusChanged, order.ID, domain.OrderStatusChangedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		From:      from,
		To:        to,
		Timestamp: time.Now(),
	})
	s.metrics.RecordOrderTransition(string(to))
	return toOrderDTO(order), nil
}

func (s *OrderCommandService) publish(ctx context.Context, topic, key string, event any) {
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logger.Warn(ctx, "Failed to publish order event", "topic", topic, "order_id", key, "error", err)
	}
}
