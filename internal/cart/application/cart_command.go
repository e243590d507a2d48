package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

// CartCommandService 购物车写操作
type CartCommandService struct {
	reconciler
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
}

// NewCartCommandService 创建购物车命令服务
func NewCartCommandService(
	repo domain.CartRepository,
	catalog domain.CatalogProvider,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	opts Options,
) *CartCommandService {
	return &CartCommandService{
		reconciler: reconciler{repo: repo, catalog: catalog, opts: opts},
		publisher:  publisher,
		metrics:    m,
	}
}

// AddItem 加入商品。商品必须存在且已上架；库存在结算前校验时才检查。
func (s *CartCommandService) AddItem(ctx context.Context, cmd AddItemCommand) (*CartDTO, error) {
	if !domain.ValidQuantity(cmd.Quantity) {
		return nil, domain.ErrQuantityOutOfRange
	}

	products, err := s.catalog.Snapshot(ctx, []string{cmd.ProductID})
	if err != nil {
		return nil, fmt.Errorf("catalog snapshot: %w", err)
	}
	entry := products.Lookup(cmd.ProductID)
	if entry == nil || !entry.Active {
		return nil, domain.ErrProductUnavailable
	}

	cart, created, err := s.loadCart(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	seen := domain.ComputeLineView(domain.CartItem{Quantity: 1}, entry).EffectivePrice
	item, err := cart.AddItem(cmd.ProductID, cmd.Quantity, seen)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshot(ctx, cart)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	now := time.Now()
	if created {
		publish(ctx, s.publisher, domain.TopicCartCreated, cart.UserID, domain.CartCreatedEvent{UserID: cart.UserID, Timestamp: now})
	}
	publish(ctx, s.publisher, domain.TopicCartItemAdded, cart.UserID, domain.CartItemAddedEvent{
		UserID:    cart.UserID,
		ItemID:    item.ID,
		ProductID: item.ProductID,
		Added:     cmd.Quantity,
		Quantity:  item.Quantity,
		Timestamp: now,
	})
	s.metrics.RecordCartMutation("add")
	logger.Info(ctx, "Item added to cart", "user_id", cart.UserID, "product_id", item.ProductID, "quantity", item.Quantity)

	return s.view(cart, snapshot), nil
}

// UpdateItemQuantity 修改行数量，并把当前单价记为用户已看到的价格
func (s *CartCommandService) UpdateItemQuantity(ctx context.Context, cmd UpdateItemCommand) (*CartDTO, error) {
	if !domain.ValidQuantity(cmd.Quantity) {
		return nil, domain.ErrQuantityOutOfRange
	}

	cart, err := s.existingCart(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	before, ok := cart.Item(cmd.ItemID)
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	item, err := cart.UpdateQuantity(cmd.ItemID, cmd.Quantity)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshot(ctx, cart)
	if err != nil {
		return nil, err
	}
	if entry := snapshot.Lookup(item.ProductID); entry != nil {
		cart.AcknowledgePrice(item.ID, domain.ComputeLineView(item, entry).EffectivePrice)
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	publish(ctx, s.publisher, domain.TopicCartItemUpdated, cart.UserID, domain.CartItemUpdatedEvent{
		UserID:      cart.UserID,
		ItemID:      item.ID,
		ProductID:   item.ProductID,
		OldQuantity: before.Quantity,
		NewQuantity: item.Quantity,
		Timestamp:   time.Now(),
	})
	s.metrics.RecordCartMutation("update")

	return s.view(cart, snapshot), nil
}

// RemoveItem 删除行
func (s *CartCommandService) RemoveItem(ctx context.Context, userID, itemID string) (*CartDTO, error) {
	cart, err := s.existingCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	removed, err := cart.RemoveItem(itemID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshot(ctx, cart)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	publish(ctx, s.publisher, domain.TopicCartItemRemoved, cart.UserID, domain.CartItemRemovedEvent{
		UserID:    cart.UserID,
		ItemID:    removed.ID,
		ProductID: removed.ProductID,
		Timestamp: time.Now(),
	})
	s.metrics.RecordCartMutation("remove")

	return s.view(cart, snapshot), nil
}

// ClearCart 清空购物车；购物车不存在时直接返回空视图
func (s *CartCommandService) ClearCart(ctx context.Context, userID string) (*CartDTO, error) {
	cart, created, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if created {
		return s.view(cart, domain.CatalogSnapshot{}), nil
	}

	cart.Clear()
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	publish(ctx, s.publisher, domain.TopicCartCleared, cart.UserID, domain.CartClearedEvent{UserID: cart.UserID, Timestamp: time.Now()})
	s.metrics.RecordCartMutation("clear")

	return s.view(cart, domain.CatalogSnapshot{}), nil
}

// ApplyFixes 按当前快照校验并执行所有建议修复，返回修复后的视图与实际变更
func (s *CartCommandService) ApplyFixes(ctx context.Context, userID string) (*FixResultDTO, error) {
	cart, created, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.snapshot(ctx, cart)
	if err != nil {
		return nil, err
	}

	result := domain.ValidateForCheckout(cart, snapshot)
	changes := domain.ApplyFixes(cart, result)
	if len(changes) > 0 && !created {
		if err := s.repo.Save(ctx, cart); err != nil {
			return nil, fmt.Errorf("save cart: %w", err)
		}
		publish(ctx, s.publisher, domain.TopicCartFixed, cart.UserID, domain.CartFixedEvent{
			UserID:    cart.UserID,
			Changes:   changes,
			Timestamp: time.Now(),
		})
		for _, change := range changes {
			s.metrics.RecordFixApplied(string(change.Kind))
		}
		logger.Info(ctx, "Cart fixes applied", "user_id", cart.UserID, "changes", len(changes))
	}

	return &FixResultDTO{Cart: s.view(cart, snapshot), Changes: changes}, nil
}

// AcknowledgePrices 把每行当前单价记为用户已看到的价格，消除价格变动提示。
// 已不存在的商品保持原值；没有变化时不保存
func (s *CartCommandService) AcknowledgePrices(ctx context.Context, userID string) (*CartDTO, error) {
	cart, created, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.snapshot(ctx, cart)
	if err != nil {
		return nil, err
	}
	if created {
		return s.view(cart, snapshot), nil
	}

	changed := 0
	for _, item := range cart.Items {
		entry := snapshot.Lookup(item.ProductID)
		if entry == nil {
			continue
		}
		price := domain.ComputeLineView(item, entry).EffectivePrice
		if item.AcknowledgedPrice.Valid && item.AcknowledgedPrice.Decimal.Equal(price) {
			continue
		}
		cart.AcknowledgePrice(item.ID, price)
		changed++
	}
	if changed > 0 {
		if err := s.repo.Save(ctx, cart); err != nil {
			return nil, fmt.Errorf("save cart: %w", err)
		}
		s.metrics.RecordCartMutation("acknowledge")
	}

	return s.view(cart, snapshot), nil
}

// existingCart 读取已存在的购物车；不存在时任何行都找不到
func (s *CartCommandService) existingCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, created, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if created {
		return nil, domain.ErrItemNotFound
	}
	return cart, nil
}
