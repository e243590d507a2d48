package application

import (
	"context"

	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// CartApplicationService 购物车服务门面，组合命令与查询服务
type CartApplicationService struct {
	command *CartCommandService
	query   *CartQueryService
}

// NewCartApplicationService 创建购物车应用服务
func NewCartApplicationService(command *CartCommandService, query *CartQueryService) *CartApplicationService {
	return &CartApplicationService{command: command, query: query}
}

func (s *CartApplicationService) GetCart(ctx context.Context, userID string) (*CartDTO, error) {
	return s.query.GetCart(ctx, userID)
}

func (s *CartApplicationService) ValidateCart(ctx context.Context, userID string) (*domain.ValidationResult, error) {
	return s.query.ValidateCart(ctx, userID)
}

func (s *CartApplicationService) AddItem(ctx context.Context, cmd AddItemCommand) (*CartDTO, error) {
	return s.command.AddItem(ctx, cmd)
}

func (s *CartApplicationService) UpdateItemQuantity(ctx context.Context, cmd UpdateItemCommand) (*CartDTO, error) {
	return s.command.UpdateItemQuantity(ctx, cmd)
}

func (s *CartApplicationService) RemoveItem(ctx context.Context, userID, itemID string) (*CartDTO, error) {
	return s.command.RemoveItem(ctx, userID, itemID)
}

func (s *CartApplicationService) ClearCart(ctx context.Context, userID string) (*CartDTO, error) {
	return s.command.ClearCart(ctx, userID)
}

func (s *CartApplicationService) ApplyFixes(ctx context.Context, userID string) (*FixResultDTO, error) {
	return s.command.ApplyFixes(ctx, userID)
}

func (s *CartApplicationService) AcknowledgePrices(ctx context.Context, userID string) (*CartDTO, error) {
	return s.command.AcknowledgePrices(ctx, userID)
}
