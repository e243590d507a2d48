package application

import (
	"context"
	"time"
)

// CatalogApplicationService 商品目录服务门面
type CatalogApplicationService struct {
	command *CatalogCommandService
	query   *CatalogQueryService
}

// NewCatalogApplicationService 创建商品目录应用服务
func NewCatalogApplicationService(command *CatalogCommandService, query *CatalogQueryService) *CatalogApplicationService {
	return &CatalogApplicationService{command: command, query: query}
}

func (s *CatalogApplicationService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*ProductDTO, error) {
	return s.command.CreateProduct(ctx, cmd)
}

func (s *CatalogApplicationService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) (*ProductDTO, error) {
	return s.command.UpdateProduct(ctx, cmd)
}

func (s *CatalogApplicationService) AdjustStock(ctx context.Context, id string, stock int) (*ProductDTO, error) {
	return s.command.AdjustStock(ctx, id, stock)
}

func (s *CatalogApplicationService) SetActive(ctx context.Context, id string, active bool) (*ProductDTO, error) {
	return s.command.SetActive(ctx, id, active)
}

func (s *CatalogApplicationService) GetProduct(ctx context.Context, id string) (*ProductDTO, error) {
	return s.query.GetProduct(ctx, id)
}

func (s *CatalogApplicationService) ListProducts(ctx context.Context, category string, page, size int) (*ProductPageDTO, error) {
	return s.query.ListProducts(ctx, category, page, size)
}

func (s *CatalogApplicationService) Snapshot(ctx context.Context, ids []string, now time.Time) (map[string]SnapshotEntry, error) {
	return s.query.Snapshot(ctx, ids, now)
}
