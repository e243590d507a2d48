package application

import (
	"context"
	"time"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/pagination"
)

// CatalogQueryService 商品目录查询服务
type CatalogQueryService struct {
	repo domain.ProductRepository
}

// NewCatalogQueryService 创建商品目录查询服务实例
func NewCatalogQueryService(
	repo domain.ProductRepository,
) *CatalogQueryService {
	return &CatalogQueryService{
		repo: repo,
	}
}

// GetProduct 根据ID获取商品信息
func (s *CatalogQueryService) GetProduct(ctx context.Context, id string) (*ProductDTO, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductDTO(product), nil
}

// ListProducts 列出商品，page 从 1 开始
func (s *CatalogQueryService) ListProducts(ctx context.Context, category string, page, size int) (*ProductPageDTO, error) {
	pg := pagination.New(page, size)

	products, total, err := s.repo.List(ctx, category, pg.Offset(), pg.Limit())
	if err != nil {
		return nil, err
	}
	items := make([]*ProductDTO, 0, len(products))
	for _, p := range products {
		items = append(items, toProductDTO(p))
	}
	return &ProductPageDTO{Items: items, Total: total, Page: pg.Page, Size: pg.Size}, nil
}

// Snapshot 返回给定商品在 now 时刻的事实，不存在的商品不出现在结果中
func (s *CatalogQueryService) Snapshot(ctx context.Context, ids []string, now time.Time) (map[string]SnapshotEntry, error) {
	products, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	snapshot := make(map[string]SnapshotEntry, len(products))
	for _, p := range products {
		snapshot[p.ID] = SnapshotEntry{
			ProductID:  p.ID,
			Name:       p.Name,
			ImageURL:   p.ImageURL,
			Unit:       p.Unit,
			Price:      p.Price,
			PromoPrice: p.ActivePromoPrice(now),
			TaxRate:    p.TaxRate,
			Stock:      p.Stock,
			Active:     p.Active,
		}
	}
	return snapshot, nil
}
