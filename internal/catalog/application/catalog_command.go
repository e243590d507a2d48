package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/logger"
)

// ProductFields 商品可编辑字段
type ProductFields struct {
	Name          string
	Description   string
	Category      string
	ImageURL      string
	Unit          string
	Price         decimal.Decimal
	PromoPrice    decimal.NullDecimal
	PromoStartsAt *time.Time
	PromoEndsAt   *time.Time
	TaxRate       decimal.Decimal
}

// CreateProductCommand 创建商品命令
type CreateProductCommand struct {
	ProductFields
	Stock  int
	Active bool
}

// UpdateProductCommand 更新商品命令，不修改库存和上下架状态
type UpdateProductCommand struct {
	ID string
	ProductFields
}

// CatalogCommandService 商品目录命令服务
type CatalogCommandService struct {
	repo      domain.ProductRepository
	publisher domain.EventPublisher
}

// NewCatalogCommandService 创建商品目录命令服务实例
func NewCatalogCommandService(
	repo domain.ProductRepository,
	publisher domain.EventPublisher,
) *CatalogCommandService {
	return &CatalogCommandService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateProduct 处理创建商品
func (s *CatalogCommandService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*ProductDTO, error) {
	product, err := domain.NewProduct(domain.Product{
		Name:          cmd.Name,
		Description:   cmd.Description,
		Category:      cmd.Category,
		ImageURL:      cmd.ImageURL,
		Unit:          cmd.Unit,
		Price:         cmd.Price,
		PromoPrice:    cmd.PromoPrice,
		PromoStartsAt: cmd.PromoStartsAt,
		PromoEndsAt:   cmd.PromoEndsAt,
		TaxRate:       cmd.TaxRate,
		Stock:         cmd.Stock,
		Active:        cmd.Active,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}

	// 发布商品创建事件
	event := domain.ProductCreatedEvent{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price.StringFixed(2),
		Stock:     product.Stock,
		Category:  product.Category,
		Timestamp: time.Now(),
	}
	s.publish(ctx, domain.TopicProductCreated, product.ID, event)

	return toProductDTO(product), nil
}

// UpdateProduct 处理更新商品
func (s *CatalogCommandService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) (*ProductDTO, error) {
	product, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	product.Name = cmd.Name
	product.Description = cmd.Description
	product.Category = cmd.Category
	product.ImageURL = cmd.ImageURL
	product.Unit = cmd.Unit
	product.Price = cmd.Price
	product.PromoPrice = cmd.PromoPrice
	product.PromoStartsAt = cmd.PromoStartsAt
	product.PromoEndsAt = cmd.PromoEndsAt
	product.TaxRate = cmd.TaxRate
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishUpdated(ctx, product)
	return toProductDTO(product), nil
}

// AdjustStock 设置库存绝对值，库存变化时发布库存变更事件
func (s *CatalogCommandService) AdjustStock(ctx context.Context, id string, stock int) (*ProductDTO, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStock, err := product.SetStock(stock)
	if err != nil {
		return nil, err
	}
	if oldStock == stock {
		return toProductDTO(product), nil
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}

	stockEvent := domain.ProductStockChangedEvent{
		ProductID: product.ID,
		OldStock:  oldStock,
		NewStock:  product.Stock,
		Timestamp: time.Now(),
	}
	s.publish(ctx, domain.TopicProductStockChanged, product.ID, stockEvent)
	return toProductDTO(product), nil
}

// SetActive 上架或下架
func (s *CatalogCommandService) SetActive(ctx context.Context, id string, active bool) (*ProductDTO, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.Active == active {
		return toProductDTO(product), nil
	}

	product.Active = active
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishUpdated(ctx, product)
	return toProductDTO(product), nil
}

func (s *CatalogCommandService) publishUpdated(ctx context.Context, product *domain.Product) {
	event := domain.ProductUpdatedEvent{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price.StringFixed(2),
		Active:    product.Active,
		Category:  product.Category,
		Timestamp: time.Now(),
	}
	if product.PromoPrice.Valid {
		event.PromoPrice = product.PromoPrice.Decimal.StringFixed(2)
	}
	s.publish(ctx, domain.TopicProductUpdated, product.ID, event)
}

func (s *CatalogCommandService) publish(ctx context.Context, topic, key string, event any) {
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logger.Warn(ctx, "Failed to publish catalog event", "topic", topic, "product_id", key, "error", err)
	}
}
