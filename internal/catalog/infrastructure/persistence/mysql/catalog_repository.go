package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/db"
	"gorm.io/gorm"
)

type productRepository struct{ db *gorm.DB }

// NewProductRepository 创建商品仓储
func NewProductRepository(gdb *gorm.DB) domain.ProductRepository {
	return &productRepository{db: gdb}
}

func (r *productRepository) conn(ctx context.Context) *gorm.DB {
	return db.Conn(ctx, r.db)
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	var po ProductPO
	err := r.conn(ctx).Where("product_id = ?", product.ID).First(&po).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	po.FromDomain(product)
	if err := r.conn(ctx).Save(&po).Error; err != nil {
		return err
	}
	product.CreatedAt = po.CreatedAt
	product.UpdatedAt = po.UpdatedAt
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var po ProductPO
	err := r.conn(ctx).Where("product_id = ?", id).First(&po).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return po.ToDomain(), nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return []*domain.Product{}, nil
	}
	var pos []ProductPO
	if err := r.conn(ctx).Where("product_id IN ?", ids).Find(&pos).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(pos))
	for i := range pos {
		products = append(products, pos[i].ToDomain())
	}
	return products, nil
}

func (r *productRepository) List(ctx context.Context, category string, offset, limit int) ([]*domain.Product, int, error) {
	var pos []ProductPO
	var total int64
	q := r.conn(ctx).Model(&ProductPO{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	q = q.Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("name ASC").Offset(offset).Limit(limit).Find(&pos).Error; err != nil {
		return nil, 0, err
	}
	products := make([]*domain.Product, 0, len(pos))
	for i := range pos {
		products = append(products, pos[i].ToDomain())
	}
	return products, int(total), nil
}

// DecrementStock 条件更新，并发下单时只有一个能扣到最后的库存
func (r *productRepository) DecrementStock(ctx context.Context, id string, qty int) error {
	result := r.conn(ctx).Model(&ProductPO{}).
		Where("product_id = ? AND active = ? AND stock >= ?", id, true, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *productRepository) IncrementStock(ctx context.Context, id string, qty int) error {
	result := r.conn(ctx).Model(&ProductPO{}).
		Where("product_id = ?", id).
		Update("stock", gorm.Expr("stock + ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
