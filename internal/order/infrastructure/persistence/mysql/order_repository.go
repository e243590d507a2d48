package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/db"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(gdb *gorm.DB) domain.OrderRepository {
	return &orderRepository{db: gdb}
}

func (r *orderRepository) conn(ctx context.Context) *gorm.DB {
	return db.Conn(ctx, r.db)
}

// Save 新订单连同行一起写入；已存在的订单只更新状态，行快照不可变
func (r *orderRepository) Save(ctx context.Context, order *domain.Order) error {
	var existing OrderPO
	err := r.conn(ctx).Where("order_id = ?", order.ID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.conn(ctx).Create(FromDomain(order)).Error
	case err != nil:
		return err
	}
	return r.conn(ctx).Model(&existing).Updates(map[string]any{
		"status":     string(order.Status),
		"updated_at": order.UpdatedAt,
	}).Error
}

func (r *orderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	var po OrderPO
	err := r.conn(ctx).
		Preload("Lines", func(q *gorm.DB) *gorm.DB { return q.Order("position ASC") }).
		Where("order_id = ?", orderID).
		First(&po).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return po.ToDomain(), nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, int64, error) {
	var total int64
	q := r.conn(ctx).Model(&OrderPO{}).Where("user_id = ?", userID).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var pos []OrderPO
	err := q.Preload("Lines", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&pos).Error
	if err != nil {
		return nil, 0, err
	}
	orders := make([]*domain.Order, 0, len(pos))
	for i := range pos {
		orders = append(orders, pos[i].ToDomain())
	}
	return orders, total, nil
}
