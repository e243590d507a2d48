package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/db"
	"gorm.io/gorm"
)

// cartRepository 购物车 GORM 仓储，驱动可以是 MySQL 或 PostgreSQL
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储。context 中带有事务时在该事务内执行
func NewCartRepository(gdb *gorm.DB) domain.CartRepository {
	return &cartRepository{db: gdb}
}

func (r *cartRepository) conn(ctx context.Context) *gorm.DB {
	return db.Conn(ctx, r.db)
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	var po CartPO
	err := r.conn(ctx).
		Preload("Items", func(q *gorm.DB) *gorm.DB { return q.Order("position ASC") }).
		Where("user_id = ?", userID).
		First(&po).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return po.ToDomain(), nil
}

// Save 保存购物车：行整体替换。cart.Version 与库中版本不一致时返回 domain.ErrCartConflict
func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	var version int64
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var po CartPO
		err := tx.Where("user_id = ?", cart.UserID).First(&po).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if cart.Version != 0 {
				return domain.ErrCartConflict
			}
			po = CartPO{UserID: cart.UserID, Version: 1}
			po.CreatedAt = cart.CreatedAt
			if err := tx.Create(&po).Error; err != nil {
				return err
			}
			version = 1
		case err != nil:
			return err
		default:
			res := tx.Model(&CartPO{}).
				Where("id = ? AND version = ?", po.ID, cart.Version).
				Updates(map[string]any{
					"updated_at": cart.UpdatedAt,
					"version":    gorm.Expr("version + 1"),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domain.ErrCartConflict
			}
			version = cart.Version + 1
		}

		if err := tx.Where("cart_id = ?", po.ID).Delete(&CartItemPO{}).Error; err != nil {
			return err
		}
		items := itemsFromDomain(po.ID, cart)
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return err
	}
	cart.Version = version
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, userID string) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var po CartPO
		err := tx.Where("user_id = ?", userID).First(&po).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", po.ID).Delete(&CartItemPO{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&po).Error
	})
}
