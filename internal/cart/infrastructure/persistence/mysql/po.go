package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/cart/domain"
	"gorm.io/gorm"
)

// CartPO 购物车持久化对象
type CartPO struct {
	gorm.Model
	UserID  string       `gorm:"column:user_id;type:varchar(64);uniqueIndex;not null"`
	Version int64        `gorm:"column:version;not null;default:0"`
	Items   []CartItemPO `gorm:"foreignKey:CartID"`
}

func (CartPO) TableName() string {
	return "carts"
}

// CartItemPO 购物车行，只保存引用与数量
type CartItemPO struct {
	ID                uint                `gorm:"primaryKey;autoIncrement"`
	CartID            uint                `gorm:"column:cart_id;index;not null"`
	ItemID            string              `gorm:"column:item_id;type:varchar(36);uniqueIndex;not null"`
	ProductID         string              `gorm:"column:product_id;type:varchar(36);not null"`
	Quantity          int                 `gorm:"column:quantity;not null"`
	AcknowledgedPrice decimal.NullDecimal `gorm:"column:acknowledged_price;type:decimal(20,2)"`
	Position          int                 `gorm:"column:position;not null"`
	AddedAt           time.Time           `gorm:"column:added_at;not null"`
}

func (CartItemPO) TableName() string {
	return "cart_items"
}

// ToDomain 转换为领域对象，Items 需已按 position 排序
func (po *CartPO) ToDomain() *domain.Cart {
	cart := &domain.Cart{
		UserID:    po.UserID,
		Items:     make([]domain.CartItem, 0, len(po.Items)),
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
		Version:   po.Version,
	}
	for _, item := range po.Items {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:                item.ItemID,
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			AcknowledgedPrice: item.AcknowledgedPrice,
			AddedAt:           item.AddedAt,
		})
	}
	return cart
}

// itemsFromDomain 生成行持久化对象，position 记录插入顺序
func itemsFromDomain(cartID uint, cart *domain.Cart) []CartItemPO {
	items := make([]CartItemPO, 0, len(cart.Items))
	for i, item := range cart.Items {
		items = append(items, CartItemPO{
			CartID:            cartID,
			ItemID:            item.ID,
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			AcknowledgedPrice: item.AcknowledgedPrice,
			Position:          i,
			AddedAt:           item.AddedAt,
		})
	}
	return items
}
