// Package domain 购物车领域模型与对账引擎
//
// 购物车只保存商品引用和数量；价格、库存、上下架状态在每次读取时
// 根据当前商品快照重新计算，不在购物车中缓存。
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// MinQuantity 单行最小数量
	MinQuantity = 1
	// MaxQuantity 单行最大数量
	MaxQuantity = 9999
)

var (
	// ErrQuantityOutOfRange 数量超出 [MinQuantity, MaxQuantity]
	ErrQuantityOutOfRange = errors.New("quantity out of range")
	// ErrItemNotFound 购物车中不存在该行
	ErrItemNotFound = errors.New("cart item not found")
	// ErrCartNotFound 用户尚无购物车
	ErrCartNotFound = errors.New("cart not found")
	// ErrProductUnavailable 商品不存在或已下架，不能加入购物车
	ErrProductUnavailable = errors.New("product unavailable")
	// ErrCartConflict 保存时购物车已被其他写入修改
	ErrCartConflict = errors.New("cart was modified concurrently")
)

// CartItem 购物车行，只存储引用和数量
type CartItem struct {
	// 行 ID，购物车内唯一
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	// 用户最后一次看到的单价，仅用于价格变动提示，不参与计价
	AcknowledgedPrice decimal.NullDecimal `json:"acknowledged_price"`
	AddedAt           time.Time           `json:"added_at"`
}

// Cart 用户购物车，Items 保持插入顺序
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	// 持久化版本号，每次保存成功后加一；0 表示尚未保存
	Version   int64      `json:"version"`
}

// NewCart 创建空购物车
func NewCart(userID string) *Cart {
	now := time.Now()
	return &Cart{UserID: userID, CreatedAt: now, UpdatedAt: now}
}

// ValidQuantity 判断数量是否在允许范围内
func ValidQuantity(q int) bool {
	return q >= MinQuantity && q <= MaxQuantity
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ProductIDs 返回购物车引用的商品 ID（去重，保持顺序）
func (c *Cart) ProductIDs() []string {
	seen := make(map[string]struct{}, len(c.Items))
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// Item 按行 ID 查找
func (c *Cart) Item(itemID string) (CartItem, bool) {
	if i := c.indexOf(itemID); i >= 0 {
		return c.Items[i], true
	}
	return CartItem{}, false
}

// AddItem 加入商品。已有同商品的行时合并数量；合并后超过 MaxQuantity 则拒绝且不修改购物车。
// seenPrice 为用户加入时看到的单价。返回新增或合并后的行。
func (c *Cart) AddItem(productID string, quantity int, seenPrice decimal.Decimal) (CartItem, error) {
	if !ValidQuantity(quantity) {
		return CartItem{}, ErrQuantityOutOfRange
	}

	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		merged := c.Items[i].Quantity + quantity
		if !ValidQuantity(merged) {
			return CartItem{}, ErrQuantityOutOfRange
		}
		c.Items[i].Quantity = merged
		c.Items[i].AcknowledgedPrice = decimal.NewNullDecimal(seenPrice)
		c.touch()
		return c.Items[i], nil
	}

	item := CartItem{
		ID:                uuid.NewString(),
		ProductID:         productID,
		Quantity:          quantity,
		AcknowledgedPrice: decimal.NewNullDecimal(seenPrice),
		AddedAt:           time.Now(),
	}
	c.Items = append(c.Items, item)
	c.touch()
	return item, nil
}

// UpdateQuantity 修改行数量。数量小于 1 时拒绝，删除请使用 RemoveItem。
func (c *Cart) UpdateQuantity(itemID string, quantity int) (CartItem, error) {
	if !ValidQuantity(quantity) {
		return CartItem{}, ErrQuantityOutOfRange
	}
	i := c.indexOf(itemID)
	if i < 0 {
		return CartItem{}, ErrItemNotFound
	}
	c.Items[i].Quantity = quantity
	c.touch()
	return c.Items[i], nil
}

// AcknowledgePrice 记录用户已看到的单价
func (c *Cart) AcknowledgePrice(itemID string, price decimal.Decimal) {
	if i := c.indexOf(itemID); i >= 0 {
		c.Items[i].AcknowledgedPrice = decimal.NewNullDecimal(price)
	}
}

// RemoveItem 删除行
func (c *Cart) RemoveItem(itemID string) (CartItem, error) {
	i := c.indexOf(itemID)
	if i < 0 {
		return CartItem{}, ErrItemNotFound
	}
	removed := c.Items[i]
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.touch()
	return removed, nil
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.Items = nil
	c.touch()
}

func (c *Cart) indexOf(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}
