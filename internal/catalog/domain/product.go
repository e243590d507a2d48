// Package domain 商品目录领域模型
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidProduct    = errors.New("invalid product")
	ErrInsufficientStock = errors.New("insufficient stock")
)

var maxTaxRate = decimal.NewFromInt(100)

// Product 商品。价格均为含税价，TaxRate 为百分比
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	ImageURL    string
	Unit        string
	Price       decimal.Decimal
	PromoPrice  decimal.NullDecimal
	// 促销窗口，为空表示不限
	PromoStartsAt *time.Time
	PromoEndsAt   *time.Time
	TaxRate       decimal.Decimal
	Stock         int
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProduct 创建商品并分配 ID
func NewProduct(p Product) (*Product, error) {
	p.ID = uuid.NewString()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate 校验商品字段
func (p *Product) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	case p.TaxRate.IsNegative() || p.TaxRate.GreaterThanOrEqual(maxTaxRate):
		return fmt.Errorf("%w: tax rate must be in [0, 100)", ErrInvalidProduct)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	case p.PromoPrice.Valid && p.PromoPrice.Decimal.IsNegative():
		return fmt.Errorf("%w: promo price must not be negative", ErrInvalidProduct)
	case p.PromoStartsAt != nil && p.PromoEndsAt != nil && !p.PromoEndsAt.After(*p.PromoStartsAt):
		return fmt.Errorf("%w: promo window ends before it starts", ErrInvalidProduct)
	}
	return nil
}

// ActivePromoPrice 返回 now 时刻生效的促销价，窗口为 [start, end)
func (p *Product) ActivePromoPrice(now time.Time) decimal.NullDecimal {
	if !p.PromoPrice.Valid {
		return decimal.NullDecimal{}
	}
	if p.PromoStartsAt != nil && now.Before(*p.PromoStartsAt) {
		return decimal.NullDecimal{}
	}
	if p.PromoEndsAt != nil && !now.Before(*p.PromoEndsAt) {
		return decimal.NullDecimal{}
	}
	return p.PromoPrice
}

// SetStock 设置库存绝对值，返回旧值
func (p *Product) SetStock(stock int) (int, error) {
	if stock < 0 {
		return p.Stock, fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	old := p.Stock
	p.Stock = stock
	return old, nil
}
