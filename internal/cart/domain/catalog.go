package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// CatalogEntry 某一时刻的商品事实：价格、促销价、税率、库存、是否上架
type CatalogEntry struct {
	ProductID string
	Name      string
	ImageURL  string
	Unit      string
	Price     decimal.Decimal
	// 当前有效的促销价；促销窗口已由快照提供方解析
	PromoPrice decimal.NullDecimal
	// 税率百分比，例如 5.5 表示 5.5%
	TaxRate decimal.Decimal
	Stock   int
	Active  bool
}

// CatalogSnapshot 按商品 ID 索引的快照，缺失表示商品已不存在
type CatalogSnapshot map[string]CatalogEntry

// Lookup 查找商品，不存在返回 nil
func (s CatalogSnapshot) Lookup(productID string) *CatalogEntry {
	entry, ok := s[productID]
	if !ok {
		return nil
	}
	return &entry
}

// CatalogProvider 商品快照提供方
type CatalogProvider interface {
	// Snapshot 返回给定商品的当前快照；不存在的商品不出现在结果中
	Snapshot(ctx context.Context, productIDs []string) (CatalogSnapshot, error)
}
