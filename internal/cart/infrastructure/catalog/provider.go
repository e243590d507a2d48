// Package catalog 把商品目录的快照适配为购物车对账使用的 CatalogProvider
package catalog

import (
	"context"
	"time"

	catalogapp "github.com/wyfcoding/storefront/internal/catalog/application"
	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// SnapshotSource 商品目录快照来源
type SnapshotSource interface {
	Snapshot(ctx context.Context, ids []string, now time.Time) (map[string]catalogapp.SnapshotEntry, error)
}

type provider struct {
	source SnapshotSource
	now    func() time.Time
}

// NewProvider 创建快照适配器；促销窗口按调用时刻解析
func NewProvider(source SnapshotSource) domain.CatalogProvider {
	return &provider{source: source, now: time.Now}
}

func (p *provider) Snapshot(ctx context.Context, productIDs []string) (domain.CatalogSnapshot, error) {
	entries, err := p.source.Snapshot(ctx, productIDs, p.now())
	if err != nil {
		return nil, err
	}
	snapshot := make(domain.CatalogSnapshot, len(entries))
	for id, e := range entries {
		snapshot[id] = domain.CatalogEntry{
			ProductID:  e.ProductID,
			Name:       e.Name,
			ImageURL:   e.ImageURL,
			Unit:       e.Unit,
			Price:      e.Price,
			PromoPrice: e.PromoPrice,
			TaxRate:    e.TaxRate,
			Stock:      e.Stock,
			Active:     e.Active,
		}
	}
	return snapshot, nil
}
