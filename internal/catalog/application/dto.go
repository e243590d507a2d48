package application

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

// ProductDTO 商品信息传输对象，金额为字符串
type ProductDTO struct {
	ProductID     string     `json:"product_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	ImageURL      string     `json:"image_url"`
	Unit          string     `json:"unit"`
	Price         string     `json:"price"`
	PromoPrice    string     `json:"promo_price,omitempty"`
	PromoStartsAt *time.Time `json:"promo_starts_at,omitempty"`
	PromoEndsAt   *time.Time `json:"promo_ends_at,omitempty"`
	TaxRate       string     `json:"tax_rate"`
	Stock         int        `json:"stock"`
	Active        bool       `json:"active"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ProductPageDTO 分页结果
type ProductPageDTO struct {
	Items []*ProductDTO `json:"items"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
}

// SnapshotEntry 某一时刻的商品事实，促销价已按时间解析
type SnapshotEntry struct {
	ProductID  string
	Name       string
	ImageURL   string
	Unit       string
	Price      decimal.Decimal
	PromoPrice decimal.NullDecimal
	TaxRate    decimal.Decimal
	Stock      int
	Active     bool
}

func toProductDTO(p *domain.Product) *ProductDTO {
	dto := &ProductDTO{
		ProductID:     p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		ImageURL:      p.ImageURL,
		Unit:          p.Unit,
		Price:         p.Price.StringFixed(2),
		PromoStartsAt: p.PromoStartsAt,
		PromoEndsAt:   p.PromoEndsAt,
		TaxRate:       p.TaxRate.String(),
		Stock:         p.Stock,
		Active:        p.Active,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.PromoPrice.Valid {
		dto.PromoPrice = p.PromoPrice.Decimal.StringFixed(2)
	}
	return dto
}
