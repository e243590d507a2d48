package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

// ProductPO 商品持久化对象
type ProductPO struct {
	gorm.Model
	ProductID     string              `gorm:"column:product_id;type:varchar(36);uniqueIndex;not null"`
	Name          string              `gorm:"column:name;type:varchar(255);not null"`
	Description   string              `gorm:"column:description;type:text"`
	Category      string              `gorm:"column:category;type:varchar(100);index"`
	ImageURL      string              `gorm:"column:image_url;type:varchar(512)"`
	Unit          string              `gorm:"column:unit;type:varchar(32)"`
	Price         decimal.Decimal     `gorm:"column:price;type:decimal(20,2);not null"`
	PromoPrice    decimal.NullDecimal `gorm:"column:promo_price;type:decimal(20,2)"`
	PromoStartsAt *time.Time          `gorm:"column:promo_starts_at"`
	PromoEndsAt   *time.Time          `gorm:"column:promo_ends_at"`
	TaxRate       decimal.Decimal     `gorm:"column:tax_rate;type:decimal(5,2);not null"`
	Stock         int                 `gorm:"column:stock;not null;default:0"`
	Active        bool                `gorm:"column:active;not null;default:false"`
}

func (ProductPO) TableName() string { return "products" }

// ToDomain 转换为领域对象
func (po *ProductPO) ToDomain() *domain.Product {
	return &domain.Product{
		ID:            po.ProductID,
		Name:          po.Name,
		Description:   po.Description,
		Category:      po.Category,
		ImageURL:      po.ImageURL,
		Unit:          po.Unit,
		Price:         po.Price,
		PromoPrice:    po.PromoPrice,
		PromoStartsAt: po.PromoStartsAt,
		PromoEndsAt:   po.PromoEndsAt,
		TaxRate:       po.TaxRate,
		Stock:         po.Stock,
		Active:        po.Active,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	}
}

// FromDomain 从领域对象转换
func (po *ProductPO) FromDomain(p *domain.Product) {
	po.ProductID = p.ID
	po.Name = p.Name
	po.Description = p.Description
	po.Category = p.Category
	po.ImageURL = p.ImageURL
	po.Unit = p.Unit
	po.Price = p.Price
	po.PromoPrice = p.PromoPrice
	po.PromoStartsAt = p.PromoStartsAt
	po.PromoEndsAt = p.PromoEndsAt
	po.TaxRate = p.TaxRate
	po.Stock = p.Stock
	po.Active = p.Active
}
