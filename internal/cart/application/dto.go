package application

import (
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// AddItemCommand 加入购物车命令
type AddItemCommand struct {
	UserID    string
	ProductID string
	Quantity  int
}

// UpdateItemCommand 修改行数量命令
type UpdateItemCommand struct {
	UserID   string
	ItemID   string
	Quantity int
}

// CartLineDTO 购物车行，金额统一为两位小数字符串
type CartLineDTO struct {
	ItemID         string `json:"item_id"`
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	Name           string `json:"name"`
	ImageURL       string `json:"image_url"`
	Unit           string `json:"unit"`
	Stock          int    `json:"stock"`
	Active         bool   `json:"active"`
	Unavailable    bool   `json:"unavailable"`
	Price          string `json:"price,omitempty"`
	PromoPrice     string `json:"promo_price,omitempty"`
	EffectivePrice string `json:"effective_price,omitempty"`
	OnSale         bool   `json:"on_sale"`
	TaxRate        string `json:"tax_rate,omitempty"`
	Subtotal       string `json:"subtotal"`
}

// CartSummaryDTO 购物车汇总
type CartSummaryDTO struct {
	ItemCount     int    `json:"item_count"`
	TotalQuantity int    `json:"total_quantity"`
	SubtotalHT    string `json:"subtotal_ht"`
	TotalTVA      string `json:"total_tva"`
	TotalTTC      string `json:"total_ttc"`
}

// ShippingDTO 运费
type ShippingDTO struct {
	Fee            string `json:"fee"`
	AmountToFranco string `json:"amount_to_franco"`
	FreeShipping   bool   `json:"free_shipping"`
}

// CartDTO 购物车视图
type CartDTO struct {
	UserID     string           `json:"user_id"`
	Currency   string           `json:"currency"`
	Items      []CartLineDTO    `json:"items"`
	Summary    CartSummaryDTO   `json:"summary"`
	Shipping   ShippingDTO      `json:"shipping"`
	GrandTotal string           `json:"grand_total"`
	Warnings   []domain.Warning `json:"warnings"`
}

// FixResultDTO 自动修复结果
type FixResultDTO struct {
	Cart    *CartDTO               `json:"cart"`
	Changes []domain.AppliedChange `json:"changes"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyPlaces)
}

func toCartDTO(view domain.CartView, currency string) *CartDTO {
	dto := &CartDTO{
		UserID:   view.UserID,
		Currency: currency,
		Items:    make([]CartLineDTO, 0, len(view.Lines)),
		Summary: CartSummaryDTO{
			ItemCount:     view.Summary.ItemCount,
			TotalQuantity: view.Summary.TotalQuantity,
			SubtotalHT:    money(view.Summary.SubtotalHT),
			TotalTVA:      money(view.Summary.TotalTVA),
			TotalTTC:      money(view.Summary.TotalTTC),
		},
		Shipping: ShippingDTO{
			Fee:            money(view.Shipping.Fee),
			AmountToFranco: money(view.Shipping.AmountToFranco),
			FreeShipping:   view.Shipping.FreeShipping,
		},
		GrandTotal: money(view.GrandTotal),
		Warnings:   view.Warnings,
	}
	if dto.Warnings == nil {
		dto.Warnings = []domain.Warning{}
	}

	for _, line := range view.Lines {
		item := CartLineDTO{
			ItemID:      line.ItemID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			Name:        line.Name,
			ImageURL:    line.ImageURL,
			Unit:        line.Unit,
			Stock:       line.Stock,
			Active:      line.Active,
			Unavailable: line.Unavailable,
			OnSale:      line.OnSale,
			Subtotal:    money(line.Subtotal),
		}
		if !line.Unavailable {
			item.Price = money(line.Price)
			item.EffectivePrice = money(line.EffectivePrice)
			item.TaxRate = line.TaxRate.String()
			if line.PromoPrice.Valid {
				item.PromoPrice = money(line.PromoPrice.Decimal)
			}
		}
		dto.Items = append(dto.Items, item)
	}
	return dto
}
