package application

import (
	"time"

	"github.com/wyfcoding/storefront/internal/order/domain"
)

// OrderLineDTO 订单行
type OrderLineDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	TaxRate   string `json:"tax_rate"`
	Subtotal  string `json:"subtotal"`
}

// OrderDTO 订单信息传输对象
type OrderDTO struct {
	OrderID     string         `json:"order_id"`
	UserID      string         `json:"user_id"`
	Status      string         `json:"status"`
	Currency    string         `json:"currency"`
	Lines       []OrderLineDTO `json:"lines"`
	SubtotalHT  string         `json:"subtotal_ht"`
	TotalTVA    string         `json:"total_tva"`
	TotalTTC    string         `json:"total_ttc"`
	ShippingFee string         `json:"shipping_fee"`
	GrandTotal  string         `json:"grand_total"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// OrderPageDTO 订单分页结果
type OrderPageDTO struct {
	Items []*OrderDTO `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
}

func toOrderDTO(o *domain.Order) *OrderDTO {
	dto := &OrderDTO{
		OrderID:     o.ID,
		UserID:      o.UserID,
		Status:      string(o.Status),
		Currency:    o.Currency,
		Lines:       make([]OrderLineDTO, 0, len(o.Lines)),
		SubtotalHT:  o.SubtotalHT.StringFixed(2),
		TotalTVA:    o.TotalTVA.StringFixed(2),
		TotalTTC:    o.TotalTTC.StringFixed(2),
		ShippingFee: o.ShippingFee.StringFixed(2),
		GrandTotal:  o.GrandTotal.StringFixed(2),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for _, l := range o.Lines {
		dto.Lines = append(dto.Lines, OrderLineDTO{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(2),
			TaxRate:   l.TaxRate.String(),
			Subtotal:  l.Subtotal.StringFixed(2),
		})
	}
	return dto
}
