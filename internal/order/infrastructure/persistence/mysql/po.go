package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/order/domain"
)

// OrderPO 订单持久化对象
type OrderPO struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     string          `gorm:"column:order_id;type:varchar(36);uniqueIndex;not null"`
	UserID      string          `gorm:"column:user_id;type:varchar(64);index;not null"`
	Status      string          `gorm:"column:status;type:varchar(32);not null"`
	Currency    string          `gorm:"column:currency;type:varchar(3);not null"`
	SubtotalHT  decimal.Decimal `gorm:"column:subtotal_ht;type:decimal(20,2);not null"`
	TotalTVA    decimal.Decimal `gorm:"column:total_tva;type:decimal(20,2);not null"`
	TotalTTC    decimal.Decimal `gorm:"column:total_ttc;type:decimal(20,2);not null"`
	ShippingFee decimal.Decimal `gorm:"column:shipping_fee;type:decimal(20,2);not null"`
	GrandTotal  decimal.Decimal `gorm:"column:grand_total;type:decimal(20,2);not null"`
	Lines       []OrderLinePO   `gorm:"foreignKey:OrderID;references:OrderID"`
	CreatedAt   time.Time       `gorm:"column:created_at;index"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (OrderPO) TableName() string { return "orders" }

// OrderLinePO 订单行快照
type OrderLinePO struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   string          `gorm:"column:order_id;type:varchar(36);index;not null"`
	Position  int             `gorm:"column:position;not null"`
	ProductID string          `gorm:"column:product_id;type:varchar(36);not null"`
	Name      string          `gorm:"column:name;type:varchar(255)"`
	Quantity  int             `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(20,2);not null"`
	TaxRate   decimal.Decimal `gorm:"column:tax_rate;type:decimal(5,2);not null"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:decimal(20,2);not null"`
}

func (OrderLinePO) TableName() string { return "order_lines" }

// ToDomain 转换为领域对象
func (po *OrderPO) ToDomain() *domain.Order {
	o := &domain.Order{
		ID:          po.OrderID,
		UserID:      po.UserID,
		Status:      domain.OrderStatus(po.Status),
		Currency:    po.Currency,
		Lines:       make([]domain.OrderLine, 0, len(po.Lines)),
		SubtotalHT:  po.SubtotalHT,
		TotalTVA:    po.TotalTVA,
		TotalTTC:    po.TotalTTC,
		ShippingFee: po.ShippingFee,
		GrandTotal:  po.GrandTotal,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
	for _, l := range po.Lines {
		o.Lines = append(o.Lines, domain.OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			TaxRate:   l.TaxRate,
			Subtotal:  l.Subtotal,
		})
	}
	return o
}

// FromDomain 从领域对象转换
func FromDomain(o *domain.Order) *OrderPO {
	po := &OrderPO{
		OrderID:     o.ID,
		UserID:      o.UserID,
		Status:      string(o.Status),
		Currency:    o.Currency,
		SubtotalHT:  o.SubtotalHT,
		TotalTVA:    o.TotalTVA,
		TotalTTC:    o.TotalTTC,
		ShippingFee: o.ShippingFee,
		GrandTotal:  o.GrandTotal,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for i, l := range o.Lines {
		po.Lines = append(po.Lines, OrderLinePO{
			OrderID:   o.ID,
			Position:  i,
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			TaxRate:   l.TaxRate,
			Subtotal:  l.Subtotal,
		})
	}
	return po
}
