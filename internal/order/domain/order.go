// Package domain 订单领域模型与状态机
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	cartdomain "github.com/wyfcoding/storefront/internal/cart/domain"
)

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "EN_ATTENTE"
	OrderStatusConfirmed OrderStatus = "CONFIRMEE"
	OrderStatusPreparing OrderStatus = "EN_PREPARATION"
	OrderStatusShipped   OrderStatus = "EXPEDIEE"
	OrderStatusDelivered OrderStatus = "LIVREE"
	OrderStatusCancelled OrderStatus = "ANNULEE"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrStockConflict     = errors.New("stock changed during checkout")
)

// transitions 允许的状态流转；已送达和已取消为终态
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
}

// ParseStatus 解析状态字符串
func ParseStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(s); status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// IsTerminal 是否为终态
func (s OrderStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo 是否允许流转到 to
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// CartInvalidError 购物车未通过结算前校验
type CartInvalidError struct {
	Result cartdomain.ValidationResult
}

func (e *CartInvalidError) Error() string {
	return fmt.Sprintf("cart has %d blocking problem(s)", len(e.Result.Errors))
}

// OrderLine 下单时的商品快照
type OrderLine struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
	Subtotal  decimal.Decimal
}

// Order 订单实体，金额在下单时固定
type Order struct {
	ID          string
	UserID      string
	Status      OrderStatus
	Currency    string
	Lines       []OrderLine
	SubtotalHT  decimal.Decimal
	TotalTVA    decimal.Decimal
	TotalTTC    decimal.Decimal
	ShippingFee decimal.Decimal
	GrandTotal  decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrder 根据已通过校验的购物车视图创建订单
func NewOrder(userID, currency string, view cartdomain.CartView) (*Order, error) {
	if len(view.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	now := time.Now()
	order := &Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		Status:      OrderStatusPending,
		Currency:    currency,
		Lines:       make([]OrderLine, 0, len(view.Lines)),
		SubtotalHT:  view.Summary.SubtotalHT,
		TotalTVA:    view.Summary.TotalTVA,
		TotalTTC:    view.Summary.TotalTTC,
		ShippingFee: view.Shipping.Fee,
		GrandTotal:  view.GrandTotal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, line := range view.Lines {
		if line.Unavailable {
			return nil, fmt.Errorf("product %s is unavailable", line.ProductID)
		}
		order.Lines = append(order.Lines, OrderLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.EffectivePrice,
			TaxRate:   line.TaxRate,
			Subtotal:  line.Subtotal,
		})
	}
	return order, nil
}

// Transition 状态流转，返回原状态
func (o *Order) Transition(to OrderStatus) (OrderStatus, error) {
	from := o.Status
	if !from.CanTransitionTo(to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	return from, nil
}
