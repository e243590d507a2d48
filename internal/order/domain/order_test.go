package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cartdomain "github.com/wyfcoding/storefront/internal/cart/domain"
)

func TestStatusMachine(t *testing.T) {
	path := []OrderStatus{OrderStatusConfirmed, OrderStatusPreparing, OrderStatusShipped, OrderStatusDelivered}
	o := &Order{Status: OrderStatusPending}
	for _, next := range path {
		_, err := o.Transition(next)
		require.NoError(t, err, "to %s", next)
	}
	assert.True(t, o.Status.IsTerminal())

	_, err := o.Transition(OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestStatusMachine_Cancel(t *testing.T) {
	for _, from := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusShipped} {
		o := &Order{Status: from}
		prev, err := o.Transition(OrderStatusCancelled)
		require.NoError(t, err, "from %s", from)
		assert.Equal(t, from, prev)
		assert.True(t, o.Status.IsTerminal())
	}

	o := &Order{Status: OrderStatusPending}
	_, err := o.Transition(OrderStatusShipped)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, OrderStatusPending, o.Status)

	_, err = o.Transition(OrderStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("EXPEDIEE")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, s)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewOrder(t *testing.T) {
	_, err := NewOrder("u", "EUR", cartdomain.CartView{})
	assert.ErrorIs(t, err, ErrEmptyCart)

	cart := cartdomain.NewCart("u")
	_, err = cart.AddItem("p", 2, decimal.Zero)
	require.NoError(t, err)
	snapshot := cartdomain.CatalogSnapshot{"p": {
		ProductID: "p", Name: "Miel", Price: decimal.RequireFromString("7.50"),
		TaxRate: decimal.RequireFromString("5.5"), Stock: 10, Active: true,
	}}
	policy := cartdomain.Policy{Shipping: cartdomain.ShippingPolicy{FlatFee: decimal.RequireFromString("4.90"), FrancoThreshold: decimal.RequireFromString("49")}}

	order, err := NewOrder("u", "EUR", cartdomain.ComputeView(cart, snapshot, policy))
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPending, order.Status)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "7.50", order.Lines[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "15.00", order.TotalTTC.StringFixed(2))
	assert.Equal(t, "19.90", order.GrandTotal.StringFixed(2))
	assert.True(t, order.TotalTTC.Equal(order.SubtotalHT.Add(order.TotalTVA)))
}
