package domain

import "github.com/shopspring/decimal"

// Policy 对账时使用的业务规则
type Policy struct {
	LowStockThreshold int
	Shipping          ShippingPolicy
}

// CartView 购物车在某个快照下的完整视图
type CartView struct {
	UserID     string
	Lines      []LineView
	Summary    Summary
	Shipping   Shipping
	GrandTotal decimal.Decimal
	Warnings   []Warning
}

// ComputeView 对购物车和快照做一次完整对账：行计价、汇总、运费、提示
func ComputeView(cart *Cart, snapshot CatalogSnapshot, policy Policy) CartView {
	lines := make([]LineView, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, ComputeLineView(item, snapshot.Lookup(item.ProductID)))
	}

	summary := ComputeSummary(lines)
	shipping := ComputeShipping(summary, policy.Shipping)
	return CartView{
		UserID:     cart.UserID,
		Lines:      lines,
		Summary:    summary,
		Shipping:   shipping,
		GrandTotal: summary.TotalTTC.Add(shipping.Fee),
		Warnings:   DeriveWarnings(lines, policy.LowStockThreshold),
	}
}
