package domain

import "github.com/shopspring/decimal"

// LineView 购物车行在某个快照下的计算结果
type LineView struct {
	ItemID    string
	ProductID string
	Quantity  int

	Name     string
	ImageURL string
	Unit     string
	Stock    int
	Active   bool
	// 商品在快照中不存在
	Unavailable bool

	Price          decimal.Decimal
	PromoPrice     decimal.NullDecimal
	EffectivePrice decimal.Decimal
	OnSale         bool
	TaxRate        decimal.Decimal
	Subtotal       decimal.Decimal

	AcknowledgedPrice decimal.NullDecimal
}

// ComputeLineView 计算单行视图。entry 为 nil 时该行标记为不可用，金额为零。
func ComputeLineView(item CartItem, entry *CatalogEntry) LineView {
	view := LineView{
		ItemID:            item.ID,
		ProductID:         item.ProductID,
		Quantity:          item.Quantity,
		AcknowledgedPrice: item.AcknowledgedPrice,
	}
	if entry == nil {
		view.Unavailable = true
		return view
	}

	view.Name = entry.Name
	view.ImageURL = entry.ImageURL
	view.Unit = entry.Unit
	view.Stock = entry.Stock
	view.Active = entry.Active
	view.Price = entry.Price
	view.PromoPrice = entry.PromoPrice
	view.TaxRate = entry.TaxRate

	view.EffectivePrice = entry.Price
	if entry.PromoPrice.Valid && entry.PromoPrice.Decimal.LessThan(entry.Price) {
		view.EffectivePrice = entry.PromoPrice.Decimal
		view.OnSale = true
	}
	view.Subtotal = RoundMoney(view.EffectivePrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	return view
}

// Summary 购物车汇总
type Summary struct {
	// 行数
	ItemCount int
	// 数量合计
	TotalQuantity int
	// 不含税合计
	SubtotalHT decimal.Decimal
	// 税额合计
	TotalTVA decimal.Decimal
	// 含税合计
	TotalTTC decimal.Decimal
}

// ComputeSummary 汇总行视图。每行先按税率拆分税前/税额再累加，保证 TotalTTC == SubtotalHT + TotalTVA。
func ComputeSummary(lines []LineView) Summary {
	s := Summary{
		ItemCount:  len(lines),
		SubtotalHT: decimal.Zero,
		TotalTVA:   decimal.Zero,
		TotalTTC:   decimal.Zero,
	}
	for _, line := range lines {
		s.TotalQuantity += line.Quantity
		if line.Unavailable {
			continue
		}
		ht := ExcludingTax(line.Subtotal, line.TaxRate)
		s.SubtotalHT = s.SubtotalHT.Add(ht)
		s.TotalTVA = s.TotalTVA.Add(line.Subtotal.Sub(ht))
		s.TotalTTC = s.TotalTTC.Add(line.Subtotal)
	}
	return s
}

// ShippingPolicy 运费规则：含税合计达到 FrancoThreshold 免运费
type ShippingPolicy struct {
	FlatFee         decimal.Decimal
	FrancoThreshold decimal.Decimal
}

// Shipping 运费计算结果
type Shipping struct {
	Fee decimal.Decimal
	// 距离免运费还差的金额，已免运费时为零
	AmountToFranco decimal.Decimal
	FreeShipping   bool
}

// ComputeShipping 根据含税合计计算运费；空购物车不收运费
func ComputeShipping(summary Summary, policy ShippingPolicy) Shipping {
	if summary.TotalTTC.IsZero() {
		return Shipping{Fee: decimal.Zero, AmountToFranco: policy.FrancoThreshold}
	}
	if summary.TotalTTC.GreaterThanOrEqual(policy.FrancoThreshold) {
		return Shipping{Fee: decimal.Zero, AmountToFranco: decimal.Zero, FreeShipping: true}
	}
	return Shipping{
		Fee:            RoundMoney(policy.FlatFee),
		AmountToFranco: policy.FrancoThreshold.Sub(summary.TotalTTC),
	}
}
