package domain

import "github.com/shopspring/decimal"

// MoneyPlaces 金额精度（分）
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney 四舍五入到分（0.5 远离零），所有金额计算统一使用
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ExcludingTax 由含税金额倒推不含税金额，ratePercent 为百分比税率
func ExcludingTax(inclusive, ratePercent decimal.Decimal) decimal.Decimal {
	divisor := decimal.NewFromInt(1).Add(ratePercent.Div(hundred))
	return RoundMoney(inclusive.Div(divisor))
}
