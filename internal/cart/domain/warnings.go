package domain

import "fmt"

// WarningCode 提示类型
type WarningCode string

const (
	// WarningPriceChanged 单价与用户上次看到的不同
	WarningPriceChanged WarningCode = "PRICE_CHANGED"
	// WarningLowStock 库存即将售罄
	WarningLowStock WarningCode = "LOW_STOCK"
)

// Warning 非阻断提示，每次读取时重新计算，不持久化
type Warning struct {
	ItemID    string      `json:"item_id"`
	ProductID string      `json:"product_id"`
	Code      WarningCode `json:"code"`
	Message   string      `json:"message"`
}

// DeriveWarnings 仅对商品存在、已上架且库存充足的行给出提示。
// lowStockThreshold 为 0 时不提示库存。
func DeriveWarnings(lines []LineView, lowStockThreshold int) []Warning {
	var warnings []Warning
	for _, line := range lines {
		if line.Unavailable || !line.Active || line.Stock <= 0 || line.Quantity > line.Stock {
			continue
		}

		if ack := line.AcknowledgedPrice; ack.Valid && !ack.Decimal.Equal(line.EffectivePrice) {
			direction := "increased"
			if line.EffectivePrice.LessThan(ack.Decimal) {
				direction = "decreased"
			}
			warnings = append(warnings, Warning{
				ItemID:    line.ItemID,
				ProductID: line.ProductID,
				Code:      WarningPriceChanged,
				Message: fmt.Sprintf("The price of %s has %s from %s to %s",
					line.Name, direction, ack.Decimal.StringFixed(MoneyPlaces), line.EffectivePrice.StringFixed(MoneyPlaces)),
			})
		}

		if remaining := line.Stock - line.Quantity; remaining < lowStockThreshold {
			warnings = append(warnings, Warning{
				ItemID:    line.ItemID,
				ProductID: line.ProductID,
				Code:      WarningLowStock,
				Message:   fmt.Sprintf("Only %d left in stock for %s", line.Stock, line.Name),
			})
		}
	}
	return warnings
}
