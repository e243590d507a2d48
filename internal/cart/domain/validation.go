package domain

import "fmt"

// ErrorCode 阻断结算的错误类型
type ErrorCode string

const (
	// ErrorProductUnavailable 商品已不存在
	ErrorProductUnavailable ErrorCode = "PRODUCT_UNAVAILABLE"
	// ErrorProductInactive 商品已下架
	ErrorProductInactive ErrorCode = "PRODUCT_INACTIVE"
	// ErrorOutOfStock 库存为零
	ErrorOutOfStock ErrorCode = "OUT_OF_STOCK"
	// ErrorInsufficientStock 数量超过库存
	ErrorInsufficientStock ErrorCode = "INSUFFICIENT_STOCK"
)

// FixKind 自动修复方式
type FixKind string

const (
	// FixRemoveLine 删除该行
	FixRemoveLine FixKind = "REMOVE_LINE"
	// FixClampQuantity 把数量降到可用库存
	FixClampQuantity FixKind = "CLAMP_QUANTITY"
)

// Fix 建议的修复动作
type Fix struct {
	Kind   FixKind `json:"kind"`
	ItemID string  `json:"item_id"`
	// CLAMP_QUANTITY 的目标数量
	Quantity int `json:"quantity,omitempty"`
}

// ValidationError 单行的阻断错误
type ValidationError struct {
	ItemID    string    `json:"item_id"`
	ProductID string    `json:"product_id"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
	Fix       Fix       `json:"fix"`
}

// ValidationResult 结算前校验结果
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

// Fixes 返回所有建议修复
func (r ValidationResult) Fixes() []Fix {
	fixes := make([]Fix, 0, len(r.Errors))
	for _, e := range r.Errors {
		fixes = append(fixes, e.Fix)
	}
	return fixes
}

// Codes 返回错误码列表
func (r ValidationResult) Codes() []string {
	codes := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		codes = append(codes, string(e.Code))
	}
	return codes
}

// ValidateForCheckout 按行顺序校验购物车，每行最多一个错误。结果只依赖输入。
func ValidateForCheckout(cart *Cart, snapshot CatalogSnapshot) ValidationResult {
	result := ValidationResult{Errors: []ValidationError{}}
	for _, item := range cart.Items {
		if verr, bad := validateItem(item, snapshot.Lookup(item.ProductID)); bad {
			result.Errors = append(result.Errors, verr)
		}
	}
	result.Valid = len(result.Errors) == 0
	return result
}

func validateItem(item CartItem, entry *CatalogEntry) (ValidationError, bool) {
	verr := ValidationError{
		ItemID:    item.ID,
		ProductID: item.ProductID,
		Requested: item.Quantity,
	}
	remove := Fix{Kind: FixRemoveLine, ItemID: item.ID}

	switch {
	case entry == nil:
		verr.Code = ErrorProductUnavailable
		verr.Message = "This product is no longer available"
		verr.Fix = remove
	case !entry.Active:
		verr.Code = ErrorProductInactive
		verr.Message = fmt.Sprintf("%s is no longer sold", entry.Name)
		verr.Fix = remove
	case entry.Stock <= 0:
		verr.Code = ErrorOutOfStock
		verr.Message = fmt.Sprintf("%s is out of stock", entry.Name)
		verr.Fix = remove
	case item.Quantity > entry.Stock:
		verr.Code = ErrorInsufficientStock
		verr.Message = fmt.Sprintf("Only %d of %s available, %d requested", entry.Stock, entry.Name, item.Quantity)
		verr.Fix = Fix{Kind: FixClampQuantity, ItemID: item.ID, Quantity: entry.Stock}
	default:
		return ValidationError{}, false
	}
	if entry != nil && entry.Stock > 0 {
		verr.Available = entry.Stock
	}
	return verr, true
}

// AppliedChange 实际执行的修复
type AppliedChange struct {
	ItemID       string  `json:"item_id"`
	ProductID    string  `json:"product_id"`
	Kind         FixKind `json:"kind"`
	FromQuantity int     `json:"from_quantity"`
	ToQuantity   int     `json:"to_quantity"`
}

// ApplyFixes 按校验结果修复购物车。行已不存在或已满足目标的修复会被跳过，因此重复调用没有额外效果。
func ApplyFixes(cart *Cart, result ValidationResult) []AppliedChange {
	changes := []AppliedChange{}
	for _, verr := range result.Errors {
		fix := verr.Fix
		item, ok := cart.Item(fix.ItemID)
		if !ok {
			continue
		}

		switch {
		case fix.Kind == FixRemoveLine || (fix.Kind == FixClampQuantity && fix.Quantity < MinQuantity):
			if _, err := cart.RemoveItem(item.ID); err != nil {
				continue
			}
			changes = append(changes, AppliedChange{
				ItemID: item.ID, ProductID: item.ProductID, Kind: FixRemoveLine,
				FromQuantity: item.Quantity, ToQuantity: 0,
			})
		case fix.Kind == FixClampQuantity:
			// 只向下调整；数量已不超过目标时跳过
			target := min(fix.Quantity, MaxQuantity)
			if item.Quantity <= target {
				continue
			}
			if _, err := cart.UpdateQuantity(item.ID, target); err != nil {
				continue
			}
			changes = append(changes, AppliedChange{
				ItemID: item.ID, ProductID: item.ProductID, Kind: FixClampQuantity,
				FromQuantity: item.Quantity, ToQuantity: target,
			})
		}
	}
	return changes
}
