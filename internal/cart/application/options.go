package application

import "github.com/wyfcoding/storefront/internal/cart/domain"

// Options 购物车服务的业务参数
type Options struct {
	LowStockThreshold int
	Shipping          domain.ShippingPolicy
	Currency          string
}

func (o Options) policy() domain.Policy {
	return domain.Policy{LowStockThreshold: o.LowStockThreshold, Shipping: o.Shipping}
}
