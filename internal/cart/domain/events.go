package domain

import "time"

// 事件主题
const (
	TopicCartCreated     = "cart.created"
	TopicCartItemAdded   = "cart.item.added"
	TopicCartItemUpdated = "cart.item.updated"
	TopicCartItemRemoved = "cart.item.removed"
	TopicCartCleared     = "cart.cleared"
	TopicCartFixed       = "cart.fixed"
)

// CartCreatedEvent 购物车创建事件
type CartCreatedEvent struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItemAddedEvent 购物车添加商品事件
type CartItemAddedEvent struct {
	UserID    string    `json:"user_id"`
	ItemID    string    `json:"item_id"`
	ProductID string    `json:"product_id"`
	Added     int       `json:"added"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItemUpdatedEvent 购物车行数量变更事件
type CartItemUpdatedEvent struct {
	UserID      string    `json:"user_id"`
	ItemID      string    `json:"item_id"`
	ProductID   string    `json:"product_id"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	Timestamp   time.Time `json:"timestamp"`
}

// CartItemRemovedEvent 购物车移除商品事件
type CartItemRemovedEvent struct {
	UserID    string    `json:"user_id"`
	ItemID    string    `json:"item_id"`
	ProductID string    `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CartClearedEvent 购物车清空事件
type CartClearedEvent struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CartFixedEvent 自动修复事件
type CartFixedEvent struct {
	UserID    string          `json:"user_id"`
	Changes   []AppliedChange `json:"changes"`
	Timestamp time.Time       `json:"timestamp"`
}
