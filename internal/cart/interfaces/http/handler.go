package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/storefront/internal/cart/application"
	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/middleware"
)

// CartHandler HTTP 处理器
type CartHandler struct {
	service *application.CartApplicationService
}

// NewCartHandler 创建 HTTP 处理器
func NewCartHandler(service *application.CartApplicationService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes 注册路由，所有接口都需要 X-User-Id
func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api/v1/cart", middleware.RequireUserID())
	{
		api.GET("", h.GetCart)
		api.DELETE("", h.ClearCart)
		api.POST("/items", h.AddItem)
		api.PUT("/items/:itemId", h.UpdateItem)
		api.DELETE("/items/:itemId", h.RemoveItem)
		api.GET("/validate", h.Validate)
		api.POST("/fix", h.Fix)
		api.POST("/acknowledge", h.AcknowledgePrices)
	}
}

// AddItemRequest 加入购物车请求
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// UpdateItemRequest 修改数量请求
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.service.GetCart(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, "Failed to get cart", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem 加入商品
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), application.AddItemCommand{
		UserID:    middleware.UserID(c),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.fail(c, "Failed to add item", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// UpdateItem 修改行数量
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.service.UpdateItemQuantity(c.Request.Context(), application.UpdateItemCommand{
		UserID:   middleware.UserID(c),
		ItemID:   c.Param("itemId"),
		Quantity: req.Quantity,
	})
	if err != nil {
		h.fail(c, "Failed to update item", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem 删除行
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.service.RemoveItem(c.Request.Context(), middleware.UserID(c), c.Param("itemId"))
	if err != nil {
		h.fail(c, "Failed to remove item", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ClearCart 清空购物车
func (h *CartHandler) ClearCart(c *gin.Context) {
	cart, err := h.service.ClearCart(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, "Failed to clear cart", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Validate 结算前校验
func (h *CartHandler) Validate(c *gin.Context) {
	result, err := h.service.ValidateCart(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, "Failed to validate cart", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Fix 执行建议修复
func (h *CartHandler) Fix(c *gin.Context) {
	result, err := h.service.ApplyFixes(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, "Failed to fix cart", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AcknowledgePrices 确认当前价格
func (h *CartHandler) AcknowledgePrices(c *gin.Context) {
	cart, err := h.service.AcknowledgePrices(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, "Failed to acknowledge prices", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) fail(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrQuantityOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductUnavailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCartConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(c.Request.Context(), msg, "user_id", middleware.UserID(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
