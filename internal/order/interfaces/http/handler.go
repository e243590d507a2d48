package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	cartdomain "github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/internal/order/application"
	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/middleware"
)

// OrderHandler 订单 HTTP 处理器
type OrderHandler struct {
	service *application.OrderApplicationService
}

// NewOrderHandler 创建订单 HTTP 处理器
func NewOrderHandler(service *application.OrderApplicationService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes 注册路由。下单和查询需要 X-User-Id；状态流转为后台接口
func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api/v1/orders")
	{
		api.PUT("/:id/status", h.UpdateStatus)

		user := api.Group("", middleware.RequireUserID())
		user.POST("", h.PlaceOrder)
		user.GET("", h.ListOrders)
		user.GET("/:id", h.GetOrder)
	}
}

// UpdateStatusRequest 状态流转请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PlaceOrder 购物车下单
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	order, err := h.service.PlaceOrder(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		var invalid *domain.CartInvalidError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "validation": invalid.Result})
			return
		}
		h.fail(c, "Failed to place order", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrder 获取订单详情
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.service.GetOrder(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.fail(c, "Failed to get order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListOrders 分页列出当前用户订单
func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	result, err := h.service.ListOrders(c.Request.Context(), middleware.UserID(c), page, size)
	if err != nil {
		h.fail(c, "Failed to list orders", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateStatus 订单状态流转
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.fail(c, "Failed to update order status", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) fail(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStockConflict), errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, cartdomain.ErrCartConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(c.Request.Context(), msg, "order_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
