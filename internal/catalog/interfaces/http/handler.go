package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/catalog/application"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/logger"
)

// CatalogHandler HTTP 处理器
type CatalogHandler struct {
	service *application.CatalogApplicationService
}

// NewCatalogHandler 创建 HTTP 处理器
func NewCatalogHandler(service *application.CatalogApplicationService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *CatalogHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api/v1/products")
	{
		api.POST("", h.CreateProduct)
		api.GET("", h.ListProducts)
		api.GET("/:id", h.GetProduct)
		api.PUT("/:id", h.UpdateProduct)
		api.PUT("/:id/stock", h.AdjustStock)
		api.PUT("/:id/active", h.SetActive)
	}
}

// ProductRequest 商品字段，金额与税率为十进制字符串
type ProductRequest struct {
	Name          string     `json:"name" binding:"required"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	ImageURL      string     `json:"image_url"`
	Unit          string     `json:"unit"`
	Price         string     `json:"price" binding:"required"`
	PromoPrice    *string    `json:"promo_price"`
	PromoStartsAt *time.Time `json:"promo_starts_at"`
	PromoEndsAt   *time.Time `json:"promo_ends_at"`
	TaxRate       string     `json:"tax_rate" binding:"required"`
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	ProductRequest
	Stock  int  `json:"stock"`
	Active bool `json:"active"`
}

// StockRequest 库存请求
type StockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

// ActiveRequest 上下架请求
type ActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (r ProductRequest) fields() (application.ProductFields, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return application.ProductFields{}, errors.New("invalid price")
	}
	taxRate, err := decimal.NewFromString(r.TaxRate)
	if err != nil {
		return application.ProductFields{}, errors.New("invalid tax_rate")
	}
	fields := application.ProductFields{
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		ImageURL:      r.ImageURL,
		Unit:          r.Unit,
		Price:         price,
		PromoStartsAt: r.PromoStartsAt,
		PromoEndsAt:   r.PromoEndsAt,
		TaxRate:       taxRate,
	}
	if r.PromoPrice != nil && *r.PromoPrice != "" {
		promo, err := decimal.NewFromString(*r.PromoPrice)
		if err != nil {
			return application.ProductFields{}, errors.New("invalid promo_price")
		}
		fields.PromoPrice = decimal.NewNullDecimal(promo)
	}
	return fields, nil
}

// CreateProduct 创建商品
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields, err := req.fields()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), application.CreateProductCommand{
		ProductFields: fields,
		Stock:         req.Stock,
		Active:        req.Active,
	})
	if err != nil {
		h.fail(c, "Failed to create product", err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct 更新商品
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields, err := req.fields()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), application.UpdateProductCommand{
		ID:            c.Param("id"),
		ProductFields: fields,
	})
	if err != nil {
		h.fail(c, "Failed to update product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// AdjustStock 设置库存
func (h *CatalogHandler) AdjustStock(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := h.service.AdjustStock(c.Request.Context(), c.Param("id"), *req.Stock)
	if err != nil {
		h.fail(c, "Failed to adjust stock", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// SetActive 上下架
func (h *CatalogHandler) SetActive(c *gin.Context) {
	var req ActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := h.service.SetActive(c.Request.Context(), c.Param("id"), *req.Active)
	if err != nil {
		h.fail(c, "Failed to change product status", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetProduct 获取商品
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "Failed to get product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListProducts 分页列出商品
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	result, err := h.service.ListProducts(c.Request.Context(), c.Query("category"), page, size)
	if err != nil {
		h.fail(c, "Failed to list products", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CatalogHandler) fail(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(c.Request.Context(), msg, "product_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
