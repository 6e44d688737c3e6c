package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alex-njugi/talex-app/internal/domain"
	"github.com/alex-njugi/talex-app/internal/service"
)

type ProductHandler struct {
	catalog *service.CatalogService
	logger  *zap.Logger
}

func NewProductHandler(catalog *service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListProducts is the storefront catalog view. Filter parameters: category,
// min, max (price in cents), instock=1, search, sort.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	q := domain.CatalogQuery{
		Search:      c.Query("search"),
		InStockOnly: c.Query("instock") == "1",
		Sort:        domain.ParseSortKey(c.Query("sort")),
	}
	if raw := c.Query("category"); raw != "" {
		category, ok := domain.ParseCategory(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
			return
		}
		q.Category = category
	}
	var ok bool
	if q.MinCents, ok = parseCents(c.Query("min")); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min must be a non-negative amount in cents"})
		return
	}
	if q.MaxCents, ok = parseCents(c.Query("max")); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max must be a non-negative amount in cents"})
		return
	}

	products, err := h.catalog.Browse(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.catalog.GetByIDOrSlug(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AdminListProducts is the back-office view; it sees inactive products and
// paginates. Parameters: q, category, status (active|out), page, per_page.
func (h *ProductHandler) AdminListProducts(c *gin.Context) {
	f := domain.ProductFilter{
		Search: c.Query("q"),
		Status: c.Query("status"),
	}
	if raw := c.Query("category"); raw != "" {
		category, ok := domain.ParseCategory(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
			return
		}
		f.Category = category
	}
	page, perPage := parsePage(c)

	products, total, err := h.catalog.AdminList(c.Request.Context(), f, page, perPage)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": products,
		"total": total,
		"page":  page,
	})
}

type createProductRequest struct {
	Title      string         `json:"title" binding:"required"`
	SKU        string         `json:"sku"`
	Brand      string         `json:"brand"`
	Category   string         `json:"category_id" binding:"required"`
	PriceCents int64          `json:"price_cents" binding:"gte=0"`
	Stock      int            `json:"stock" binding:"gte=0"`
	IsActive   bool           `json:"is_active"`
	Images     []domain.Image `json:"images"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	p, err := h.catalog.CreateProduct(c.Request.Context(), service.CreateProductInput{
		Title:      req.Title,
		SKU:        req.SKU,
		Brand:      req.Brand,
		Category:   req.Category,
		PriceCents: req.PriceCents,
		Stock:      req.Stock,
		IsActive:   req.IsActive,
		Images:     req.Images,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

type updateProductRequest struct {
	Title      *string        `json:"title"`
	SKU        *string        `json:"sku"`
	Brand      *string        `json:"brand"`
	Category   *string        `json:"category_id"`
	PriceCents *int64         `json:"price_cents"`
	Stock      *int           `json:"stock"`
	IsActive   *bool          `json:"is_active"`
	Images     []domain.Image `json:"images"`
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	p, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), service.UpdateProductInput{
		Title:      req.Title,
		SKU:        req.SKU,
		Brand:      req.Brand,
		Category:   req.Category,
		PriceCents: req.PriceCents,
		Stock:      req.Stock,
		IsActive:   req.IsActive,
		Images:     req.Images,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseCents parses an optional price parameter. Empty means "no filter";
// anything that is not a non-negative integer is rejected, not coerced.
func parseCents(raw string) (int64, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parsePage(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "10"))
	return page, perPage
}
