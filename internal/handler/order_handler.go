package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alex-njugi/talex-app/internal/domain"
	"github.com/alex-njugi/talex-app/internal/repository"
	"github.com/alex-njugi/talex-app/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
	seeder repository.Seeder
	logger *zap.Logger
}

func NewOrderHandler(orders *service.OrderService, seeder repository.Seeder, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		seeder: seeder,
		logger: logger,
	}
}

type checkoutRequest struct {
	CartID         string `json:"cart_id" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Address        string `json:"address" binding:"required"`
	UsePhoneForSTK bool   `json:"use_phone_for_stk"`
}

type checkoutResponse struct {
	OrderID    string             `json:"order_id"`
	Status     domain.OrderStatus `json:"status"`
	TotalCents int64              `json:"total_cents"`
}

// Checkout places an order from the cart. The order reference in the
// response is the key customers use on the tracking page.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	requestID := c.GetString("request_id")
	order, err := h.orders.Checkout(c.Request.Context(), service.CheckoutInput{
		CartID:         req.CartID,
		Name:           req.Name,
		Phone:          req.Phone,
		Address:        req.Address,
		UsePhoneForSTK: req.UsePhoneForSTK,
	}, requestID)
	if err != nil {
		h.logger.Error("Failed to create order",
			zap.String("request_id", requestID),
			zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, checkoutResponse{
		OrderID:    order.ID,
		Status:     order.Status,
		TotalCents: order.Total(),
	})
}

// TrackOrder looks up an order by its exact reference.
func (h *OrderHandler) TrackOrder(c *gin.Context) {
	order, err := h.orders.Track(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// AdminListOrders paginates the back-office order list. Parameters: q
// (matches reference, name or phone), status, page, per_page.
func (h *OrderHandler) AdminListOrders(c *gin.Context) {
	f := domain.OrderFilter{Search: c.Query("q")}
	if raw := c.Query("status"); raw != "" {
		status, ok := domain.ParseOrderStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		f.Status = status
	}
	page, perPage := parsePage(c)

	orders, total, err := h.orders.AdminList(c.Request.Context(), f, page, perPage)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": orders,
		"total": total,
		"page":  page,
	})
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Force  bool   `json:"force"`
}

func (h *OrderHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	status, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	order, err := h.orders.SetFulfillmentStatus(c.Request.Context(), c.Param("id"), status, req.Force)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type setPaymentRequest struct {
	Status  string `json:"status" binding:"required,oneof=Confirmed Failed"`
	Receipt string `json:"receipt"`
}

func (h *OrderHandler) SetPayment(c *gin.Context) {
	var req setPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	order, err := h.orders.SetPaymentStatus(c.Request.Context(), c.Param("id"), domain.PaymentStatus(req.Status), req.Receipt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Seed bootstraps demo data; it is idempotent and a no-op against the real
// backend.
func (h *OrderHandler) Seed(c *gin.Context) {
	if err := h.seeder.SeedIfEmpty(c.Request.Context()); err != nil {
		h.logger.Error("Failed to seed demo data", zap.Error(err))
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
