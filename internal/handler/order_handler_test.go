package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alex-njugi/talex-app/internal/domain"
	"github.com/alex-njugi/talex-app/internal/events"
	"github.com/alex-njugi/talex-app/internal/repository"
	"github.com/alex-njugi/talex-app/internal/service"
)

func newTestRouter(t *testing.T) (*gin.Engine, *repository.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	logger := zap.NewNop()
	catalogService := service.NewCatalogService(store, logger)
	cartService := service.NewCartService(store.Carts(), store, logger)
	orderService := service.NewOrderService(store.Orders(), store, store.Carts(), events.NoopProducer{}, logger)

	productHandler := NewProductHandler(catalogService, logger)
	cartHandler := NewCartHandler(cartService, logger)
	orderHandler := NewOrderHandler(orderService, store, logger)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/products", productHandler.ListProducts)
	v1.GET("/admin/products", productHandler.AdminListProducts)
	v1.POST("/carts/:id/items", cartHandler.AddItem)
	v1.GET("/carts/:id", cartHandler.GetCart)
	v1.POST("/orders", orderHandler.Checkout)
	v1.GET("/orders/:id", orderHandler.TrackOrder)
	v1.PATCH("/admin/orders/:id/status", orderHandler.SetStatus)
	v1.PATCH("/admin/orders/:id/payment", orderHandler.SetPayment)
	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedAndFillCart(t *testing.T, router *gin.Engine, store *repository.MemoryStore) {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), domain.Product{
		ID: "p1", Title: "Wiper Blades", PriceCents: 45000, Stock: 10, IsActive: true,
	}))
	w := doJSON(t, router, http.MethodPost, "/api/v1/carts/c1/items", gin.H{"product_id": "p1", "qty": 2})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCheckoutHandler(t *testing.T) {
	router, store := newTestRouter(t)
	seedAndFillCart(t, router, store)

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders", gin.H{
		"cart_id":           "c1",
		"name":              "Jane Wanjiku",
		"phone":             "0722690154",
		"address":           "Nairobi",
		"use_phone_for_stk": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		OrderID    string `json:"order_id"`
		Status     string `json:"status"`
		TotalCents int64  `json:"total_cents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.OrderID)
	require.Equal(t, "Pending", resp.Status)
	require.Equal(t, int64(90000), resp.TotalCents)

	// reference is trackable
	w = doJSON(t, router, http.MethodGet, "/api/v1/orders/"+resp.OrderID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// the cart is now empty
	w = doJSON(t, router, http.MethodGet, "/api/v1/carts/c1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cart struct {
		Subtotal int64 `json:"subtotal_cents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.Zero(t, cart.Subtotal)
}

func TestCheckoutHandlerValidationErrors(t *testing.T) {
	router, store := newTestRouter(t)
	seedAndFillCart(t, router, store)

	t.Run("missing fields -> 400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/orders", gin.H{"cart_id": "c1"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad phone -> 400 with field", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/orders", gin.H{
			"cart_id": "c1", "name": "Jane", "phone": "12345", "address": "Nairobi",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp struct {
			Field string `json:"field"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, "phone", resp.Field)
	})

	t.Run("empty cart -> 400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/orders", gin.H{
			"cart_id": "nope", "name": "Jane", "phone": "0722690154", "address": "Nairobi",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTrackUnknownOrder(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/v1/orders/unknown-ref", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusEndpointRejectsInvalidTransition(t *testing.T) {
	router, store := newTestRouter(t)
	seedAndFillCart(t, router, store)
	w := doJSON(t, router, http.MethodPost, "/api/v1/orders", gin.H{
		"cart_id": "c1", "name": "Jane", "phone": "0722690154", "address": "Nairobi",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		OrderID string `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, http.MethodPatch, "/api/v1/admin/orders/"+created.OrderID+"/status", gin.H{"status": "Completed"})
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/api/v1/admin/orders/"+created.OrderID+"/status", gin.H{"status": "Completed", "force": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/api/v1/admin/orders/"+created.OrderID+"/status", gin.H{"status": "NoSuch"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	seedAndFillCart(t, router, store)
	w := doJSON(t, router, http.MethodPost, "/api/v1/orders", gin.H{
		"cart_id": "c1", "name": "Jane", "phone": "0722690154", "address": "Nairobi",
	})
	var created struct {
		OrderID string `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, http.MethodPatch, "/api/v1/admin/orders/"+created.OrderID+"/payment", gin.H{
		"status": "Confirmed", "receipt": "QHX3ABC123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var order domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	require.Equal(t, domain.PaymentStatusConfirmed, order.PaymentState())
	require.Equal(t, "QHX3ABC123", order.Payment.Receipt)
	require.Equal(t, domain.OrderStatusPending, order.Status)

	// binding rejects anything but Confirmed/Failed
	w = doJSON(t, router, http.MethodPatch, "/api/v1/admin/orders/"+created.OrderID+"/payment", gin.H{"status": "Pending"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
