package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alex-njugi/talex-app/internal/domain"
	"github.com/alex-njugi/talex-app/internal/repository"
	"github.com/alex-njugi/talex-app/internal/service"
)

// respondError translates service/repository failures into the API's error
// taxonomy: field-level validation -> 400, unknown references -> 404,
// rejected transitions and stock conflicts -> 409, everything else -> 500
// with the request id for correlation.
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"field":   ve.Field,
			"details": ve.Reason,
		})
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	case errors.Is(err, repository.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, repository.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrProductUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "internal error",
			"request_id": c.GetString("request_id"),
		})
	}
}
