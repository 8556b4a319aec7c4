package payment

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/booking-api/internal/handler"
	"github.com/jwalitptl/booking-api/internal/model"
)

type intentCreator interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
}

type Handler struct {
	service intentCreator
}

func NewHandler(service intentCreator) *Handler {
	return &Handler{service: service}
}

// CreatePaymentIntent asks the processor for a charge intent covering
// the given price and returns the client secret used to confirm it.
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req model.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	clientSecret, err := h.service.CreateIntent(c.Request.Context(), req.Price)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/create-payment-intent", h.CreatePaymentIntent)
}
