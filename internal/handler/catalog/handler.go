package catalog

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/booking-api/internal/handler"
	"github.com/jwalitptl/booking-api/internal/model"
)

type catalogService interface {
	ListServices(ctx context.Context) ([]*model.ServiceSummary, error)
	GetAvailability(ctx context.Context, date string) ([]*model.Service, error)
}

type Handler struct {
	service catalogService
}

func NewHandler(service catalogService) *Handler {
	return &Handler{service: service}
}

// ListServices returns the treatment catalog without slots.
func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetAvailability returns each service with its slots narrowed to the
// ones still open on the requested date.
func (h *Handler) GetAvailability(c *gin.Context) {
	date := c.Query("date")

	services, err := h.service.GetAvailability(c.Request.Context(), date)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/service", h.ListServices)
	public.GET("/available", h.GetAvailability)
}
