package booking

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/handler"
	"github.com/jwalitptl/booking-api/internal/middleware"
	"github.com/jwalitptl/booking-api/internal/model"
)

type bookingService interface {
	CreateBooking(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, bool, error)
	ListForPatient(ctx context.Context, patient, callerEmail string) ([]*model.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (*model.Booking, error)
}

type Handler struct {
	service bookingService
}

func NewHandler(service bookingService) *Handler {
	return &Handler{service: service}
}

// CreateBooking records a booking unless the patient already holds one
// for the same treatment and date; duplicates come back with
// success=false and the original record.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	booking, created, err := h.service.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": created, "booking": booking})
}

// ListBookings returns the authenticated patient's bookings. The
// patient query must match the token identity.
func (h *Handler) ListBookings(c *gin.Context) {
	patient := c.Query("patient")
	callerEmail := c.GetString(middleware.ContextUserEmail)

	bookings, err := h.service.ListForPatient(c.Request.Context(), patient, callerEmail)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid booking ID"))
		return
	}

	booking, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// MarkPaid records the confirmed payment and flags the booking paid.
func (h *Handler) MarkPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid booking ID"))
		return
	}

	var req model.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	booking, err := h.service.MarkPaid(c.Request.Context(), id, req.TransactionID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/booking", h.CreateBooking)
	protected.GET("/booking", h.ListBookings)
	protected.GET("/booking/:id", h.GetBooking)
	protected.PATCH("/booking/:id", h.MarkPaid)
}
