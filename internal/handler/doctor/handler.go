package doctor

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/booking-api/internal/handler"
	"github.com/jwalitptl/booking-api/internal/model"
)

type doctorService interface {
	CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error)
	ListDoctors(ctx context.Context) ([]*model.Doctor, error)
	DeleteDoctor(ctx context.Context, email string) error
}

type Handler struct {
	service doctorService
}

func NewHandler(service doctorService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	doctor, err := h.service.CreateDoctor(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doctor))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	email := c.Param("email")

	if err := h.service.DeleteDoctor(c.Request.Context(), email); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": email}))
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/doctor", h.ListDoctors)
	admin.POST("/doctor", h.CreateDoctor)
	admin.DELETE("/doctor/:email", h.DeleteDoctor)
}
