package user

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/booking-api/internal/handler"
	"github.com/jwalitptl/booking-api/internal/model"
)

type userService interface {
	UpsertUser(ctx context.Context, email string, req *model.UpsertUserRequest) (*model.User, string, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	PromoteToAdmin(ctx context.Context, email string) error
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type Handler struct {
	service userService
}

func NewHandler(service userService) *Handler {
	return &Handler{service: service}
}

// UpsertUser creates or replaces a profile by email and hands back a
// fresh access token bound to it.
func (h *Handler) UpsertUser(c *gin.Context) {
	email := c.Param("email")

	var req model.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	stored, token, err := h.service.UpsertUser(c.Request.Context(), email, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": stored, "token": token})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CheckAdmin is a public read-only role probe used by clients to adjust
// their UI.
func (h *Handler) CheckAdmin(c *gin.Context) {
	email := c.Param("email")

	isAdmin, err := h.service.IsAdmin(c.Request.Context(), email)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": isAdmin})
}

// PromoteToAdmin grants the admin role to the target email.
func (h *Handler) PromoteToAdmin(c *gin.Context) {
	email := c.Param("email")

	if err := h.service.PromoteToAdmin(c.Request.Context(), email); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"email": email, "role": model.RoleAdmin}))
}

func (h *Handler) RegisterRoutes(public, protected, admin *gin.RouterGroup) {
	public.PUT("/user/:email", h.UpsertUser)
	public.GET("/admin/:email", h.CheckAdmin)
	protected.GET("/user", h.ListUsers)
	admin.PUT("/user/admin/:email", h.PromoteToAdmin)
}
