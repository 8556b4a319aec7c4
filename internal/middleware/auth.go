package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/booking-api/internal/handler"
	"github.com/jwalitptl/booking-api/pkg/auth"
)

// ContextUserEmail is the gin context key carrying the authenticated
// caller's email.
const ContextUserEmail = "userEmail"

// AdminChecker resolves whether an email holds the admin role.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type AuthMiddleware struct {
	tokens *auth.TokenService
	admins AdminChecker
}

func NewAuthMiddleware(tokens *auth.TokenService, admins AdminChecker) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		admins: admins,
	}
}

// Authenticate requires a bearer token and sets the caller email in the
// request context. A missing header is unauthorized; a present but
// invalid or expired token is forbidden.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.tokens.Validate(parts[1])
		if err != nil {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}

// RequireAdmin runs after Authenticate and resolves the caller's stored
// role once per request. Non-admins are forbidden.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(ContextUserEmail)
		if email == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing identity"))
			c.Abort()
			return
		}

		isAdmin, err := m.admins.IsAdmin(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to check role"))
			c.Abort()
			return
		}
		if !isAdmin {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("forbidden"))
			c.Abort()
			return
		}

		c.Next()
	}
}
