package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-api/pkg/auth"
)

type stubAdminChecker struct {
	admins map[string]bool
	err    error
}

func (s *stubAdminChecker) IsAdmin(ctx context.Context, email string) (bool, error) {
	return s.admins[email], s.err
}

func newTestRouter(tokens *auth.TokenService, admins AdminChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(tokens, admins)

	r := gin.New()
	r.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString(ContextUserEmail)})
	})
	r.GET("/admin-only", m.Authenticate(), m.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingHeader(t *testing.T) {
	r := newTestRouter(auth.NewTokenService("secret", time.Hour), &stubAdminChecker{})

	w := doRequest(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	r := newTestRouter(auth.NewTokenService("secret", time.Hour), &stubAdminChecker{})

	w := doRequest(r, "/protected", "garbage")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	expired := auth.NewTokenService("secret", -time.Minute)
	token, err := expired.Generate("a@x.com")
	require.NoError(t, err)

	r := newTestRouter(auth.NewTokenService("secret", time.Hour), &stubAdminChecker{})

	w := doRequest(r, "/protected", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	r := newTestRouter(auth.NewTokenService("secret", time.Hour), &stubAdminChecker{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	token, err := tokens.Generate("a@x.com")
	require.NoError(t, err)

	r := newTestRouter(tokens, &stubAdminChecker{})

	w := doRequest(r, "/protected", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@x.com")
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	token, err := tokens.Generate("patient@x.com")
	require.NoError(t, err)

	r := newTestRouter(tokens, &stubAdminChecker{admins: map[string]bool{"admin@x.com": true}})

	w := doRequest(r, "/admin-only", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	token, err := tokens.Generate("admin@x.com")
	require.NoError(t, err)

	r := newTestRouter(tokens, &stubAdminChecker{admins: map[string]bool{"admin@x.com": true}})

	w := doRequest(r, "/admin-only", token)
	assert.Equal(t, http.StatusOK, w.Code)
}
