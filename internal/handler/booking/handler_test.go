package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-api/internal/middleware"
	"github.com/jwalitptl/booking-api/internal/model"
	bookingsvc "github.com/jwalitptl/booking-api/internal/service/booking"
	"github.com/jwalitptl/booking-api/internal/service/booking/bookingtest"
)

// The handler is exercised against the real service backed by an
// in-memory repository, with a stand-in auth middleware injecting the
// caller identity.
func newTestRouter(callerEmail string) (*gin.Engine, *bookingtest.Repo) {
	gin.SetMode(gin.TestMode)

	repo := bookingtest.NewRepo()
	h := NewHandler(bookingsvc.NewService(repo, nil))

	r := gin.New()
	public := r.Group("")
	protected := r.Group("")
	protected.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserEmail, callerEmail)
		c.Next()
	})
	h.RegisterRoutes(public, protected)
	return r, repo
}

func postBooking(t *testing.T, r *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/booking", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bookingBody() map[string]interface{} {
	return map[string]interface{}{
		"treatment": "Teeth Cleaning",
		"date":      "May 11, 2022",
		"patient":   "a@x.com",
		"slot":      "10:00",
	}
}

func TestCreateBookingEndToEnd(t *testing.T) {
	r, _ := newTestRouter("a@x.com")

	w := postBooking(t, r, bookingBody())
	require.Equal(t, http.StatusOK, w.Code)

	var first struct {
		Success bool          `json:"success"`
		Booking model.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.True(t, first.Success)
	assert.Equal(t, "Teeth Cleaning", first.Booking.Treatment)

	// Identical duplicate comes back with the original record
	w = postBooking(t, r, bookingBody())
	require.Equal(t, http.StatusOK, w.Code)

	var second struct {
		Success bool          `json:"success"`
		Booking model.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.False(t, second.Success)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)
}

func TestCreateBookingValidatesBody(t *testing.T) {
	r, _ := newTestRouter("a@x.com")

	w := postBooking(t, r, map[string]interface{}{"treatment": "Teeth Cleaning"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBookingsPatientIsolation(t *testing.T) {
	r, _ := newTestRouter("f@x.com")

	req := httptest.NewRequest(http.MethodGet, "/booking?patient=e@x.com", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListBookingsForOwnPatient(t *testing.T) {
	r, _ := newTestRouter("a@x.com")

	w := postBooking(t, r, bookingBody())
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/booking?patient=a@x.com", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var bookings []model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, "a@x.com", bookings[0].Patient)
}

func TestGetBookingNotFound(t *testing.T) {
	r, _ := newTestRouter("a@x.com")

	req := httptest.NewRequest(http.MethodGet, "/booking/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkPaid(t *testing.T) {
	r, repo := newTestRouter("a@x.com")

	w := postBooking(t, r, bookingBody())
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Booking model.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	payload := []byte(`{"transactionId":"tx_123"}`)
	req := httptest.NewRequest(http.MethodPatch, "/booking/"+created.Booking.ID.String(), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var paid model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &paid))
	assert.True(t, paid.Paid)

	stored, err := repo.Get(context.Background(), created.Booking.ID)
	require.NoError(t, err)
	assert.True(t, stored.Paid)
}
