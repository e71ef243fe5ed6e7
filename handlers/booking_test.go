package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pescalia/models"
	"pescalia/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeWizard returns canned sessions; the wizard semantics themselves are
// covered in the booking package.
type fakeWizard struct {
	session *models.BookingSession
	err     error
}

func (f *fakeWizard) StartSession(context.Context, models.AuthContext, string) (*models.BookingSession, error) {
	return f.session, f.err
}
func (f *fakeWizard) GetSession(context.Context, models.AuthContext, string) (*models.BookingSession, error) {
	return f.session, f.err
}
func (f *fakeWizard) SelectService(context.Context, models.AuthContext, string, string) (*models.BookingSession, error) {
	return f.session, f.err
}
func (f *fakeWizard) SetSchedule(context.Context, models.AuthContext, string, string, string, int) (*models.BookingSession, error) {
	return f.session, f.err
}
func (f *fakeWizard) SetContact(context.Context, models.AuthContext, string, models.CustomerInfo) (*models.BookingSession, error) {
	return f.session, f.err
}
func (f *fakeWizard) Advance(context.Context, models.AuthContext, string) (*models.BookingSession, error) {
	return f.session, f.err
}
func (f *fakeWizard) Back(context.Context, models.AuthContext, string) (*models.BookingSession, error) {
	return f.session, f.err
}
func (f *fakeWizard) Confirm(context.Context, models.AuthContext, string, string, bool) (*models.Booking, error) {
	return nil, f.err
}
func (f *fakeWizard) Cancel(context.Context, models.AuthContext, string) error {
	return f.err
}

func newBookingRouter(wizard booking.WizardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(wizard, nil, zap.NewNop())

	r := gin.New()
	r.POST("/api/booking/session", h.StartSession)
	r.GET("/api/booking/session/:sessionID", h.GetSession)
	r.POST("/api/booking/confirm", h.Confirm)
	return r
}

func TestStartSessionResponse(t *testing.T) {
	wizard := &fakeWizard{session: &models.BookingSession{
		SessionID:    "sess-1",
		Step:         models.StepSchedule,
		ServiceID:    "svc-1",
		ServicePrice: 18000,
		Date:         "2026-04-01",
		Time:         "08:00",
		People:       3,
		TotalPrice:   54000,
	}}
	r := newBookingRouter(wizard)

	req := httptest.NewRequest(http.MethodPost, "/api/booking/session",
		strings.NewReader(`{"serviceId":"svc-1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SessionID  string  `json:"sessionId"`
		TotalPrice int64   `json:"totalPrice"`
		ApproxUSD  float64 `json:"approxUsd"`
		CanAdvance bool    `json:"canAdvance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.Equal(t, int64(54000), resp.TotalPrice)
	assert.InDelta(t, 54000.0/950, resp.ApproxUSD, 0.001)
	assert.True(t, resp.CanAdvance)
}

func TestStartSessionRejectsMissingBody(t *testing.T) {
	r := newBookingRouter(&fakeWizard{})

	req := httptest.NewRequest(http.MethodPost, "/api/booking/session", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", booking.NewValidationError("people", "must be between 1 and 4"), http.StatusUnprocessableEntity},
		{"missing session", booking.ErrSessionNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newBookingRouter(&fakeWizard{err: tt.err})

			req := httptest.NewRequest(http.MethodGet, "/api/booking/session/sess-1", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
