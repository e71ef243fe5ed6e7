package handlers

import (
	"net/http"

	bookingRepo "pescalia/database/repository/booking"
	"pescalia/middleware"
	"pescalia/models"
	"pescalia/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// clpPerUSD is a fixed display divisor for the approximate USD figure shown
// alongside the CLP total. Display only: it never feeds back into pricing.
const clpPerUSD = 950

// BookingHandler exposes the booking wizard over HTTP.
type BookingHandler struct {
	Wizard   booking.WizardService
	Bookings bookingRepo.BookingRepository
	Logger   *zap.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(wizard booking.WizardService, bookings bookingRepo.BookingRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Wizard: wizard, Bookings: bookings, Logger: logger}
}

type sessionResponse struct {
	*models.BookingSession
	ApproxUSD  float64 `json:"approxUsd"`
	CanAdvance bool    `json:"canAdvance"`
}

func toSessionResponse(s *models.BookingSession) sessionResponse {
	return sessionResponse{
		BookingSession: s,
		ApproxUSD:      float64(s.TotalPrice) / clpPerUSD,
		CanAdvance:     booking.CanAdvance(s),
	}
}

// StartSession handles POST /api/booking/session.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var body struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}

	auth := middleware.GetAuthContext(c)
	session, err := h.Wizard.StartSession(c.Request.Context(), auth, body.ServiceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

// GetSession handles GET /api/booking/session/:sessionID.
func (h *BookingHandler) GetSession(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	session, err := h.Wizard.GetSession(c.Request.Context(), auth, c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

// SelectService handles PUT /api/booking/session/:sessionID/service.
func (h *BookingHandler) SelectService(c *gin.Context) {
	var body struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}

	auth := middleware.GetAuthContext(c)
	session, err := h.Wizard.SelectService(c.Request.Context(), auth, c.Param("sessionID"), body.ServiceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

// SetSchedule handles PUT /api/booking/session/:sessionID/schedule.
func (h *BookingHandler) SetSchedule(c *gin.Context) {
	var body struct {
		Date   string `json:"date" binding:"required"`
		Time   string `json:"time" binding:"required"`
		People int    `json:"people" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}

	auth := middleware.GetAuthContext(c)
	session, err := h.Wizard.SetSchedule(c.Request.Context(), auth, c.Param("sessionID"), body.Date, body.Time, body.People)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

// SetContact handles PUT /api/booking/session/:sessionID/contact.
func (h *BookingHandler) SetContact(c *gin.Context) {
	var body struct {
		Name            string `json:"name" binding:"required"`
		Email           string `json:"email" binding:"required,email"`
		Phone           string `json:"phone" binding:"required"`
		SpecialRequests string `json:"specialRequests"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}

	auth := middleware.GetAuthContext(c)
	session, err := h.Wizard.SetContact(c.Request.Context(), auth, c.Param("sessionID"), models.CustomerInfo{
		Name:            body.Name,
		Email:           body.Email,
		Phone:           body.Phone,
		SpecialRequests: body.SpecialRequests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

// Advance handles POST /api/booking/session/:sessionID/advance.
func (h *BookingHandler) Advance(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	session, err := h.Wizard.Advance(c.Request.Context(), auth, c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

// Back handles POST /api/booking/session/:sessionID/back.
func (h *BookingHandler) Back(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	session, err := h.Wizard.Back(c.Request.Context(), auth, c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

// Confirm handles POST /api/booking/confirm.
func (h *BookingHandler) Confirm(c *gin.Context) {
	var body struct {
		SessionID     string `json:"sessionId" binding:"required"`
		PaymentMethod string `json:"paymentMethod" binding:"required"`
		TermsAccepted bool   `json:"termsAccepted"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}

	auth := middleware.GetAuthContext(c)
	confirmed, err := h.Wizard.Confirm(c.Request.Context(), auth, body.SessionID, body.PaymentMethod, body.TermsAccepted)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"confirmationId": confirmed.ID,
		"booking":        confirmed,
	})
}

// CancelSession handles DELETE /api/booking/session/:sessionID.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	if err := h.Wizard.Cancel(c.Request.Context(), auth, c.Param("sessionID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// MyBookings handles GET /api/booking/mine.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	bookings, err := h.Bookings.ListByUser(auth.UserID)
	if err != nil {
		h.Logger.Error("MyBookings: failed to list bookings", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
