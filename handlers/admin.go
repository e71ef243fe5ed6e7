package handlers

import (
	"net/http"

	bookingRepo "pescalia/database/repository/booking"
	serviceRepo "pescalia/database/repository/service"
	"pescalia/middleware"
	"pescalia/models"
	"pescalia/services/approval"
	"pescalia/services/guide"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the moderation surface. Routes using it sit behind the
// admin middleware, but the services re-check the role themselves.
type AdminHandler struct {
	Guides    guide.GuideService
	Approvals approval.ApprovalService
	Services  serviceRepo.ServiceRepository
	Bookings  bookingRepo.BookingRepository
	Logger    *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(guides guide.GuideService, approvals approval.ApprovalService, services serviceRepo.ServiceRepository, bookings bookingRepo.BookingRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Guides: guides, Approvals: approvals, Services: services, Bookings: bookings, Logger: logger}
}

// ListGuides handles GET /api/admin/guides. Each summary carries the guide's
// pending service count so moderators can triage.
func (h *AdminHandler) ListGuides(c *gin.Context) {
	summaries, err := h.Guides.ListGuides(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]models.GuideSummary, 0, len(summaries))
	for _, s := range summaries {
		count, err := h.Services.CountPendingByGuide(s.ID)
		if err != nil {
			h.Logger.Warn("failed to count pending services",
				zap.String("guideId", s.ID), zap.Error(err))
		}
		s.PendingCount = count
		out = append(out, s)
	}
	c.JSON(http.StatusOK, out)
}

// ListPendingServices handles GET /api/admin/services/pending.
func (h *AdminHandler) ListPendingServices(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	services, err := h.Approvals.ListPending(c.Request.Context(), auth)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// GuideBookings handles GET /api/admin/guides/:id/bookings.
func (h *AdminHandler) GuideBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListByGuide(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ApproveAllPending handles POST /api/admin/services/approve-all.
func (h *AdminHandler) ApproveAllPending(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	count, err := h.Approvals.ApproveAllPending(c.Request.Context(), auth)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approved": count})
}
