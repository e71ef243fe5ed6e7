package handlers

import (
	"net/http"

	"pescalia/middleware"
	"pescalia/services/approval"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ApprovalHandler exposes the service approval workflow over HTTP.
type ApprovalHandler struct {
	Approvals approval.ApprovalService
	Logger    *zap.Logger
}

// NewApprovalHandler creates a new ApprovalHandler.
func NewApprovalHandler(approvals approval.ApprovalService, logger *zap.Logger) *ApprovalHandler {
	return &ApprovalHandler{Approvals: approvals, Logger: logger}
}

// ApproveService handles POST /api/services/:serviceID/approve.
func (h *ApprovalHandler) ApproveService(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	svc, err := h.Approvals.Approve(c.Request.Context(), auth, c.Param("serviceID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// UnpublishService handles POST /api/services/:serviceID/unpublish. It sends
// an approved service back to pending.
func (h *ApprovalHandler) UnpublishService(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	svc, err := h.Approvals.MarkPending(c.Request.Context(), auth, c.Param("serviceID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// ApproveAllForGuide handles POST /api/guides/id/:id/services/approve-all.
func (h *ApprovalHandler) ApproveAllForGuide(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	count, err := h.Approvals.ApproveAllForGuide(c.Request.Context(), auth, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approved": count})
}

// ListGuideServices handles GET /api/guides/id/:id/services. Owners and admins
// see pending listings; everyone else gets the approved-only public list.
func (h *ApprovalHandler) ListGuideServices(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	services, err := h.Approvals.ListForGuide(c.Request.Context(), auth, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// PendingCount handles GET /api/guides/id/:id/services/pending-count.
func (h *ApprovalHandler) PendingCount(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	count, err := h.Approvals.PendingCountForGuide(c.Request.Context(), auth, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": count})
}
