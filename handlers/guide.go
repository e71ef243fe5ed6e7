package handlers

import (
	"net/http"

	"pescalia/middleware"
	"pescalia/models"
	"pescalia/services/guide"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GuideHandler exposes guide profiles and their service listings over HTTP.
type GuideHandler struct {
	Guides guide.GuideService
	Logger *zap.Logger
}

// NewGuideHandler creates a new GuideHandler.
func NewGuideHandler(guides guide.GuideService, logger *zap.Logger) *GuideHandler {
	return &GuideHandler{Guides: guides, Logger: logger}
}

// RegisterGuide handles POST /api/guides/register.
func (h *GuideHandler) RegisterGuide(c *gin.Context) {
	var body struct {
		Name        string   `json:"name" binding:"required"`
		Age         int      `json:"age"`
		Location    string   `json:"location" binding:"required"`
		Bio         string   `json:"bio"`
		Languages   []string `json:"languages"`
		Specialties []string `json:"specialties"`
		Phone       string   `json:"phone"`
		Email       string   `json:"email" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}

	auth := middleware.GetAuthContext(c)
	created, err := h.Guides.RegisterGuide(c.Request.Context(), auth, models.Guide{
		Name:        body.Name,
		Age:         body.Age,
		Location:    body.Location,
		Bio:         body.Bio,
		Languages:   body.Languages,
		Specialties: body.Specialties,
		Phone:       body.Phone,
		Email:       body.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetGuide handles GET /api/guides/id/:id.
func (h *GuideHandler) GetGuide(c *gin.Context) {
	g, err := h.Guides.GetGuideByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// ListGuides handles GET /api/guides.
func (h *GuideHandler) ListGuides(c *gin.Context) {
	summaries, err := h.Guides.ListGuides(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// CurrentGuide handles GET /api/guides/me.
func (h *GuideHandler) CurrentGuide(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	g, err := h.Guides.CurrentGuideForUser(c.Request.Context(), auth)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// UpdateGuide handles PUT /api/guides/update/:id.
func (h *GuideHandler) UpdateGuide(c *gin.Context) {
	var body models.Guide
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}
	body.ID = c.Param("id")

	auth := middleware.GetAuthContext(c)
	updated, err := h.Guides.UpdateGuide(c.Request.Context(), auth, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteGuide handles DELETE /api/guides/delete/:id.
func (h *GuideHandler) DeleteGuide(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	if err := h.Guides.DeleteGuide(c.Request.Context(), auth, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// UpdateFCMToken handles PUT /api/guides/id/:id/fcm-token.
func (h *GuideHandler) UpdateFCMToken(c *gin.Context) {
	var body struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}

	auth := middleware.GetAuthContext(c)
	if err := h.Guides.UpdateFCMToken(c.Request.Context(), auth, c.Param("id"), body.Token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

type serviceBody struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       int64    `json:"price" binding:"required"`
	MaxPeople   int      `json:"maxPeople" binding:"required"`
	Duration    string   `json:"duration"`
	Difficulty  string   `json:"difficulty"`
	Includes    []string `json:"includes"`
	Location    string   `json:"location"`
}

// CreateService handles POST /api/guides/id/:id/services.
func (h *GuideHandler) CreateService(c *gin.Context) {
	var body serviceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}

	auth := middleware.GetAuthContext(c)
	created, err := h.Guides.CreateService(c.Request.Context(), auth, models.Service{
		GuideID:     c.Param("id"),
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		MaxPeople:   body.MaxPeople,
		Duration:    body.Duration,
		Difficulty:  body.Difficulty,
		Includes:    body.Includes,
		Location:    body.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateService handles PUT /api/services/:serviceID.
func (h *GuideHandler) UpdateService(c *gin.Context) {
	var body serviceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}

	auth := middleware.GetAuthContext(c)
	updated, err := h.Guides.UpdateService(c.Request.Context(), auth, models.Service{
		ID:          c.Param("serviceID"),
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		MaxPeople:   body.MaxPeople,
		Duration:    body.Duration,
		Difficulty:  body.Difficulty,
		Includes:    body.Includes,
		Location:    body.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteService handles DELETE /api/services/:serviceID.
func (h *GuideHandler) DeleteService(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	if err := h.Guides.DeleteService(c.Request.Context(), auth, c.Param("serviceID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
