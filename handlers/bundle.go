package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle gathers every HTTP handler the router needs, assembled once
// in main after the services are wired.
type HandlerBundle struct {
	// Guide endpoints
	RegisterGuideHandler  gin.HandlerFunc
	GetGuideHandler       gin.HandlerFunc
	ListGuidesHandler     gin.HandlerFunc
	CurrentGuideHandler   gin.HandlerFunc
	UpdateGuideHandler    gin.HandlerFunc
	UpdateFCMTokenHandler gin.HandlerFunc
	DeleteGuideHandler    gin.HandlerFunc

	// Service listing endpoints
	CreateServiceHandler gin.HandlerFunc
	UpdateServiceHandler gin.HandlerFunc
	DeleteServiceHandler gin.HandlerFunc

	// Approval endpoints
	ApproveServiceHandler    gin.HandlerFunc
	UnpublishServiceHandler  gin.HandlerFunc
	ApproveAllForGuide       gin.HandlerFunc
	ListGuideServicesHandler gin.HandlerFunc
	PendingCountHandler      gin.HandlerFunc

	// Booking wizard endpoints
	StartSession   gin.HandlerFunc
	GetSession     gin.HandlerFunc
	SelectService  gin.HandlerFunc
	SetSchedule    gin.HandlerFunc
	SetContact     gin.HandlerFunc
	Advance        gin.HandlerFunc
	Back           gin.HandlerFunc
	ConfirmBooking gin.HandlerFunc
	CancelSession  gin.HandlerFunc
	MyBookings     gin.HandlerFunc

	// Admin endpoints
	AdminHandler *AdminHandler
}
