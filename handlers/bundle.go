// File: mentorship/handlers/handlerBundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	HealthHandler gin.HandlerFunc

	// Mentor endpoints
	ListMentorsHandler        gin.HandlerFunc
	GetMentorHandler          gin.HandlerFunc
	GetAvailabilityHandler    gin.HandlerFunc
	UpdateAvailabilityHandler gin.HandlerFunc

	// Booking endpoints
	ValidateBookingHandler gin.HandlerFunc
	CreateBookingHandler   gin.HandlerFunc
	CancelBookingHandler   gin.HandlerFunc
	ListSessionsHandler    gin.HandlerFunc

	// Device endpoints
	UpdateFCMTokenHandler gin.HandlerFunc
}

// NewHandlerBundle wires every handler to the booking service.
func NewHandlerBundle(bh *BookingHandler) *HandlerBundle {
	return &HandlerBundle{
		HealthHandler: HealthHandler,

		ListMentorsHandler:        bh.ListMentorsHandler,
		GetMentorHandler:          bh.GetMentorHandler,
		GetAvailabilityHandler:    bh.GetAvailabilityHandler,
		UpdateAvailabilityHandler: bh.UpdateAvailabilityHandler,

		ValidateBookingHandler: bh.ValidateBookingHandler,
		CreateBookingHandler:   bh.CreateBookingHandler,
		CancelBookingHandler:   bh.CancelBookingHandler,
		ListSessionsHandler:    bh.ListSessionsHandler,

		UpdateFCMTokenHandler: bh.UpdateFCMTokenHandler,
	}
}
