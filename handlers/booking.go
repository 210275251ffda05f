package handlers

import (
	"net/http"

	"mentorship/middleware"
	"mentorship/models"
	"mentorship/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the mentor, booking and device endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// caller reads the identity set by the JWT middleware. It aborts with 401
// when the identity is missing.
func caller(c *gin.Context) (userID, role string, ok bool) {
	userID = c.GetString(middleware.ContextUserID)
	role = c.GetString(middleware.ContextRole)
	if userID == "" || role == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", "", false
	}
	return userID, role, true
}

// ValidateBookingHandler answers whether a request could be booked right now,
// with the reasons and alternatives when it cannot. Always 200 for a
// well-formed body.
func (h *BookingHandler) ValidateBookingHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	validation, err := h.Service.ValidateBooking(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, validation)
}

func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	studentID, _, ok := caller(c)
	if !ok {
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	session, err := h.Service.CreateBooking(c.Request.Context(), studentID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Session booked", "session": session})
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	userID, _, ok := caller(c)
	if !ok {
		return
	}

	session, err := h.Service.CancelBooking(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		getLogger(c).Warn("Cancel failed", zap.String("sessionID", c.Param("id")), zap.String("userID", userID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session cancelled", "session": session})
}

func (h *BookingHandler) ListSessionsHandler(c *gin.Context) {
	userID, role, ok := caller(c)
	if !ok {
		return
	}

	sessions, err := h.Service.ListSessions(c.Request.Context(), userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
