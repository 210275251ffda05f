package handlers

import (
	"net/http"

	"mentorship/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *BookingHandler) ListMentorsHandler(c *gin.Context) {
	mentors, err := h.Service.ListMentors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if mentors == nil {
		mentors = []models.Mentor{}
	}
	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}

func (h *BookingHandler) GetMentorHandler(c *gin.Context) {
	mentor, err := h.Service.GetMentor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentor": mentor})
}

// GetAvailabilityHandler serves GET /api/mentors/:id/availability?date=YYYY-MM-DD.
func (h *BookingHandler) GetAvailabilityHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date query parameter"})
		return
	}

	resp, err := h.Service.GetAvailability(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateAvailabilityHandler lets a mentor replace their own schedule.
func (h *BookingHandler) UpdateAvailabilityHandler(c *gin.Context) {
	callerID, _, ok := caller(c)
	if !ok {
		return
	}

	var req models.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Warn("Invalid availability update", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	mentor, err := h.Service.UpdateMentorAvailability(c.Request.Context(), callerID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated", "mentor": mentor})
}
