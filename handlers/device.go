package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpdateFCMTokenHandler registers the caller's push token.
func (h *BookingHandler) UpdateFCMTokenHandler(c *gin.Context) {
	userID, role, ok := caller(c)
	if !ok {
		return
	}

	var body struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	if err := h.Service.RegisterDevice(c.Request.Context(), userID, role, body.Token); err != nil {
		getLogger(c).Error("Failed to register FCM token", zap.String("userID", userID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FCM token updated"})
}
