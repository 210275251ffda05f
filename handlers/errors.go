package handlers

import (
	"errors"
	"net/http"

	"mentorship/database/repository"
	"mentorship/services/booking"
	"mentorship/services/scheduling"
	"mentorship/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Anything unknown is a 500.
func respondError(c *gin.Context, err error) {
	var (
		invalidReq  *scheduling.InvalidRequestError
		malformed   *scheduling.MalformedScheduleError
		invalidBook *booking.InvalidBookingError
	)

	switch {
	case errors.As(err, &invalidBook):
		getLogger(c).Sugar().Infof("Booking rejected: %v", err)
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":      "Booking request is not valid",
			"validation": invalidBook.Validation,
		})
	case errors.As(err, &invalidReq):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", invalidReq.Error())
	case errors.As(err, &malformed):
		utils.JSONError(c, http.StatusBadRequest, "Invalid availability", malformed.Error())
	case errors.Is(err, scheduling.ErrMentorNotFound):
		utils.JSONError(c, http.StatusNotFound, "Mentor not found", "")
	case errors.Is(err, repository.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Session not found", "")
	case errors.Is(err, booking.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, repository.ErrSlotTaken):
		utils.JSONError(c, http.StatusConflict, "Slot already booked", "Another session was booked for this time. Pick a different slot.")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
