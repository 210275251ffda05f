package handlers

import (
	"net/http"

	"mentorship/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last snapshot taken by the health monitor.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	text := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		text = "degraded"
	}
	c.JSON(code, gin.H{"status": text, "dependencies": status})
}
