package handlers

import (
	"net/http"

	"groupcal/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest dependency snapshot.
type HealthHandler struct {
	Status func() utils.HealthStatus
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{Status: utils.GetHealthStatus}
}

// GetHealthHandler handles GET /health. It answers 503 while MongoDB is unreachable.
func (h *HealthHandler) GetHealthHandler(c *gin.Context) {
	status := h.Status()
	code, label := http.StatusOK, "ok"
	if !status.Healthy() {
		code, label = http.StatusServiceUnavailable, "degraded"
	}
	c.JSON(code, gin.H{
		"status":    label,
		"mongo":     status.Mongo,
		"redis":     status.Redis,
		"checkedAt": status.CheckedAt,
	})
}
