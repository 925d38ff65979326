package handlers

import (
	"net/http"

	"inventario-backend/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	DB *gorm.DB
}

// Health reports the API and database state. It always answers 200 so
// monitoring can read the body instead of guessing from the status code.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := database.Ping(h.DB); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
