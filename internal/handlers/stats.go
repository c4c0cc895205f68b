package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lanbeam/signaling/internal/signaling"
)

// Health reports process liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Stats exposes current room and peer counts.
func Stats(reg *signaling.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, reg.Snapshot())
	}
}
