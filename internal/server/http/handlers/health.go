package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports process liveness for platform health checks.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
