package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"luggagelite/utils"
)

// HealthHandler handles GET /health with the latest dependency snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
