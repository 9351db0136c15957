package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"luggagelite/services/station"
)

// StationHandler serves station reference data.
type StationHandler struct {
	Service station.StationService
}

// ListStationsHandler handles GET /stations.
func (h *StationHandler) ListStationsHandler(c *gin.Context) {
	stations, err := h.Service.ListStations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": stations})
}

// GetStationHandler handles GET /stations/:stationID.
func (h *StationHandler) GetStationHandler(c *gin.Context) {
	st, err := h.Service.GetStation(c.Request.Context(), c.Param("stationID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// SearchStationsHandler handles GET /stations/search?q=...
func (h *StationHandler) SearchStationsHandler(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	stations, err := h.Service.SearchStations(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": stations})
}
