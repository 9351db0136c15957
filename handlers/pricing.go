package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"luggagelite/models"
	"luggagelite/services/pricing"
	"luggagelite/services/station"
	"luggagelite/utils"
)

// PricingHandler serves quotes and full fare breakdowns. Quick quotes are
// cached in Redis since the price for a route only changes with the clock
// hour or a config rollout.
type PricingHandler struct {
	Config      models.PricingConfig
	Stations    station.StationService
	CacheClient *redis.Client
}

// QuoteHandler handles GET /pricing/quote?source=...&destination=...
// The quote is display-only; booking creation reprices from scratch.
func (h *PricingHandler) QuoteHandler(c *gin.Context) {
	logger := utils.GetLogger()

	sourceID := c.Query("source")
	destinationID := c.Query("destination")
	if sourceID == "" || destinationID == "" || sourceID == destinationID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source and destination station ids are required and must differ"})
		return
	}

	ctx := c.Request.Context()

	// Quotes vary by hour because of the time-window surcharges, so the
	// cache key carries the current hour and entries expire naturally.
	cacheKey := fmt.Sprintf("quote:%s:%s:%02d", sourceID, destinationID, time.Now().Hour())
	if h.CacheClient != nil {
		if cached, err := h.CacheClient.Get(ctx, cacheKey).Result(); err == nil {
			var estimate models.QuoteEstimate
			if json.Unmarshal([]byte(cached), &estimate) == nil {
				c.JSON(http.StatusOK, estimate)
				return
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Warn("quote cache read failed", zap.Error(err))
		}
	}

	source, err := h.Stations.GetStation(ctx, sourceID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "source station not found"})
		return
	}
	destination, err := h.Stations.GetStation(ctx, destinationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "destination station not found"})
		return
	}

	distanceKm := station.HaversineKm(source.Coordinates, destination.Coordinates)
	estimate, err := pricing.QuickQuote(distanceKm, source.Type, destination.Type, h.Config)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.CacheClient != nil {
		if data, err := json.Marshal(estimate); err == nil {
			if err := h.CacheClient.Set(context.Background(), cacheKey, data, utils.QuoteCacheTTL()).Err(); err != nil {
				logger.Warn("quote cache write failed", zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, estimate)
}

// CalculateHandler handles POST /pricing/calculate with a full pricing
// request and returns the itemized breakdown.
func (h *PricingHandler) CalculateHandler(c *gin.Context) {
	var req models.PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	breakdown, err := pricing.Calculate(req, h.Config)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// RouteDistanceHandler handles GET /pricing/distance?source=...&destination=...
func (h *PricingHandler) RouteDistanceHandler(c *gin.Context) {
	sourceID := c.Query("source")
	destinationID := c.Query("destination")
	if sourceID == "" || destinationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source and destination station ids are required"})
		return
	}

	distanceKm, err := h.Stations.RouteDistanceKm(c.Request.Context(), sourceID, destinationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"distance_km": math.Round(distanceKm*100) / 100,
	})
}
