package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"luggagelite/middleware"
	"luggagelite/models"
	"luggagelite/services/booking"
	"luggagelite/utils"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
}

// bookingErrStatus maps service errors onto HTTP status codes.
func bookingErrStatus(err error) int {
	switch {
	case errors.Is(err, booking.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, booking.ErrInvalidStateTransition):
		return http.StatusConflict
	case errors.Is(err, booking.ErrConcurrentModification):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CreateBookingHandler handles POST /bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	// The booking always belongs to the authenticated caller, and the
	// pricing inputs are never taken from the request body. Overwrite them
	// even though the bound shape excludes them.
	req.UserID = middleware.UserIDFromContext(c)
	req.UserType = ""
	req.BookingCount = 0
	req.Overrides = nil

	b, err := h.Service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		logger.Warn("booking creation failed", zap.Error(err))
		c.JSON(bookingErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBookingHandler handles GET /bookings/:bookingID.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		c.JSON(bookingErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	if b.UserID != middleware.UserIDFromContext(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListUserBookingsHandler handles GET /bookings.
func (h *BookingHandler) ListUserBookingsHandler(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	bookings, err := h.Service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(bookingErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetTrackingHandler handles GET /bookings/:bookingID/tracking. Tracking
// lookups need only the booking id, so recipients can follow a shared link.
func (h *BookingHandler) GetTrackingHandler(c *gin.Context) {
	tracking, err := h.Service.GetTracking(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		c.JSON(bookingErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tracking)
}

// CompletePaymentHandler handles POST /bookings/:bookingID/payment.
func (h *BookingHandler) CompletePaymentHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var input struct {
		TransactionID string `json:"transaction_id"`
		Method        string `json:"method"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Service.CompletePayment(c.Request.Context(), booking.PaymentRequest{
		BookingID:     c.Param("bookingID"),
		TransactionID: input.TransactionID,
		Method:        input.Method,
		ActorUserID:   middleware.UserIDFromContext(c),
	})
	if err != nil {
		logger.Warn("payment completion failed",
			zap.String("booking_id", c.Param("bookingID")), zap.Error(err))
		c.JSON(bookingErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler handles POST /bookings/:bookingID/cancel.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	b, err := h.Service.Cancel(c.Request.Context(), booking.CancelRequest{
		BookingID:   c.Param("bookingID"),
		ActorUserID: middleware.UserIDFromContext(c),
		ActorStaff:  middleware.StaffFromContext(c),
		Reason:      input.Reason,
	})
	if err != nil {
		c.JSON(bookingErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateStatusHandler handles POST /staff/bookings/:bookingID/status. Only
// authenticated staff reach this route; station-level authorization happens
// in the lifecycle service.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var input struct {
		Status   string `json:"status" binding:"required"`
		Location string `json:"location"`
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	status, err := models.ParseBookingStatus(input.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.Service.Transition(c.Request.Context(), booking.TransitionRequest{
		BookingID:  c.Param("bookingID"),
		NewStatus:  status,
		ActorStaff: middleware.StaffFromContext(c),
		Location:   input.Location,
		Notes:      input.Notes,
	})
	if err != nil {
		logger.Warn("status update failed",
			zap.String("booking_id", c.Param("bookingID")),
			zap.String("status", input.Status),
			zap.Error(err))
		c.JSON(bookingErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}
