package booking

import (
	"context"
	"time"

	bookingRepo "luggagelite/database/repository/booking"
	"luggagelite/models"
	"luggagelite/services/notification"
	"luggagelite/services/station"

	"go.uber.org/zap"
)

// CreateBookingRequest carries everything needed to open a new booking.
// The fields below the JSON-bound block feed the pricing engine and are
// never bound from request bodies: UserID comes from the verified token,
// UserType and BookingCount from the caller's own profile lookup, and
// Overrides only from trusted internal callers. A customer must not be
// able to pick their own discount class or rewrite the fare config.
type CreateBookingRequest struct {
	SourceStationID      string                `json:"source_station_id"`
	DestinationStationID string                `json:"destination_station_id"`
	PickupTime           time.Time             `json:"pickup_time"`
	SecurityItems        []models.SecurityItem `json:"security_items,omitempty"`
	Contact              models.ContactInfo    `json:"contact"`
	LuggageImages        []models.LuggageImage `json:"luggage_images"`

	UserID       string                   `json:"-"`
	UserType     models.UserType          `json:"-"`
	BookingCount int                      `json:"-"`
	Overrides    *models.PricingOverrides `json:"-"`
}

// TransitionRequest asks the lifecycle to move a booking to a new status.
// Exactly one of ActorUserID / ActorStaff identifies the actor; staff
// actions carry the staff record so station assignment can be checked.
type TransitionRequest struct {
	BookingID   string
	NewStatus   models.BookingStatus
	ActorUserID string
	ActorStaff  *models.Staff
	Location    string
	Notes       string
}

// PaymentRequest records a completed payment for a booking. TransactionID
// is the idempotency key; a replay with the same id is a no-op.
type PaymentRequest struct {
	BookingID     string
	TransactionID string
	Method        string
	ActorUserID   string
}

// CancelRequest cancels a booking before luggage handoff.
type CancelRequest struct {
	BookingID   string
	ActorUserID string
	ActorStaff  *models.Staff
	Reason      string
}

// BookingService is the lifecycle surface consumed by the HTTP layer.
type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	GetTracking(ctx context.Context, bookingID string) (*models.TrackingInfo, error)
	Transition(ctx context.Context, req TransitionRequest) (*models.Booking, error)
	CompletePayment(ctx context.Context, req PaymentRequest) (*models.Booking, error)
	Cancel(ctx context.Context, req CancelRequest) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo          bookingRepo.BookingRepository
	Stations      station.StationService
	Notifier      notification.NotificationService
	PricingConfig models.PricingConfig
	Logger        *zap.Logger
}
