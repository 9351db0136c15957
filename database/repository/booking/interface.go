package bookingRepo

import (
	"context"
	"errors"

	"luggagelite/models"
)

var (
	// ErrNotFound reports a booking id with no backing document.
	ErrNotFound = errors.New("booking not found")
	// ErrStaleStatus reports a conditional write that matched no document
	// because the booking's status changed underneath the caller.
	ErrStaleStatus = errors.New("booking status changed concurrently")
)

// TransitionUpdate describes the single atomic write a lifecycle transition
// performs: the new status, the tracking entry to append, and which
// milestone timestamps to stamp. Either all of it lands or none of it does.
type TransitionUpdate struct {
	To                   models.BookingStatus
	Entry                models.TrackingEntry
	SetPickupCompleted   bool
	SetDeliveryCompleted bool
}

// BookingRepository defines booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByBookingID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)

	// ApplyTransition performs the optimistic status write: it only matches
	// a document whose status still equals from, and applies status, tracking
	// entry, current location, milestones and updated_at in one update.
	// Returns ErrStaleStatus when the document exists but the status moved.
	ApplyTransition(ctx context.Context, bookingID string, from models.BookingStatus, update TransitionUpdate) (*models.Booking, error)

	// CompletePayment conditionally records a completed payment and moves the
	// booking to payment_confirmed in the same write. The filter requires
	// status pending_payment with a pending payment record, which makes a
	// replayed or racing completion surface as ErrStaleStatus for the caller
	// to resolve against the stored transaction id.
	CompletePayment(ctx context.Context, bookingID, transactionID, method string, entry models.TrackingEntry) (*models.Booking, error)
}
