package models

import "fmt"

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusPendingPayment   BookingStatus = "pending_payment"
	StatusPaymentConfirmed BookingStatus = "payment_confirmed"
	StatusLuggageCollected BookingStatus = "luggage_collected"
	StatusInTransit        BookingStatus = "in_transit"
	StatusDelivered        BookingStatus = "delivered"
	StatusCancelled        BookingStatus = "cancelled"
)

// validTransitions is the single authoritative transition table. Every
// status change in the system goes through it; no handler or repository
// checks transitions on its own.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPendingPayment:   {StatusPaymentConfirmed, StatusCancelled},
	StatusPaymentConfirmed: {StatusLuggageCollected, StatusCancelled},
	StatusLuggageCollected: {StatusInTransit},
	StatusInTransit:        {StatusDelivered},
	StatusDelivered:        {},
	StatusCancelled:        {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the
// target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// CanBeCancelled returns true while the luggage has not been handed over.
func (s BookingStatus) CanBeCancelled() bool {
	return s.CanTransitionTo(StatusCancelled)
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}
