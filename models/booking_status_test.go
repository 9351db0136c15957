package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPendingPayment, StatusPaymentConfirmed, true},
		{StatusPendingPayment, StatusCancelled, true},
		{StatusPendingPayment, StatusLuggageCollected, false},
		{StatusPendingPayment, StatusDelivered, false},
		{StatusPaymentConfirmed, StatusLuggageCollected, true},
		{StatusPaymentConfirmed, StatusCancelled, true},
		{StatusPaymentConfirmed, StatusInTransit, false},
		{StatusLuggageCollected, StatusInTransit, true},
		{StatusLuggageCollected, StatusCancelled, false},
		{StatusInTransit, StatusDelivered, true},
		{StatusInTransit, StatusCancelled, false},
		{StatusDelivered, StatusInTransit, false},
		{StatusCancelled, StatusPendingPayment, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	for _, s := range []BookingStatus{StatusPendingPayment, StatusPaymentConfirmed, StatusLuggageCollected, StatusInTransit} {
		assert.False(t, s.IsTerminal(), "%s", s)
	}
}

func TestBookingStatusCancellable(t *testing.T) {
	assert.True(t, StatusPendingPayment.CanBeCancelled())
	assert.True(t, StatusPaymentConfirmed.CanBeCancelled())
	assert.False(t, StatusLuggageCollected.CanBeCancelled())
	assert.False(t, StatusInTransit.CanBeCancelled())
	assert.False(t, StatusDelivered.CanBeCancelled())
	assert.False(t, StatusCancelled.CanBeCancelled())
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("in_transit")
	assert.NoError(t, err)
	assert.Equal(t, StatusInTransit, s)

	_, err = ParseBookingStatus("teleported")
	assert.Error(t, err)

	assert.False(t, BookingStatus("").IsValid())
}
