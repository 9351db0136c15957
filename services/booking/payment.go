package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "luggagelite/database/repository/booking"
	"luggagelite/models"

	"go.uber.org/zap"
)

// CompletePayment records a completed payment and moves the booking from
// pending_payment to payment_confirmed in one atomic write. It is
// idempotent per transaction id: replaying a completion whose transaction
// id already sits on the booking returns the booking unchanged with no
// extra tracking entry. Gateway retries are the caller's business; they
// stay safe as long as they reuse the transaction id.
func (s *DefaultBookingService) CompletePayment(ctx context.Context, req PaymentRequest) (*models.Booking, error) {
	if req.BookingID == "" {
		return nil, fmt.Errorf("%w: booking_id is required", ErrInvalidInput)
	}
	transactionID := req.TransactionID
	if transactionID == "" {
		transactionID = NewTransactionID(time.Now())
	}

	for attempt := 1; attempt <= maxTransitionAttempts; attempt++ {
		current, err := s.Repo.GetByBookingID(ctx, req.BookingID)
		if err != nil {
			return nil, mapRepoErr(err)
		}

		if req.ActorUserID != "" && req.ActorUserID != current.UserID {
			return nil, fmt.Errorf("%w: only the booking owner may pay", ErrUnauthorized)
		}

		if current.Payment.Status == models.PaymentCompleted {
			if current.Payment.TransactionID == transactionID {
				// Replay of an already-applied transaction: no-op.
				return current, nil
			}
			return nil, fmt.Errorf("%w: payment already completed with transaction %s", ErrInvalidStateTransition, current.Payment.TransactionID)
		}
		if current.Payment.Status != models.PaymentPending {
			// Failed or refunded payments need operator intervention, not a
			// retried completion.
			return nil, fmt.Errorf("%w: payment is %s", ErrInvalidStateTransition, current.Payment.Status)
		}
		if current.Status != models.StatusPendingPayment {
			return nil, fmt.Errorf("%w: %s → %s", ErrInvalidStateTransition, current.Status, models.StatusPaymentConfirmed)
		}

		entry := models.TrackingEntry{
			Status:    models.StatusPaymentConfirmed,
			Location:  current.Tracking.CurrentLocation,
			Notes:     "payment confirmed",
			Timestamp: time.Now(),
		}
		updated, err := s.Repo.CompletePayment(ctx, req.BookingID, transactionID, req.Method, entry)
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			// Another completion landed between our read and write; reread
			// so a duplicate of the same transaction resolves as a no-op.
			s.Logger.Warn("payment completion lost optimistic race, retrying",
				zap.String("booking_id", req.BookingID),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return nil, mapRepoErr(err)
		}

		s.notifyStatusChange(updated, models.StatusPaymentConfirmed)
		return updated, nil
	}

	return nil, fmt.Errorf("%w: booking %s after %d attempts", ErrConcurrentModification, req.BookingID, maxTransitionAttempts)
}
