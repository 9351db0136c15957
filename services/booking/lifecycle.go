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

// maxTransitionAttempts bounds the optimistic-concurrency retry loop. A
// transition that keeps losing the race after this many fresh reads fails
// with ErrConcurrentModification and the caller decides what to do.
const maxTransitionAttempts = 3

// Transition moves a booking to a new status. The legality check, the actor
// authorization and the conditional write all validate against the same
// freshly-read document; if another writer lands first the repository write
// matches nothing and the loop retries with a fresh read. On success the
// status change, the appended tracking entry, the current location and any
// milestone timestamp land in one atomic write, and a notification is
// dispatched out of band.
func (s *DefaultBookingService) Transition(ctx context.Context, req TransitionRequest) (*models.Booking, error) {
	if !req.NewStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.NewStatus)
	}

	for attempt := 1; attempt <= maxTransitionAttempts; attempt++ {
		current, err := s.Repo.GetByBookingID(ctx, req.BookingID)
		if err != nil {
			return nil, mapRepoErr(err)
		}

		if !current.Status.CanTransitionTo(req.NewStatus) {
			return nil, fmt.Errorf("%w: %s → %s", ErrInvalidStateTransition, current.Status, req.NewStatus)
		}
		if err := authorizeTransition(current, req); err != nil {
			return nil, err
		}

		location := req.Location
		if location == "" {
			location = current.Tracking.CurrentLocation
		}

		entry := models.TrackingEntry{
			Status:    req.NewStatus,
			Location:  location,
			Notes:     req.Notes,
			Timestamp: time.Now(),
		}
		update := bookingRepo.TransitionUpdate{
			To:    req.NewStatus,
			Entry: entry,
			// Milestones are stamped exactly once; an already-set value is
			// never overwritten even if a transition were somehow replayed.
			SetPickupCompleted:   req.NewStatus == models.StatusLuggageCollected && current.Tracking.PickupCompleted == nil,
			SetDeliveryCompleted: req.NewStatus == models.StatusDelivered && current.Tracking.DeliveryCompleted == nil,
		}

		updated, err := s.Repo.ApplyTransition(ctx, req.BookingID, current.Status, update)
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			s.Logger.Warn("transition lost optimistic race, retrying",
				zap.String("booking_id", req.BookingID),
				zap.String("to", string(req.NewStatus)),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return nil, mapRepoErr(err)
		}

		s.notifyStatusChange(updated, req.NewStatus)
		return updated, nil
	}

	return nil, fmt.Errorf("%w: booking %s after %d attempts", ErrConcurrentModification, req.BookingID, maxTransitionAttempts)
}

// Cancel is the user-facing cancellation entry point. Legality (only before
// luggage handoff) comes from the transition table; ownership comes from
// authorizeTransition.
func (s *DefaultBookingService) Cancel(ctx context.Context, req CancelRequest) (*models.Booking, error) {
	notes := req.Reason
	if notes == "" {
		notes = "booking cancelled"
	}
	return s.Transition(ctx, TransitionRequest{
		BookingID:   req.BookingID,
		NewStatus:   models.StatusCancelled,
		ActorUserID: req.ActorUserID,
		ActorStaff:  req.ActorStaff,
		Notes:       notes,
	})
}

// authorizeTransition enforces who may trigger each transition:
// payment_confirmed needs a completed payment record, luggage_collected
// needs staff at the source station, delivered needs staff at the
// destination station, cancellation needs the owning user or admin staff.
func authorizeTransition(b *models.Booking, req TransitionRequest) error {
	switch req.NewStatus {
	case models.StatusPaymentConfirmed:
		if b.Payment.Status != models.PaymentCompleted {
			return fmt.Errorf("%w: payment has not been completed", ErrUnauthorized)
		}
	case models.StatusLuggageCollected:
		if req.ActorStaff == nil || req.ActorStaff.StationID != b.SourceStation.ID {
			return fmt.Errorf("%w: luggage collection requires staff at source station %s", ErrUnauthorized, b.SourceStation.ID)
		}
	case models.StatusInTransit:
		if req.ActorStaff == nil {
			return fmt.Errorf("%w: transit updates require staff", ErrUnauthorized)
		}
	case models.StatusDelivered:
		if req.ActorStaff == nil || req.ActorStaff.StationID != b.DestinationStation.ID {
			return fmt.Errorf("%w: delivery requires staff at destination station %s", ErrUnauthorized, b.DestinationStation.ID)
		}
	case models.StatusCancelled:
		isOwner := req.ActorUserID != "" && req.ActorUserID == b.UserID
		isAdmin := req.ActorStaff != nil && req.ActorStaff.Role == models.RoleAdmin
		if !isOwner && !isAdmin {
			return fmt.Errorf("%w: cancellation requires the booking owner or admin staff", ErrUnauthorized)
		}
	}
	return nil
}

// notifyStatusChange dispatches the status notification without ever
// failing the transition. A detached context keeps request cancellation
// from dropping the enqueue.
func (s *DefaultBookingService) notifyStatusChange(b *models.Booking, status models.BookingStatus) {
	if s.Notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Notifier.NotifyStatusChange(ctx, b, status); err != nil {
		s.Logger.Warn("status notification dispatch failed",
			zap.String("booking_id", b.BookingID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}
