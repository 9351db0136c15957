package notification

import (
	"context"

	"luggagelite/models"
)

// NotificationService dispatches status-change notifications. Dispatch is
// fire-and-forget from the lifecycle's perspective: enqueue failures are
// logged, never propagated into the transition.
type NotificationService interface {
	NotifyStatusChange(ctx context.Context, booking *models.Booking, status models.BookingStatus) error
}

// EmailSender delivers one email notification. Real delivery lives outside
// this service; the default implementation only logs.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender delivers one SMS notification.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}
