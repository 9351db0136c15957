package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"luggagelite/models"
	"luggagelite/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeStatusNotify is the asynq task kind carrying a StatusNotification.
const TypeStatusNotify = "notify:status"

// NewStatusNotifyTask builds the asynq task for a status notification.
func NewStatusNotifyTask(payload models.StatusNotification) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status notification: %w", err)
	}
	return asynq.NewTask(TypeStatusNotify, b), nil
}

// AsynqNotificationService enqueues notifications for the background worker.
type AsynqNotificationService struct {
	Client *asynq.Client
}

func (s *AsynqNotificationService) NotifyStatusChange(ctx context.Context, booking *models.Booking, status models.BookingStatus) error {
	payload := models.StatusNotification{
		BookingID:   booking.BookingID,
		UserID:      booking.UserID,
		Status:      status,
		Location:    booking.Tracking.CurrentLocation,
		Phone:       booking.Contact.Phone,
		Email:       booking.Contact.Email,
		Source:      booking.SourceStation.Name,
		Destination: booking.DestinationStation.Name,
		OccurredAt:  time.Now(),
	}
	task, err := NewStatusNotifyTask(payload)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue status notification for %s: %w", booking.BookingID, err)
	}
	return nil
}

// LogEmailSender is the default email boundary: it records the send via the
// logger instead of talking to a mail provider.
type LogEmailSender struct{}

func (LogEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	utils.GetLogger().Info("email notification",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// LogSMSSender is the default SMS boundary.
type LogSMSSender struct{}

func (LogSMSSender) SendSMS(ctx context.Context, to, body string) error {
	utils.GetLogger().Info("sms notification",
		zap.String("to", to),
		zap.String("body", body),
	)
	return nil
}
