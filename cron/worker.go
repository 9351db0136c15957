package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"luggagelite/config"
	"luggagelite/models"
	"luggagelite/services/notification"
	"luggagelite/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// statusMessages maps each lifecycle status to the user-facing phrase used
// in email and SMS bodies.
var statusMessages = map[models.BookingStatus]string{
	models.StatusPaymentConfirmed: "Your payment is confirmed. We will collect your luggage at the source counter.",
	models.StatusLuggageCollected: "Your luggage has been collected at the source counter.",
	models.StatusInTransit:        "Your luggage is in transit.",
	models.StatusDelivered:        "Your luggage has been delivered. Thank you for travelling light!",
	models.StatusCancelled:        "Your booking has been cancelled.",
}

// InitNotifyWorker runs the background worker that delivers status-change
// notifications enqueued by the booking lifecycle.
func InitNotifyWorker(email notification.EmailSender, sms notification.SMSSender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeStatusNotify, handleStatusNotify(email, sms))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting notification worker")
		if err := srv.Run(mux); err != nil {
			logger.Fatal("notification worker failed", zap.Error(err))
		}
	}()
}

func handleStatusNotify(email notification.EmailSender, sms notification.SMSSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.StatusNotification
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid status notification payload", zap.Error(err))
			return err
		}

		message, ok := statusMessages[p.Status]
		if !ok {
			message = fmt.Sprintf("Your booking is now %s.", p.Status)
		}
		body := fmt.Sprintf("Booking %s (%s → %s): %s", p.BookingID, p.Source, p.Destination, message)

		if p.Email != "" {
			subject := fmt.Sprintf("LuggageLite booking %s: %s", p.BookingID, p.Status)
			if err := email.SendEmail(ctx, p.Email, subject, body); err != nil {
				logger.Warn("email notification failed",
					zap.String("booking_id", p.BookingID), zap.Error(err))
				return err
			}
		}
		if p.Phone != "" {
			if err := sms.SendSMS(ctx, p.Phone, body); err != nil {
				logger.Warn("sms notification failed",
					zap.String("booking_id", p.BookingID), zap.Error(err))
				return err
			}
		}
		return nil
	}
}
