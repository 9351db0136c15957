package models

import "time"

// StatusNotification is the payload enqueued after a successful lifecycle
// transition. Delivery happens out of band; a failed notification never
// fails the transition that produced it.
type StatusNotification struct {
	BookingID   string        `json:"booking_id"`
	UserID      string        `json:"user_id"`
	Status      BookingStatus `json:"status"`
	Location    string        `json:"location"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email"`
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	OccurredAt  time.Time     `json:"occurred_at"`
}
