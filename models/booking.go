package models

import "time"

// PaymentStatus is the narrower payment sub-state machine.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// LuggageAngle names the four photo angles required per booking.
type LuggageAngle string

const (
	AngleFront LuggageAngle = "front"
	AngleBack  LuggageAngle = "back"
	AngleLeft  LuggageAngle = "left"
	AngleRight LuggageAngle = "right"
)

// RequiredLuggageAngles lists every angle a booking must photograph.
var RequiredLuggageAngles = []LuggageAngle{AngleFront, AngleBack, AngleLeft, AngleRight}

// LuggageImage is one uploaded luggage photo. Upload mechanics live
// elsewhere; bookings only store the reference.
type LuggageImage struct {
	Angle      LuggageAngle `bson:"angle" json:"angle"`
	URL        string       `bson:"url" json:"url"`
	UploadedAt time.Time    `bson:"uploaded_at" json:"uploaded_at"`
}

// SecurityItem is a valuable item declared by the user at booking time.
type SecurityItem struct {
	CategoryID    string  `bson:"category_id" json:"category_id"`
	Name          string  `bson:"name" json:"name"`
	DeclaredValue float64 `bson:"declared_value" json:"declared_value"`
}

// ContactInfo is the phone/email pair used for status notifications.
type ContactInfo struct {
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email"`
}

// PaymentInfo is the embedded payment sub-record. TransactionID doubles as
// the idempotency key: replaying a completion with the same transaction id
// is a no-op.
type PaymentInfo struct {
	Status        PaymentStatus `bson:"status" json:"status"`
	TransactionID string        `bson:"transaction_id,omitempty" json:"transaction_id,omitempty"`
	Method        string        `bson:"method,omitempty" json:"method,omitempty"`
	Amount        float64       `bson:"amount" json:"amount"`
	CompletedAt   *time.Time    `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// TrackingEntry is one immutable, timestamped record in a booking's audit
// trail. Entries are append-only and never mutated after being written.
type TrackingEntry struct {
	Status    BookingStatus `bson:"status" json:"status"`
	Location  string        `bson:"location" json:"location"`
	Notes     string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Timestamp time.Time     `bson:"timestamp" json:"timestamp"`
}

// TrackingInfo groups the audit trail with the milestone timestamps.
// CurrentLocation always mirrors the location of the most recent entry.
type TrackingInfo struct {
	CurrentLocation   string          `bson:"current_location" json:"current_location"`
	History           []TrackingEntry `bson:"history" json:"history"`
	PickupCompleted   *time.Time      `bson:"pickup_completed,omitempty" json:"pickup_completed,omitempty"`
	DeliveryCompleted *time.Time      `bson:"delivery_completed,omitempty" json:"delivery_completed,omitempty"`
}

// Booking is the door-to-door luggage transport order. It is created once
// with status pending_payment and from then on mutated only through
// lifecycle transitions; it is never deleted, only cancelled.
type Booking struct {
	BookingID string `bson:"booking_id" json:"booking_id"`
	UserID    string `bson:"user_id" json:"user_id"`

	SourceStation      StationSnapshot `bson:"source_station" json:"source_station"`
	DestinationStation StationSnapshot `bson:"destination_station" json:"destination_station"`
	DistanceKm         float64         `bson:"distance_km" json:"distance_km"`

	Pricing       PricingBreakdown `bson:"pricing" json:"pricing"`
	SecurityItems []SecurityItem   `bson:"security_items,omitempty" json:"security_items,omitempty"`
	Contact       ContactInfo      `bson:"contact" json:"contact"`
	LuggageImages []LuggageImage   `bson:"luggage_images" json:"luggage_images"`

	Status   BookingStatus `bson:"status" json:"status"`
	Payment  PaymentInfo   `bson:"payment" json:"payment"`
	Tracking TrackingInfo  `bson:"tracking" json:"tracking"`

	PickupTime time.Time `bson:"pickup_time" json:"pickup_time"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
