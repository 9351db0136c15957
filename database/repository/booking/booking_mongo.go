package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"luggagelite/database"
	"luggagelite/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a BookingRepository backed by the bookings
// collection.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database("luggagelite").Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "payment.transaction_id", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking %s: %w", booking.BookingID, err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings for user %s: %w", userID, err)
	}
	return bookings, nil
}

// ApplyTransition is the optimistic-concurrency write at the heart of the
// lifecycle: the filter pins the expected prior status, so when two
// transitions race on the same booking exactly one update matches.
func (r *MongoBookingRepo) ApplyTransition(ctx context.Context, bookingID string, from models.BookingStatus, update TransitionUpdate) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	set := bson.M{
		"status":                    update.To,
		"tracking.current_location": update.Entry.Location,
		"updated_at":                now,
	}
	if update.SetPickupCompleted {
		set["tracking.pickup_completed"] = update.Entry.Timestamp
	}
	if update.SetDeliveryCompleted {
		set["tracking.delivery_completed"] = update.Entry.Timestamp
	}

	filter := bson.M{"booking_id": bookingID, "status": from}
	change := bson.M{
		"$set":  set,
		"$push": bson.M{"tracking.history": update.Entry},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, change, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.classifyMiss(ctx, bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply transition on booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) CompletePayment(ctx context.Context, bookingID, transactionID, method string, entry models.TrackingEntry) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{
		"booking_id":     bookingID,
		"status":         models.StatusPendingPayment,
		"payment.status": models.PaymentPending,
	}
	change := bson.M{
		"$set": bson.M{
			"status":                    models.StatusPaymentConfirmed,
			"payment.status":            models.PaymentCompleted,
			"payment.transaction_id":    transactionID,
			"payment.method":            method,
			"payment.completed_at":      entry.Timestamp,
			"tracking.current_location": entry.Location,
			"updated_at":                now,
		},
		"$push": bson.M{"tracking.history": entry},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, change, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.classifyMiss(ctx, bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to complete payment on booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// classifyMiss distinguishes a missing booking from a lost optimistic race.
func (r *MongoBookingRepo) classifyMiss(ctx context.Context, bookingID string) error {
	count, err := r.coll.CountDocuments(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return fmt.Errorf("failed to classify transition miss for booking %s: %w", bookingID, err)
	}
	if count == 0 {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	return fmt.Errorf("booking %s: %w", bookingID, ErrStaleStatus)
}
