package staffRepo

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

// ErrNotFound reports a staff id with no backing document.
var ErrNotFound = errors.New("staff not found")

// StaffRepository exposes the staff identity lookups the booking flow needs
// to authorize counter actions.
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*models.Staff, error)
	GetByEmail(ctx context.Context, email string) (*models.Staff, error)
}

// MongoStaffRepo implements StaffRepository using MongoDB.
type MongoStaffRepo struct {
	coll *mongo.Collection
}

// NewMongoStaffRepo creates a StaffRepository backed by the staff
// collection.
func NewMongoStaffRepo() StaffRepository {
	coll := database.MongoClient.Database("luggagelite").Collection("staff")
	repo := &MongoStaffRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create staff indexes: %v\n", err)
	}
	return repo
}

func (r *MongoStaffRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "station_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoStaffRepo) GetByID(ctx context.Context, id string) (*models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var staff models.Staff
	err := r.coll.FindOne(ctx, bson.M{"id": id, "active": true}).Decode(&staff)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("staff %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff %s: %w", id, err)
	}
	return &staff, nil
}

func (r *MongoStaffRepo) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var staff models.Staff
	err := r.coll.FindOne(ctx, bson.M{"email": email, "active": true}).Decode(&staff)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("staff %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff %s: %w", email, err)
	}
	return &staff, nil
}
