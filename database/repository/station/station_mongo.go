package stationRepo

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

// ErrNotFound reports a station id with no backing document.
var ErrNotFound = errors.New("station not found")

// StationRepository defines read access to station reference data. Station
// CRUD is managed elsewhere; the booking flow only reads.
type StationRepository interface {
	GetByID(ctx context.Context, id string) (*models.Station, error)
	List(ctx context.Context) ([]models.Station, error)
	Search(ctx context.Context, query string) ([]models.Station, error)
}

// MongoStationRepo implements StationRepository using MongoDB.
type MongoStationRepo struct {
	coll *mongo.Collection
}

// NewMongoStationRepo creates a StationRepository backed by the stations
// collection.
func NewMongoStationRepo() StationRepository {
	coll := database.MongoClient.Database("luggagelite").Collection("stations")
	repo := &MongoStationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create station indexes: %v\n", err)
	}
	return repo
}

func (r *MongoStationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "city", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoStationRepo) GetByID(ctx context.Context, id string) (*models.Station, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var station models.Station
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&station)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("station %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch station %s: %w", id, err)
	}
	return &station, nil
}

func (r *MongoStationRepo) List(ctx context.Context) ([]models.Station, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "city", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	defer cursor.Close(ctx)

	var stations []models.Station
	if err := cursor.All(ctx, &stations); err != nil {
		return nil, fmt.Errorf("failed to decode stations: %w", err)
	}
	return stations, nil
}

func (r *MongoStationRepo) Search(ctx context.Context, query string) ([]models.Station, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"active": true,
		"$or": []bson.M{
			{"name": bson.M{"$regex": query, "$options": "i"}},
			{"city": bson.M{"$regex": query, "$options": "i"}},
			{"code": bson.M{"$regex": query, "$options": "i"}},
		},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search stations: %w", err)
	}
	defer cursor.Close(ctx)

	var stations []models.Station
	if err := cursor.All(ctx, &stations); err != nil {
		return nil, fmt.Errorf("failed to decode stations: %w", err)
	}
	return stations, nil
}
