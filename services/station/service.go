package station

import (
	"context"
	"fmt"

	stationRepo "luggagelite/database/repository/station"
	"luggagelite/models"
)

// StationService exposes station reference data and route distances to the
// booking flow.
type StationService interface {
	GetStation(ctx context.Context, id string) (*models.Station, error)
	ListStations(ctx context.Context) ([]models.Station, error)
	SearchStations(ctx context.Context, query string) ([]models.Station, error)
	RouteDistanceKm(ctx context.Context, sourceID, destinationID string) (float64, error)
}

// DefaultStationService implements StationService.
type DefaultStationService struct {
	Repo stationRepo.StationRepository
}

func (s *DefaultStationService) GetStation(ctx context.Context, id string) (*models.Station, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultStationService) ListStations(ctx context.Context) ([]models.Station, error) {
	return s.Repo.List(ctx)
}

func (s *DefaultStationService) SearchStations(ctx context.Context, query string) ([]models.Station, error) {
	return s.Repo.Search(ctx, query)
}

// RouteDistanceKm computes the great-circle distance between two stations.
func (s *DefaultStationService) RouteDistanceKm(ctx context.Context, sourceID, destinationID string) (float64, error) {
	source, err := s.Repo.GetByID(ctx, sourceID)
	if err != nil {
		return 0, fmt.Errorf("route source: %w", err)
	}
	destination, err := s.Repo.GetByID(ctx, destinationID)
	if err != nil {
		return 0, fmt.Errorf("route destination: %w", err)
	}
	return HaversineKm(source.Coordinates, destination.Coordinates), nil
}
