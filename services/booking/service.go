package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "luggagelite/database/repository/booking"
	stationRepo "luggagelite/database/repository/station"
	"luggagelite/models"
	"luggagelite/services/pricing"
	"luggagelite/services/station"

	"go.uber.org/zap"
)

// CreateBooking validates the request, snapshots both stations, prices the
// route and persists the booking with status pending_payment. Pricing
// failures block creation entirely; nothing is persisted on error.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if err := validateCreateRequest(&req); err != nil {
		return nil, err
	}

	source, err := s.Stations.GetStation(ctx, req.SourceStationID)
	if err != nil {
		return nil, mapStationErr("source station", err)
	}
	destination, err := s.Stations.GetStation(ctx, req.DestinationStationID)
	if err != nil {
		return nil, mapStationErr("destination station", err)
	}

	distanceKm := s.routeDistance(source, destination)
	breakdown, err := pricing.Calculate(models.PricingRequest{
		DistanceKm:             distanceKm,
		SourceStationType:      source.Type,
		DestinationStationType: destination.Type,
		PickupTime:             req.PickupTime,
		UserType:               req.UserType,
		BookingCount:           req.BookingCount,
		Overrides:              req.Overrides,
	}, s.PricingConfig)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("pricing failed: %w", err)
	}

	now := time.Now()
	booking := &models.Booking{
		BookingID:          NewBookingID(now),
		UserID:             req.UserID,
		SourceStation:      source.Snapshot(),
		DestinationStation: destination.Snapshot(),
		DistanceKm:         distanceKm,
		Pricing:            *breakdown,
		SecurityItems:      req.SecurityItems,
		Contact:            req.Contact,
		LuggageImages:      req.LuggageImages,
		Status:             models.StatusPendingPayment,
		Payment: models.PaymentInfo{
			Status: models.PaymentPending,
			Amount: breakdown.Total,
		},
		Tracking: models.TrackingInfo{
			CurrentLocation: source.Name,
			History: []models.TrackingEntry{{
				Status:    models.StatusPendingPayment,
				Location:  source.Name,
				Notes:     "booking created",
				Timestamp: now,
			}},
		},
		PickupTime: req.PickupTime,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.Logger.Info("booking created",
		zap.String("booking_id", booking.BookingID),
		zap.String("user_id", booking.UserID),
		zap.Float64("total", booking.Pricing.Total),
	)
	return booking, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return booking, nil
}

func (s *DefaultBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *DefaultBookingService) GetTracking(ctx context.Context, bookingID string) (*models.TrackingInfo, error) {
	booking, err := s.Repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return &booking.Tracking, nil
}

func (s *DefaultBookingService) routeDistance(source, destination *models.Station) float64 {
	return station.HaversineKm(source.Coordinates, destination.Coordinates)
}

func validateCreateRequest(req *CreateBookingRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if req.SourceStationID == "" || req.DestinationStationID == "" {
		return fmt.Errorf("%w: source and destination stations are required", ErrInvalidInput)
	}
	if req.SourceStationID == req.DestinationStationID {
		return fmt.Errorf("%w: source and destination must differ", ErrInvalidInput)
	}
	if req.Contact.Phone == "" || req.Contact.Email == "" {
		return fmt.Errorf("%w: contact phone and email are required", ErrInvalidInput)
	}
	if len(req.LuggageImages) != len(models.RequiredLuggageAngles) {
		return fmt.Errorf("%w: exactly %d luggage images are required", ErrInvalidInput, len(models.RequiredLuggageAngles))
	}
	seen := make(map[models.LuggageAngle]bool, len(req.LuggageImages))
	for _, img := range req.LuggageImages {
		if img.URL == "" {
			return fmt.Errorf("%w: luggage image url is required", ErrInvalidInput)
		}
		seen[img.Angle] = true
	}
	for _, angle := range models.RequiredLuggageAngles {
		if !seen[angle] {
			return fmt.Errorf("%w: missing luggage image for angle %q", ErrInvalidInput, angle)
		}
	}
	for _, item := range req.SecurityItems {
		if item.Name == "" || item.DeclaredValue < 0 {
			return fmt.Errorf("%w: security items need a name and a non-negative declared value", ErrInvalidInput)
		}
	}
	return nil
}

func mapStationErr(field string, err error) error {
	if errors.Is(err, stationRepo.ErrNotFound) {
		return fmt.Errorf("%s: %w", field, ErrNotFound)
	}
	return fmt.Errorf("%s lookup failed: %w", field, err)
}

func mapRepoErr(err error) error {
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
