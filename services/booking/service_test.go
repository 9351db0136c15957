package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingRepo "luggagelite/database/repository/booking"
	stationRepo "luggagelite/database/repository/station"
	"luggagelite/models"
)

// fakeBookingRepo is an in-memory BookingRepository with the same
// optimistic-write semantics as the Mongo implementation: conditional
// writes match on the expected prior status and lose with ErrStaleStatus.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func cloneBooking(b *models.Booking) *models.Booking {
	out := *b
	out.Tracking.History = append([]models.TrackingEntry(nil), b.Tracking.History...)
	out.SecurityItems = append([]models.SecurityItem(nil), b.SecurityItems...)
	out.LuggageImages = append([]models.LuggageImage(nil), b.LuggageImages...)
	if b.Tracking.PickupCompleted != nil {
		t := *b.Tracking.PickupCompleted
		out.Tracking.PickupCompleted = &t
	}
	if b.Tracking.DeliveryCompleted != nil {
		t := *b.Tracking.DeliveryCompleted
		out.Tracking.DeliveryCompleted = &t
	}
	return &out
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.BookingID] = cloneBooking(booking)
	return nil
}

func (r *fakeBookingRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", bookingID, bookingRepo.ErrNotFound)
	}
	return cloneBooking(b), nil
}

func (r *fakeBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *cloneBooking(b))
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ApplyTransition(ctx context.Context, bookingID string, from models.BookingStatus, update bookingRepo.TransitionUpdate) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", bookingID, bookingRepo.ErrNotFound)
	}
	if b.Status != from {
		return nil, fmt.Errorf("booking %s: %w", bookingID, bookingRepo.ErrStaleStatus)
	}
	b.Status = update.To
	b.Tracking.History = append(b.Tracking.History, update.Entry)
	b.Tracking.CurrentLocation = update.Entry.Location
	if update.SetPickupCompleted {
		t := update.Entry.Timestamp
		b.Tracking.PickupCompleted = &t
	}
	if update.SetDeliveryCompleted {
		t := update.Entry.Timestamp
		b.Tracking.DeliveryCompleted = &t
	}
	b.UpdatedAt = time.Now()
	return cloneBooking(b), nil
}

func (r *fakeBookingRepo) CompletePayment(ctx context.Context, bookingID, transactionID, method string, entry models.TrackingEntry) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", bookingID, bookingRepo.ErrNotFound)
	}
	if b.Status != models.StatusPendingPayment || b.Payment.Status != models.PaymentPending {
		return nil, fmt.Errorf("booking %s: %w", bookingID, bookingRepo.ErrStaleStatus)
	}
	b.Status = models.StatusPaymentConfirmed
	b.Payment.Status = models.PaymentCompleted
	b.Payment.TransactionID = transactionID
	b.Payment.Method = method
	t := entry.Timestamp
	b.Payment.CompletedAt = &t
	b.Tracking.History = append(b.Tracking.History, entry)
	b.Tracking.CurrentLocation = entry.Location
	b.UpdatedAt = time.Now()
	return cloneBooking(b), nil
}

// fakeStationService serves two fixed stations.
type fakeStationService struct {
	stations map[string]*models.Station
}

func newFakeStationService() *fakeStationService {
	return &fakeStationService{stations: map[string]*models.Station{
		"st-src": {
			ID: "st-src", Name: "Delhi Junction", Code: "DLI", City: "Delhi",
			Type: models.StationTypeRailway, Active: true,
			Coordinates: models.Coordinates{Latitude: 28.6139, Longitude: 77.2090},
		},
		"st-dst": {
			ID: "st-dst", Name: "Mumbai Airport", Code: "BOM", City: "Mumbai",
			Type: models.StationTypeAirport, Active: true,
			Coordinates: models.Coordinates{Latitude: 19.0896, Longitude: 72.8656},
		},
	}}
}

func (s *fakeStationService) GetStation(ctx context.Context, id string) (*models.Station, error) {
	st, ok := s.stations[id]
	if !ok {
		return nil, fmt.Errorf("station %s: %w", id, stationRepo.ErrNotFound)
	}
	return st, nil
}

func (s *fakeStationService) ListStations(ctx context.Context) ([]models.Station, error) {
	return nil, nil
}

func (s *fakeStationService) SearchStations(ctx context.Context, query string) ([]models.Station, error) {
	return nil, nil
}

func (s *fakeStationService) RouteDistanceKm(ctx context.Context, sourceID, destinationID string) (float64, error) {
	return 0, nil
}

// recordingNotifier captures every dispatched notification.
type recordingNotifier struct {
	mu     sync.Mutex
	events []models.BookingStatus
	fail   bool
}

func (n *recordingNotifier) NotifyStatusChange(ctx context.Context, booking *models.Booking, status models.BookingStatus) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return fmt.Errorf("notification backend down")
	}
	n.events = append(n.events, status)
	return nil
}

func (n *recordingNotifier) statuses() []models.BookingStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.BookingStatus(nil), n.events...)
}

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *recordingNotifier) {
	repo := newFakeBookingRepo()
	notifier := &recordingNotifier{}
	svc := &DefaultBookingService{
		Repo:          repo,
		Stations:      newFakeStationService(),
		Notifier:      notifier,
		PricingConfig: models.DefaultPricingConfig(),
		Logger:        zap.NewNop(),
	}
	return svc, repo, notifier
}

func validCreateRequest() CreateBookingRequest {
	return CreateBookingRequest{
		UserID:               "user-1",
		SourceStationID:      "st-src",
		DestinationStationID: "st-dst",
		PickupTime:           time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC),
		UserType:             models.UserTypeNew,
		Contact:              models.ContactInfo{Phone: "+919876543210", Email: "user@example.com"},
		LuggageImages: []models.LuggageImage{
			{Angle: models.AngleFront, URL: "https://img/front.jpg"},
			{Angle: models.AngleBack, URL: "https://img/back.jpg"},
			{Angle: models.AngleLeft, URL: "https://img/left.jpg"},
			{Angle: models.AngleRight, URL: "https://img/right.jpg"},
		},
		SecurityItems: []models.SecurityItem{
			{CategoryID: "electronics", Name: "Laptop", DeclaredValue: 65000},
		},
	}
}

func mustCreateBooking(t *testing.T, svc *DefaultBookingService) *models.Booking {
	t.Helper()
	b, err := svc.CreateBooking(context.Background(), validCreateRequest())
	require.NoError(t, err)
	return b
}

func TestCreateBookingSnapshotsAndPrices(t *testing.T) {
	svc, _, _ := newTestService()
	b := mustCreateBooking(t, svc)

	assert.Regexp(t, `^TL\d{8}[A-Z0-9]{4}$`, b.BookingID)
	assert.Equal(t, models.StatusPendingPayment, b.Status)
	assert.Equal(t, models.PaymentPending, b.Payment.Status)

	// Station identity is snapshotted, not referenced.
	assert.Equal(t, "Delhi Junction", b.SourceStation.Name)
	assert.Equal(t, models.StationTypeRailway, b.SourceStation.Type)
	assert.Equal(t, models.StationTypeAirport, b.DestinationStation.Type)

	// Delhi → Mumbai is a long-distance route priced at the cap.
	assert.Greater(t, b.DistanceKm, 1000.0)
	assert.Equal(t, "Long Distance", b.Pricing.DistanceTier.Name)
	assert.Equal(t, 1.2, b.Pricing.StationMultiplier.Multiplier)
	assert.True(t, b.Pricing.MaximumChargeApplied)
	assert.Equal(t, b.Pricing.Total, b.Payment.Amount)

	// Creation writes the first tracking entry.
	require.Len(t, b.Tracking.History, 1)
	assert.Equal(t, models.StatusPendingPayment, b.Tracking.History[0].Status)
	assert.Equal(t, "Delhi Junction", b.Tracking.CurrentLocation)
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateBookingRequest)
	}{
		{"missing user", func(r *CreateBookingRequest) { r.UserID = "" }},
		{"same stations", func(r *CreateBookingRequest) { r.DestinationStationID = r.SourceStationID }},
		{"missing contact", func(r *CreateBookingRequest) { r.Contact.Email = "" }},
		{"three images", func(r *CreateBookingRequest) { r.LuggageImages = r.LuggageImages[:3] }},
		{"duplicate angle", func(r *CreateBookingRequest) { r.LuggageImages[3].Angle = models.AngleFront }},
		{"image without url", func(r *CreateBookingRequest) { r.LuggageImages[0].URL = "" }},
		{"negative declared value", func(r *CreateBookingRequest) { r.SecurityItems[0].DeclaredValue = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)
			_, err := svc.CreateBooking(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateBookingUnknownStation(t *testing.T) {
	svc, repo, _ := newTestService()
	req := validCreateRequest()
	req.DestinationStationID = "st-nowhere"
	_, err := svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotFound)

	// Nothing was persisted.
	assert.Empty(t, repo.bookings)
}

func TestGetTracking(t *testing.T) {
	svc, _, _ := newTestService()
	b := mustCreateBooking(t, svc)

	tr, err := svc.GetTracking(context.Background(), b.BookingID)
	require.NoError(t, err)
	assert.Equal(t, "Delhi Junction", tr.CurrentLocation)
	require.Len(t, tr.History, 1)

	_, err = svc.GetTracking(context.Background(), "TL00000000XXXX")
	assert.ErrorIs(t, err, ErrNotFound)
}
