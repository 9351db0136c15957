package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luggagelite/models"
)

func pickupAt(hour int) time.Time {
	return time.Date(2024, 3, 15, hour, 0, 0, 0, time.UTC)
}

func baseRequest(distanceKm float64) models.PricingRequest {
	return models.PricingRequest{
		DistanceKm:             distanceKm,
		SourceStationType:      models.StationTypeRailway,
		DestinationStationType: models.StationTypeRailway,
		PickupTime:             pickupAt(14),
		UserType:               models.UserTypeNew,
	}
}

func TestCalculateRejectsInvalidDistance(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	for _, distance := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Calculate(baseRequest(distance), cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCalculateRejectsUnknownStationType(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	req := baseRequest(10)
	req.SourceStationType = "bus"
	_, err := Calculate(req, cfg)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculateShortRouteBreakdown(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	b, err := Calculate(baseRequest(10), cfg)
	require.NoError(t, err)

	assert.Equal(t, 50.0, b.BasePrice)
	assert.Equal(t, 25.0, b.DistanceCharge)
	assert.Equal(t, 75.0, b.Subtotal)
	assert.Equal(t, "railway-railway", b.StationMultiplier.Name)
	assert.Equal(t, 1.0, b.StationMultiplier.Multiplier)
	assert.Equal(t, "Local", b.DistanceTier.Name)
	assert.Nil(t, b.TimeSurcharge)
	assert.Equal(t, 70.0, b.ServiceFeeTotal)
	assert.Equal(t, 145.0, b.PreTaxTotal)
	assert.Equal(t, 14.5, b.Discounts["new_user"].Amount)
	assert.Equal(t, 130.5, b.TaxableAmount)
	assert.Equal(t, 23.49, b.Taxes["gst"].Amount)
	assert.Equal(t, 6.53, b.Taxes["service_tax"].Amount)
	assert.Equal(t, 160.52, b.Total)
	assert.False(t, b.MinimumChargeApplied)
	assert.False(t, b.MaximumChargeApplied)
}

// Long interstate route from the worked example: the raw total overshoots
// the maximum charge and gets clamped.
func TestCalculateLongRouteClampsToMaximum(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	b, err := Calculate(baseRequest(1384), cfg)
	require.NoError(t, err)

	assert.Equal(t, 3460.0, b.DistanceCharge)
	assert.Equal(t, 3510.0, b.Subtotal)
	assert.Equal(t, "Long Distance", b.DistanceTier.Name)
	assert.Equal(t, 1.3, b.DistanceTier.Multiplier)
	assert.Equal(t, 4563.0, b.DistanceTier.Amount)
	assert.Nil(t, b.TimeSurcharge)
	assert.Equal(t, 4633.0, b.PreTaxTotal)
	assert.Equal(t, 463.3, b.Discounts["new_user"].Amount)
	assert.Equal(t, 4169.7, b.TaxableAmount)
	assert.True(t, b.MaximumChargeApplied)
	assert.False(t, b.MinimumChargeApplied)
	assert.Equal(t, cfg.MaximumCharge, b.Total)
}

func TestCalculateTotalAlwaysWithinClampBounds(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	distances := []float64{0.1, 1, 49.99, 50, 50.01, 120, 200, 201, 499, 500, 501, 2500}
	hours := []int{0, 5, 6, 9, 10, 14, 17, 20, 21, 22, 23}
	userTypes := []models.UserType{models.UserTypeNew, models.UserTypeReturning, models.UserTypePremium}

	for _, d := range distances {
		for _, h := range hours {
			for _, ut := range userTypes {
				req := baseRequest(d)
				req.PickupTime = pickupAt(h)
				req.UserType = ut
				req.BookingCount = 7
				b, err := Calculate(req, cfg)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, b.Total, cfg.MinimumCharge)
				assert.LessOrEqual(t, b.Total, cfg.MaximumCharge)
			}
		}
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	req := baseRequest(321.5)
	req.UserType = models.UserTypeReturning
	req.BookingCount = 9
	req.PickupTime = pickupAt(23)

	first, err := Calculate(req, cfg)
	require.NoError(t, err)
	second, err := Calculate(req, cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculateIsDeterministicWithFractionalFees(t *testing.T) {
	// Fractional fees make the float sum depend on addition order, so this
	// holds only because fee accumulation is independent of map iteration.
	cfg := models.DefaultPricingConfig()
	cfg.ServiceFees = map[string]float64{
		"handling_fee":  25.1,
		"insurance_fee": 15.3,
		"packaging_fee": 20.7,
		"tracking_fee":  10.9,
		"fragile_fee":   5.55,
		"oversize_fee":  12.05,
	}
	req := baseRequest(87.3)

	first, err := Calculate(req, cfg)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := Calculate(req, cfg)
		require.NoError(t, err)
		assert.Equal(t, first, again, "iteration %d", i)
	}
}

func TestDistanceTierBoundaries(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	cases := []struct {
		distance float64
		tier     string
		mult     float64
	}{
		{50, "Local", 1.0},
		{50.01, "Regional", 1.1},
		{200, "Regional", 1.1},
		{200.01, "Interstate", 1.2},
		{500, "Interstate", 1.2},
		{500.01, "Long Distance", 1.3},
	}
	for _, tc := range cases {
		b, err := Calculate(baseRequest(tc.distance), cfg)
		require.NoError(t, err)
		assert.Equal(t, tc.tier, b.DistanceTier.Name, "distance %v", tc.distance)
		assert.Equal(t, tc.mult, b.DistanceTier.Multiplier, "distance %v", tc.distance)
	}
}

func TestTimeSurchargeWindows(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	cases := []struct {
		hour int
		name string
	}{
		{22, "Night Service"},
		{23, "Night Service"},
		{0, "Night Service"},
		{5, "Night Service"},
		{6, "Morning Rush"},
		{9, "Morning Rush"},
		{17, "Evening Rush"},
		{20, "Evening Rush"},
	}
	for _, tc := range cases {
		req := baseRequest(10)
		req.PickupTime = pickupAt(tc.hour)
		b, err := Calculate(req, cfg)
		require.NoError(t, err)
		require.NotNil(t, b.TimeSurcharge, "hour %d", tc.hour)
		assert.Equal(t, tc.name, b.TimeSurcharge.Name, "hour %d", tc.hour)
	}

	// The windows are half-open: 10:00 exactly is outside Morning Rush,
	// 21:00 exactly is outside Evening Rush, 14:00 matches nothing.
	for _, hour := range []int{10, 14, 21} {
		req := baseRequest(10)
		req.PickupTime = pickupAt(hour)
		b, err := Calculate(req, cfg)
		require.NoError(t, err)
		assert.Nil(t, b.TimeSurcharge, "hour %d", hour)
	}
}

func TestNightWindowWinsOverEditedOverlap(t *testing.T) {
	// Even if a later window is edited to cover the same hours, only the
	// first match in config order applies.
	cfg := models.DefaultPricingConfig()
	cfg.TimeSurcharges = []models.TimeSurcharge{
		{Name: "Night Service", StartHour: 22, EndHour: 6, Multiplier: 1.15},
		{Name: "Late Evening", StartHour: 21, EndHour: 23, Multiplier: 1.05},
	}
	req := baseRequest(10)
	req.PickupTime = pickupAt(22)
	b, err := Calculate(req, cfg)
	require.NoError(t, err)
	require.NotNil(t, b.TimeSurcharge)
	assert.Equal(t, "Night Service", b.TimeSurcharge.Name)
}

func TestDiscountsAreMutuallyExclusive(t *testing.T) {
	cfg := models.DefaultPricingConfig()

	// New user with a high booking count still gets only the new-user cut.
	req := baseRequest(100)
	req.UserType = models.UserTypeNew
	req.BookingCount = 10
	b, err := Calculate(req, cfg)
	require.NoError(t, err)
	require.Len(t, b.Discounts, 1)
	assert.Contains(t, b.Discounts, "new_user")
	assert.Equal(t, 10.0, b.Discounts["new_user"].Percent)

	// Returning below the loyalty threshold gets nothing.
	req.UserType = models.UserTypeReturning
	req.BookingCount = 4
	b, err = Calculate(req, cfg)
	require.NoError(t, err)
	assert.Empty(t, b.Discounts)
	assert.Equal(t, 0.0, b.DiscountTotal)

	// At the threshold the loyalty discount fires.
	req.BookingCount = 5
	b, err = Calculate(req, cfg)
	require.NoError(t, err)
	require.Len(t, b.Discounts, 1)
	assert.Equal(t, 5.0, b.Discounts["loyalty"].Percent)

	req.UserType = models.UserTypePremium
	b, err = Calculate(req, cfg)
	require.NoError(t, err)
	require.Len(t, b.Discounts, 1)
	assert.Equal(t, 15.0, b.Discounts["premium"].Percent)
}

func TestStationTypeMultipliers(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	cases := []struct {
		src, dst models.StationType
		mult     float64
	}{
		{models.StationTypeRailway, models.StationTypeRailway, 1.0},
		{models.StationTypeRailway, models.StationTypeAirport, 1.2},
		{models.StationTypeAirport, models.StationTypeRailway, 1.2},
		{models.StationTypeAirport, models.StationTypeAirport, 1.4},
	}
	for _, tc := range cases {
		req := baseRequest(10)
		req.SourceStationType = tc.src
		req.DestinationStationType = tc.dst
		b, err := Calculate(req, cfg)
		require.NoError(t, err)
		assert.Equal(t, tc.mult, b.StationMultiplier.Multiplier)
	}
}

func TestOverridesApplyWithoutMutatingConfig(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	minimum := 200.0
	req := baseRequest(10)
	req.Overrides = &models.PricingOverrides{MinimumCharge: &minimum}

	b, err := Calculate(req, cfg)
	require.NoError(t, err)
	assert.True(t, b.MinimumChargeApplied)
	assert.Equal(t, 200.0, b.Total)

	// The caller's config value is untouched.
	assert.Equal(t, 100.0, cfg.MinimumCharge)

	// Fee overrides merge on a copy as well.
	req.Overrides = &models.PricingOverrides{ServiceFees: map[string]float64{"handling_fee": 40}}
	_, err = Calculate(req, cfg)
	require.NoError(t, err)
	assert.Equal(t, 25.0, cfg.ServiceFees["handling_fee"])
}

// A minimum configured above the maximum is a misconfiguration; the maximum
// still wins because the max clamp runs last.
func TestMaximumChargeWinsOverMisconfiguredMinimum(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	cfg.MinimumCharge = 5000
	cfg.MaximumCharge = 2000
	b, err := Calculate(baseRequest(10), cfg)
	require.NoError(t, err)
	assert.True(t, b.MinimumChargeApplied)
	assert.True(t, b.MaximumChargeApplied)
	assert.Equal(t, 2000.0, b.Total)
}

func TestEveryStoredAmountIsRoundedToTwoDecimals(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	req := baseRequest(123.457)
	req.UserType = models.UserTypePremium
	b, err := Calculate(req, cfg)
	require.NoError(t, err)

	for name, v := range map[string]float64{
		"base_price":      b.BasePrice,
		"distance_charge": b.DistanceCharge,
		"subtotal":        b.Subtotal,
		"station_amount":  b.StationMultiplier.Amount,
		"tier_amount":     b.DistanceTier.Amount,
		"pre_tax_total":   b.PreTaxTotal,
		"discount_total":  b.DiscountTotal,
		"taxable_amount":  b.TaxableAmount,
		"tax_total":       b.TaxTotal,
		"total":           b.Total,
	} {
		assert.Equal(t, round2(v), v, "%s not rounded", name)
	}
}
