package pricing

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"luggagelite/models"
)

// ErrInvalidInput reports malformed or out-of-range pricing input.
var ErrInvalidInput = errors.New("invalid pricing input")

// round2 rounds to 2 decimal places. Every monetary value is rounded before
// it is stored in the breakdown so sub-fields sum consistently with the
// total across platforms.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Calculate runs the pricing pipeline and returns an itemized breakdown.
// It is pure: no I/O, no persisted state, and deterministic for a fixed
// PickupTime. Callers wanting reproducible output must set PickupTime
// explicitly; a zero value falls back to time.Now().
//
// Pipeline order: base + per-km, station-type multiplier, distance tier,
// time-of-day surcharge (first matching window only), additive service
// fees, discounts computed on the same pre-tax base, taxes, final clamp.
func Calculate(req models.PricingRequest, cfg models.PricingConfig) (*models.PricingBreakdown, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}
	cfg = cfg.WithOverrides(req.Overrides)

	pickup := req.PickupTime
	if pickup.IsZero() {
		pickup = time.Now()
	}

	b := &models.PricingBreakdown{
		Currency:       cfg.Currency,
		DistanceKm:     req.DistanceKm,
		BasePrice:      round2(cfg.BasePrice),
		DistanceCharge: round2(req.DistanceKm * cfg.PricePerKm),
	}
	b.Subtotal = round2(b.BasePrice + b.DistanceCharge)
	running := b.Subtotal

	// Station-type multiplier.
	route := fmt.Sprintf("%s-%s", req.SourceStationType, req.DestinationStationType)
	mult, ok := cfg.StationTypeMultipliers[route]
	if !ok {
		mult = 1.0
	}
	running = round2(running * mult)
	b.StationMultiplier = models.AppliedMultiplier{Name: route, Multiplier: mult, Amount: running}

	// Distance tier. Tiers are ordered; the first tier whose upper bound
	// covers the distance wins, which makes each bracket boundary
	// inclusive on the lower tier (50 is Local, 50.01 is Regional).
	tier := pickTier(cfg.DistanceTiers, req.DistanceKm)
	running = round2(running * tier.Multiplier)
	b.DistanceTier = models.AppliedMultiplier{Name: tier.Name, Multiplier: tier.Multiplier, Amount: running}

	// Time-of-day surcharge. Windows may overlap; only the first match in
	// config order ever applies.
	if w, ok := pickTimeWindow(cfg.TimeSurcharges, pickup.Hour()); ok {
		running = round2(running * w.Multiplier)
		b.TimeSurcharge = &models.AppliedMultiplier{Name: w.Name, Multiplier: w.Multiplier, Amount: running}
	}

	// Service fees are additive. Summation walks the fee names in sorted
	// order so the float accumulation is identical on every call; map
	// iteration order would make fractional fees sum differently between
	// runs.
	feeNames := make([]string, 0, len(cfg.ServiceFees))
	for name := range cfg.ServiceFees {
		feeNames = append(feeNames, name)
	}
	sort.Strings(feeNames)

	b.ServiceFees = make(map[string]float64, len(cfg.ServiceFees))
	feeTotal := 0.0
	for _, name := range feeNames {
		amount := round2(cfg.ServiceFees[name])
		b.ServiceFees[name] = amount
		feeTotal += amount
	}
	b.ServiceFeeTotal = round2(feeTotal)
	b.PreTaxTotal = round2(running + b.ServiceFeeTotal)

	// Discounts: every triggered discount is a percentage of the same
	// pre-tax base, summed and subtracted once (never compounded). The
	// user type is a single enum so at most one branch fires.
	b.Discounts = applyDiscounts(cfg, req, b.PreTaxTotal)
	discountTotal := 0.0
	for _, d := range b.Discounts {
		discountTotal += d.Amount
	}
	b.DiscountTotal = round2(discountTotal)
	b.TaxableAmount = round2(b.PreTaxTotal - b.DiscountTotal)

	// Taxes on the post-discount amount.
	gst := round2(b.TaxableAmount * cfg.GSTRate)
	serviceTax := round2(b.TaxableAmount * cfg.ServiceTaxRate)
	b.Taxes = map[string]models.AppliedTax{
		"gst":         {Percent: round2(cfg.GSTRate * 100), Amount: gst},
		"service_tax": {Percent: round2(cfg.ServiceTaxRate * 100), Amount: serviceTax},
	}
	b.TaxTotal = round2(gst + serviceTax)

	// Final clamp. The max check runs after the min check so a misconfigured
	// minimum above the maximum still yields the maximum.
	total := round2(b.TaxableAmount + b.TaxTotal)
	if total < cfg.MinimumCharge {
		total = cfg.MinimumCharge
		b.MinimumChargeApplied = true
	}
	if total > cfg.MaximumCharge {
		total = cfg.MaximumCharge
		b.MaximumChargeApplied = true
	}
	b.Total = round2(total)

	return b, nil
}

func validate(req *models.PricingRequest) error {
	if math.IsNaN(req.DistanceKm) || math.IsInf(req.DistanceKm, 0) || req.DistanceKm <= 0 {
		return fmt.Errorf("%w: distance_km must be a positive finite number, got %v", ErrInvalidInput, req.DistanceKm)
	}
	if !req.SourceStationType.Valid() {
		return fmt.Errorf("%w: unknown source station type %q", ErrInvalidInput, req.SourceStationType)
	}
	if !req.DestinationStationType.Valid() {
		return fmt.Errorf("%w: unknown destination station type %q", ErrInvalidInput, req.DestinationStationType)
	}
	if req.BookingCount < 0 {
		return fmt.Errorf("%w: booking_count must not be negative", ErrInvalidInput)
	}
	switch req.UserType {
	case models.UserTypeNew, models.UserTypeReturning, models.UserTypePremium:
	case "":
		req.UserType = models.UserTypeNew
	default:
		return fmt.Errorf("%w: unknown user type %q", ErrInvalidInput, req.UserType)
	}
	return nil
}

func pickTier(tiers []models.DistanceTier, distanceKm float64) models.DistanceTier {
	for _, t := range tiers {
		if distanceKm <= t.MaxKm {
			return t
		}
	}
	// Open-ended last tier catches everything; reaching here means the
	// config has no unbounded tier, so fall back to a neutral multiplier.
	return models.DistanceTier{Name: "Unclassified", Multiplier: 1.0}
}

func pickTimeWindow(windows []models.TimeSurcharge, hour int) (models.TimeSurcharge, bool) {
	for _, w := range windows {
		if w.Matches(hour) {
			return w, true
		}
	}
	return models.TimeSurcharge{}, false
}

func applyDiscounts(cfg models.PricingConfig, req models.PricingRequest, preTax float64) map[string]models.AppliedDiscount {
	discounts := make(map[string]models.AppliedDiscount)
	switch req.UserType {
	case models.UserTypeNew:
		discounts["new_user"] = models.AppliedDiscount{
			Percent: round2(cfg.NewUserDiscountRate * 100),
			Amount:  round2(preTax * cfg.NewUserDiscountRate),
		}
	case models.UserTypeReturning:
		if req.BookingCount >= cfg.LoyaltyMinBookings {
			discounts["loyalty"] = models.AppliedDiscount{
				Percent: round2(cfg.LoyaltyDiscountRate * 100),
				Amount:  round2(preTax * cfg.LoyaltyDiscountRate),
			}
		}
	case models.UserTypePremium:
		discounts["premium"] = models.AppliedDiscount{
			Percent: round2(cfg.PremiumDiscountRate * 100),
			Amount:  round2(preTax * cfg.PremiumDiscountRate),
		}
	}
	return discounts
}
