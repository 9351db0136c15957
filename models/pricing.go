package models

import (
	"math"
	"time"
)

// UserType classifies the booking user for discount purposes.
type UserType string

const (
	UserTypeNew       UserType = "new"
	UserTypeReturning UserType = "returning"
	UserTypePremium   UserType = "premium"
)

// DistanceTier is a named distance bracket with a price multiplier.
// Tiers are evaluated in order; the first tier whose upper bound covers the
// distance applies, so the bracket bounds are inclusive on the lower tier.
type DistanceTier struct {
	Name       string  `bson:"name" json:"name"`
	MinKm      float64 `bson:"min_km" json:"min_km"`
	MaxKm      float64 `bson:"max_km" json:"max_km"`
	Multiplier float64 `bson:"multiplier" json:"multiplier"`
}

// TimeSurcharge is a named hour-of-day window with a price multiplier.
// A window with StartHour > EndHour wraps past midnight.
type TimeSurcharge struct {
	Name       string  `bson:"name" json:"name"`
	StartHour  int     `bson:"start_hour" json:"start_hour"`
	EndHour    int     `bson:"end_hour" json:"end_hour"`
	Multiplier float64 `bson:"multiplier" json:"multiplier"`
}

// Matches reports whether the given hour-of-day falls inside the window.
// Windows are half-open: [StartHour, EndHour).
func (w TimeSurcharge) Matches(hour int) bool {
	if w.StartHour > w.EndHour {
		return hour >= w.StartHour || hour < w.EndHour
	}
	return hour >= w.StartHour && hour < w.EndHour
}

// PricingConfig holds every tunable the pricing engine consults. It is an
// immutable value: callers pass it in per calculation, there is no shared
// mutable default.
type PricingConfig struct {
	Currency      string  `json:"currency"`
	BasePrice     float64 `json:"base_price"`
	PricePerKm    float64 `json:"price_per_km"`
	MinimumCharge float64 `json:"minimum_charge"`
	MaximumCharge float64 `json:"maximum_charge"`

	StationTypeMultipliers map[string]float64 `json:"station_type_multipliers"`
	DistanceTiers          []DistanceTier     `json:"distance_tiers"`
	TimeSurcharges         []TimeSurcharge    `json:"time_surcharges"`
	ServiceFees            map[string]float64 `json:"service_fees"`

	GSTRate        float64 `json:"gst_rate"`
	ServiceTaxRate float64 `json:"service_tax_rate"`

	NewUserDiscountRate float64 `json:"new_user_discount_rate"`
	LoyaltyDiscountRate float64 `json:"loyalty_discount_rate"`
	LoyaltyMinBookings  int     `json:"loyalty_min_bookings"`
	PremiumDiscountRate float64 `json:"premium_discount_rate"`
}

// DefaultPricingConfig returns the stock configuration. A fresh value is
// built on every call so callers can never alias the maps and slices.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		Currency:      "INR",
		BasePrice:     50,
		PricePerKm:    2.5,
		MinimumCharge: 100,
		MaximumCharge: 2000,
		StationTypeMultipliers: map[string]float64{
			"railway-railway": 1.0,
			"railway-airport": 1.2,
			"airport-railway": 1.2,
			"airport-airport": 1.4,
		},
		DistanceTiers: []DistanceTier{
			{Name: "Local", MinKm: 0, MaxKm: 50, Multiplier: 1.0},
			{Name: "Regional", MinKm: 51, MaxKm: 200, Multiplier: 1.1},
			{Name: "Interstate", MinKm: 201, MaxKm: 500, Multiplier: 1.2},
			{Name: "Long Distance", MinKm: 501, MaxKm: math.Inf(1), Multiplier: 1.3},
		},
		TimeSurcharges: []TimeSurcharge{
			{Name: "Night Service", StartHour: 22, EndHour: 6, Multiplier: 1.15},
			{Name: "Morning Rush", StartHour: 6, EndHour: 10, Multiplier: 1.05},
			{Name: "Evening Rush", StartHour: 17, EndHour: 21, Multiplier: 1.05},
		},
		ServiceFees: map[string]float64{
			"handling_fee":  25,
			"insurance_fee": 15,
			"packaging_fee": 20,
			"tracking_fee":  10,
		},
		GSTRate:             0.18,
		ServiceTaxRate:      0.05,
		NewUserDiscountRate: 0.10,
		LoyaltyDiscountRate: 0.05,
		LoyaltyMinBookings:  5,
		PremiumDiscountRate: 0.15,
	}
}

// PricingOverrides is a partial configuration supplied per request. Only
// non-nil fields replace the corresponding config value.
type PricingOverrides struct {
	BasePrice     *float64           `json:"base_price,omitempty"`
	PricePerKm    *float64           `json:"price_per_km,omitempty"`
	MinimumCharge *float64           `json:"minimum_charge,omitempty"`
	MaximumCharge *float64           `json:"maximum_charge,omitempty"`
	ServiceFees   map[string]float64 `json:"service_fees,omitempty"`
}

// WithOverrides returns a copy of the config with the overrides applied.
// The receiver is never mutated.
func (c PricingConfig) WithOverrides(o *PricingOverrides) PricingConfig {
	if o == nil {
		return c
	}
	out := c
	if o.BasePrice != nil {
		out.BasePrice = *o.BasePrice
	}
	if o.PricePerKm != nil {
		out.PricePerKm = *o.PricePerKm
	}
	if o.MinimumCharge != nil {
		out.MinimumCharge = *o.MinimumCharge
	}
	if o.MaximumCharge != nil {
		out.MaximumCharge = *o.MaximumCharge
	}
	if len(o.ServiceFees) > 0 {
		fees := make(map[string]float64, len(c.ServiceFees))
		for k, v := range c.ServiceFees {
			fees[k] = v
		}
		for k, v := range o.ServiceFees {
			fees[k] = v
		}
		out.ServiceFees = fees
	}
	return out
}

// PricingRequest is the input to the pricing engine.
type PricingRequest struct {
	DistanceKm             float64           `json:"distance_km"`
	SourceStationType      StationType       `json:"source_station_type"`
	DestinationStationType StationType       `json:"destination_station_type"`
	PickupTime             time.Time         `json:"pickup_time,omitempty"`
	UserType               UserType          `json:"user_type,omitempty"`
	BookingCount           int               `json:"booking_count,omitempty"`
	Overrides              *PricingOverrides `json:"config_overrides,omitempty"`
}

// AppliedMultiplier records one multiplicative stage of the pipeline: the
// rule that fired and the running amount after it was applied.
type AppliedMultiplier struct {
	Name       string  `bson:"name" json:"name"`
	Multiplier float64 `bson:"multiplier" json:"multiplier"`
	Amount     float64 `bson:"amount" json:"amount"`
}

// AppliedDiscount records a percentage discount and the amount it removed.
type AppliedDiscount struct {
	Percent float64 `bson:"percent" json:"percent"`
	Amount  float64 `bson:"amount" json:"amount"`
}

// AppliedTax records a tax component as percentage plus computed amount.
type AppliedTax struct {
	Percent float64 `bson:"percent" json:"percent"`
	Amount  float64 `bson:"amount" json:"amount"`
}

// PricingBreakdown is the itemized output of the pricing engine. Every
// monetary field is rounded to 2 decimals before being stored, so the
// sub-fields sum consistently with the displayed total. Once embedded in a
// booking the breakdown is a snapshot and is never recomputed.
type PricingBreakdown struct {
	Currency       string  `bson:"currency" json:"currency"`
	DistanceKm     float64 `bson:"distance_km" json:"distance_km"`
	BasePrice      float64 `bson:"base_price" json:"base_price"`
	DistanceCharge float64 `bson:"distance_charge" json:"distance_charge"`
	Subtotal       float64 `bson:"subtotal" json:"subtotal"`

	StationMultiplier AppliedMultiplier  `bson:"station_multiplier" json:"station_multiplier"`
	DistanceTier      AppliedMultiplier  `bson:"distance_tier" json:"distance_tier"`
	TimeSurcharge     *AppliedMultiplier `bson:"time_surcharge,omitempty" json:"time_surcharge,omitempty"`

	ServiceFees     map[string]float64 `bson:"service_fees" json:"service_fees"`
	ServiceFeeTotal float64            `bson:"service_fee_total" json:"service_fee_total"`
	PreTaxTotal     float64            `bson:"pre_tax_total" json:"pre_tax_total"`

	Discounts     map[string]AppliedDiscount `bson:"discounts" json:"discounts"`
	DiscountTotal float64                    `bson:"discount_total" json:"discount_total"`
	TaxableAmount float64                    `bson:"taxable_amount" json:"taxable_amount"`

	Taxes    map[string]AppliedTax `bson:"taxes" json:"taxes"`
	TaxTotal float64               `bson:"tax_total" json:"tax_total"`

	MinimumChargeApplied bool    `bson:"minimum_charge_applied" json:"minimum_charge_applied"`
	MaximumChargeApplied bool    `bson:"maximum_charge_applied" json:"maximum_charge_applied"`
	Total                float64 `bson:"total" json:"total"`
}

// QuoteEstimate is the display-only quick quote: a total plus an
// intentionally wide band around it. It is not a binding price.
type QuoteEstimate struct {
	Currency  string  `json:"currency"`
	Total     float64 `json:"total"`
	RangeLow  float64 `json:"range_low"`
	RangeHigh float64 `json:"range_high"`
}
