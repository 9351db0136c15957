package pricing

import (
	"time"

	"luggagelite/models"
)

// QuickQuote runs the full pipeline with defaults (new user, pickup now)
// and returns the total plus a wide display-only estimate band. The band is
// not a binding price.
func QuickQuote(distanceKm float64, source, destination models.StationType, cfg models.PricingConfig) (*models.QuoteEstimate, error) {
	breakdown, err := Calculate(models.PricingRequest{
		DistanceKm:             distanceKm,
		SourceStationType:      source,
		DestinationStationType: destination,
		PickupTime:             time.Now(),
		UserType:               models.UserTypeNew,
	}, cfg)
	if err != nil {
		return nil, err
	}
	return &models.QuoteEstimate{
		Currency:  breakdown.Currency,
		Total:     breakdown.Total,
		RangeLow:  round2(breakdown.Total * 0.9),
		RangeHigh: round2(breakdown.Total * 1.1),
	}, nil
}
