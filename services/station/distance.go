package station

import (
	"math"

	"luggagelite/models"
)

// earthRadiusKm is the mean Earth radius used by the great-circle formula.
const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(a, b models.Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180.0
	lat2 := b.Latitude * math.Pi / 180.0
	dlat := (b.Latitude - a.Latitude) * math.Pi / 180.0
	dlng := (b.Longitude - a.Longitude) * math.Pi / 180.0

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
