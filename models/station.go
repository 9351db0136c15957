package models

import "time"

// StationType distinguishes the two kinds of counters we operate.
type StationType string

const (
	StationTypeRailway StationType = "railway"
	StationTypeAirport StationType = "airport"
)

// Valid reports whether the station type is one of the supported kinds.
func (t StationType) Valid() bool {
	return t == StationTypeRailway || t == StationTypeAirport
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Station is a physical counter location (railway station or airport).
type Station struct {
	ID          string      `bson:"id" json:"id"`
	Name        string      `bson:"name" json:"name"`
	Code        string      `bson:"code" json:"code"`
	City        string      `bson:"city" json:"city"`
	State       string      `bson:"state" json:"state"`
	Type        StationType `bson:"type" json:"type"`
	Coordinates Coordinates `bson:"coordinates" json:"coordinates"`
	Active      bool        `bson:"active" json:"active"`
	CreatedAt   time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `bson:"updated_at" json:"updated_at"`
}

// StationSnapshot is the subset of station identity copied into a booking at
// creation time. Bookings keep pricing and tracking stable even if the live
// station record changes later.
type StationSnapshot struct {
	ID   string      `bson:"id" json:"id"`
	Name string      `bson:"name" json:"name"`
	Code string      `bson:"code" json:"code"`
	Type StationType `bson:"type" json:"type"`
}

// Snapshot copies the identity fields of the station.
func (s *Station) Snapshot() StationSnapshot {
	return StationSnapshot{
		ID:   s.ID,
		Name: s.Name,
		Code: s.Code,
		Type: s.Type,
	}
}
