package models

import "time"

// StaffRole controls which lifecycle actions a staff member may perform.
type StaffRole string

const (
	// RoleCounter staff handle pickup and delivery at their own station.
	RoleCounter StaffRole = "counter"
	// RoleAdmin staff may additionally cancel bookings they do not own.
	RoleAdmin StaffRole = "admin"
)

// Staff is a counter employee assigned to one station. Full staff account
// management (clock-in/out, password reset) lives outside this service;
// bookings only consume identity, role and station assignment.
type Staff struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	StationID    string    `bson:"station_id" json:"station_id"`
	Role         StaffRole `bson:"role" json:"role"`
	Active       bool      `bson:"active" json:"active"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
