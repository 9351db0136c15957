package handlers

import (
	staffRepo "luggagelite/database/repository/staff"
)

// HandlerBundle groups every handler the router needs, assembled once in
// main and handed to route registration.
type HandlerBundle struct {
	Booking   *BookingHandler
	Pricing   *PricingHandler
	Stations  *StationHandler
	StaffAuth *StaffAuthHandler

	// StaffRepo backs the staff auth middleware.
	StaffRepo staffRepo.StaffRepository
}
