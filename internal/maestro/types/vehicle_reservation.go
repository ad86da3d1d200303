package types

import "covoit/pkg/model"

// WindowInput is shared by the availability and overlap flows.
type WindowInput struct {
	model.TimeWindow
	ExcludeReservationID int64 `json:"excludeReservationId,omitempty"`
}

type CheckOverlapOutput struct {
	Overlaps  bool                        `json:"overlaps"`
	Conflicts []model.ReservationInterval `json:"conflicts,omitempty"`
}

type CompanyAvailabilityOutput struct {
	Vehicles []model.Vehicle `json:"vehicles"`
}

type ReserveCompanyVehicleOutput struct {
	Reservation *model.ReservationInterval `json:"reservation"`
}
