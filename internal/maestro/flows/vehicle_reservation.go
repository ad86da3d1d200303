package flows

import (
	"covoit/internal/availability"
	maestro "covoit/internal/maestro/core"
	"covoit/internal/maestro/types"
	"covoit/pkg/model"
)

// required: dateDebut, dateFin
func CompanyAvailability() maestro.Flow {
	return maestro.NewFlow(COMPANY_AVAILABILITY,
		maestro.NewStep("parse_window", ParseWindow),
		maestro.NewStep("list_available_vehicles", listAvailableVehicles),
	)
}

// required: vehiculeId, dateDebut, dateFin
func ReserveCompanyVehicle() maestro.Flow {
	return maestro.NewFlow(RESERVE_COMPANY_VEHICLE,
		maestro.NewStep("parse_window", ParseWindow),
		maestro.NewStep("parse_vehicle", ParseVehicleID),
		maestro.NewStep("reserve", reserveVehicle),
	)
}

// required: dateDebut, dateFin
// optional: excludeReservationId
func CheckOverlap() maestro.Flow {
	return maestro.NewFlow(CHECK_OVERLAP,
		maestro.NewStep("parse_window", ParseWindow),
		maestro.NewStep("load_my_reservations", loadMyReservations),
		maestro.NewStep("compute_conflicts", computeConflicts),
	)
}

func listAvailableVehicles(ctx *maestro.MaestroContext) error {
	vehicles, err := ctx.Deps.Availability.AvailableCompanyVehicles(ctx.Ctx, window(ctx))
	if err != nil {
		return err
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}
	ctx.Output["result"] = types.CompanyAvailabilityOutput{Vehicles: vehicles}
	return nil
}

func reserveVehicle(ctx *maestro.MaestroContext) error {
	input := model.VehicleReservationInput{
		VehicleID:  ctx.Process[VEHICLE_ID].(int64),
		TimeWindow: window(ctx),
	}
	reservation, err := ctx.Deps.Availability.Reserve(ctx.Ctx, input)
	if err != nil {
		return err
	}
	ctx.Output["result"] = types.ReserveCompanyVehicleOutput{Reservation: reservation}
	return nil
}

func loadMyReservations(ctx *maestro.MaestroContext) error {
	mine, err := ctx.Deps.Availability.MyReservations(ctx.Ctx)
	if err != nil {
		return err
	}
	ctx.Process[MY_RESERVATIONS] = mine
	return nil
}

// computeConflicts reports overlaps instead of failing, so callers can
// show the clashing bookings next to the form.
func computeConflicts(ctx *maestro.MaestroContext) error {
	candidate := window(ctx)
	excludeID := ctx.Process[EXCLUDE_ID].(int64)
	mine := ctx.Process[MY_RESERVATIONS].([]model.ReservationInterval)
	existing := make([]model.ReservationInterval, 0, len(mine))
	for _, r := range mine {
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		existing = append(existing, r)
	}

	conflicts := availability.Conflicts(candidate, existing)
	ctx.Output["result"] = types.CheckOverlapOutput{
		Overlaps:  len(conflicts) > 0,
		Conflicts: conflicts,
	}
	return nil
}
