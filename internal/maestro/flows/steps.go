package flows

import (
	maestro "covoit/internal/maestro/core"
	"covoit/internal/maestro/types"
	apperrors "covoit/pkg/errors"
	"covoit/pkg/model"
)

const (
	SEARCH_LISTINGS         = "search_listings"
	COMPANY_AVAILABILITY    = "company_availability"
	RESERVE_COMPANY_VEHICLE = "reserve_company_vehicle"
	CHECK_OVERLAP           = "check_overlap"
)

// Process keys
const (
	WINDOW              = "window"
	EXCLUDE_ID          = "exclude_id"
	VEHICLE_ID          = "vehicule_id"
	MY_RESERVATIONS     = "my_reservations"
	VEHICLE_RESERVATION = "vehicle_reservation"
)

// All returns every flow the gateway serves.
func All() []maestro.Flow {
	return []maestro.Flow{
		SearchListings(),
		CompanyAvailability(),
		ReserveCompanyVehicle(),
		CheckOverlap(),
	}
}

// ParseWindow reads dateDebut and dateFin and rejects empty or inverted
// windows before any backend call.
func ParseWindow(ctx *maestro.MaestroContext) error {
	var in types.WindowInput
	if err := ctx.Bind(&in); err != nil {
		return err
	}

	details := map[string]any{}
	if in.Start.IsZero() {
		details["dateDebut"] = "dateDebut is required"
	}
	if in.End.IsZero() {
		details["dateFin"] = "dateFin is required"
	}
	if len(details) > 0 {
		return apperrors.Validation("Missing required parameter", details)
	}
	if !in.Start.Before(in.End) {
		return apperrors.Validation("Invalid time window", map[string]any{
			"dateFin": "dateFin must be after dateDebut",
		})
	}

	ctx.Process[WINDOW] = in.TimeWindow
	ctx.Process[EXCLUDE_ID] = in.ExcludeReservationID
	return nil
}

func ParseVehicleID(ctx *maestro.MaestroContext) error {
	id, ok := ctx.ExtractInt64("vehiculeId")
	if !ok {
		return maestro.MissingParamErr("vehiculeId")
	}
	if id <= 0 {
		return apperrors.InvalidInput("vehiculeId must be positive")
	}
	ctx.Process[VEHICLE_ID] = id
	return nil
}

func window(ctx *maestro.MaestroContext) model.TimeWindow {
	return ctx.Process[WINDOW].(model.TimeWindow)
}
