package listing

import (
	"covoit/internal/command/common"
	"covoit/pkg/model"

	"github.com/urfave/cli/v2"
)

const (
	prefixFrom = "from"
	prefixTo   = "to"

	paramAt          = "at"
	paramFlexibility = "flex"
	paramSeats       = "seats"
	paramVehicle     = "vehicle"
)

func addressFlags(prefix string, cityRequired bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: prefix + "-number", Usage: "House number"},
		&cli.StringFlag{Name: prefix + "-street", Usage: "Street name or fragment"},
		&cli.StringFlag{Name: prefix + "-postal-code", Usage: "Postal code"},
		&cli.StringFlag{Name: prefix + "-city", Required: cityRequired, Usage: "City name or fragment"},
	}
}

func readAddress(cCtx *cli.Context, prefix string) model.Address {
	return model.Address{
		Number:     cCtx.String(prefix + "-number"),
		Street:     cCtx.String(prefix + "-street"),
		PostalCode: cCtx.String(prefix + "-postal-code"),
		City:       cCtx.String(prefix + "-city"),
	}
}

func listingInputFlags(required bool) []cli.Flag {
	flags := []cli.Flag{
		common.TimeFlag(paramAt, "Departure time", required),
		&cli.IntFlag{Name: paramSeats, Required: required, Usage: "Seats in the car, driver included"},
		&cli.Int64Flag{Name: paramVehicle, Required: required, Usage: "ID of the personal vehicle used"},
	}
	flags = append(flags, addressFlags(prefixFrom, required)...)
	return append(flags, addressFlags(prefixTo, required)...)
}

// readListingInput overlays the flags that were set on base.
func readListingInput(cCtx *cli.Context, base model.ListingInput) model.ListingInput {
	if cCtx.IsSet(paramAt) {
		base.DepartureTime = common.Time(cCtx, paramAt)
	}
	if cCtx.IsSet(paramSeats) {
		base.TotalSeats = cCtx.Int(paramSeats)
	}
	if cCtx.IsSet(paramVehicle) {
		base.VehicleID = cCtx.Int64(paramVehicle)
	}
	base.Origin = overlayAddress(cCtx, prefixFrom, base.Origin)
	base.Destination = overlayAddress(cCtx, prefixTo, base.Destination)
	return base
}

func overlayAddress(cCtx *cli.Context, prefix string, a model.Address) model.Address {
	set := readAddress(cCtx, prefix)
	if cCtx.IsSet(prefix + "-number") {
		a.Number = set.Number
	}
	if cCtx.IsSet(prefix + "-street") {
		a.Street = set.Street
	}
	if cCtx.IsSet(prefix + "-postal-code") {
		a.PostalCode = set.PostalCode
	}
	if cCtx.IsSet(prefix + "-city") {
		a.City = set.City
	}
	return a
}
