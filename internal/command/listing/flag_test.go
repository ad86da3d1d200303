package listing

import (
	"testing"
	"time"

	"covoit/pkg/model"

	"github.com/urfave/cli/v2"
)

func runWithFlags(t *testing.T, base model.ListingInput, args ...string) model.ListingInput {
	t.Helper()

	var got model.ListingInput
	app := &cli.App{
		Name: "covoit",
		Commands: []*cli.Command{{
			Name:  "update",
			Flags: listingInputFlags(false),
			Action: func(cCtx *cli.Context) error {
				got = readListingInput(cCtx, base)
				return nil
			},
		}},
	}
	if err := app.Run(append([]string{"covoit", "update"}, args...)); err != nil {
		t.Fatalf("run: %v", err)
	}
	return got
}

func TestReadListingInput_OverlaysOnlySetFlags(t *testing.T) {
	departure := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	base := model.ListingInput{
		DepartureTime: departure,
		Origin:        model.Address{Number: "12", Street: "Rue de la Gare", PostalCode: "30000", City: "Nîmes"},
		Destination:   model.Address{City: "Montpellier"},
		TotalSeats:    4,
		VehicleID:     7,
	}

	got := runWithFlags(t, base, "--seats", "5", "--to-street", "Avenue de Toulouse")

	if got.TotalSeats != 5 {
		t.Errorf("TotalSeats = %d, want 5", got.TotalSeats)
	}
	if got.VehicleID != 7 || !got.DepartureTime.Equal(departure) {
		t.Errorf("unset flags must keep current values, got %+v", got)
	}
	if got.Origin != base.Origin {
		t.Errorf("origin changed: %+v", got.Origin)
	}
	if got.Destination.City != "Montpellier" || got.Destination.Street != "Avenue de Toulouse" {
		t.Errorf("unexpected destination %+v", got.Destination)
	}
}

func TestReadListingInput_ParsesDeparture(t *testing.T) {
	got := runWithFlags(t, model.ListingInput{}, "--at", "2025-06-01T14:00:00+02:00", "--from-city", "Nice")

	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if !got.DepartureTime.Equal(want) {
		t.Errorf("DepartureTime = %s, want %s", got.DepartureTime, want)
	}
	if got.Origin.City != "Nice" {
		t.Errorf("Origin.City = %q", got.Origin.City)
	}
}
