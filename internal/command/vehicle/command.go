// Package vehicle holds the personal and company fleet commands.
package vehicle

import (
	"fmt"
	"io"
	"strings"

	"covoit/internal/command/common"
	"covoit/pkg/model"

	"github.com/urfave/cli/v2"
)

const (
	paramKind         = "kind"
	paramPlate        = "plate"
	paramBrand        = "brand"
	paramModel        = "model"
	paramSeats        = "seats"
	paramCategory     = "category"
	paramMotorization = "motorization"
	paramPhoto        = "photo"
	paramStatus       = "status"
	paramFrom         = "from"
	paramTo           = "to"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "vehicle",
		Usage: "Manage personal and company vehicles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    paramKind,
				Aliases: []string{"k"},
				Value:   string(model.PersonalVehicle),
				Usage:   fmt.Sprintf("Fleet to work on (%s or %s)", model.PersonalVehicle, model.CompanyVehicle),
			},
		},
		Subcommands: []*cli.Command{
			listCommand(),
			showCommand(),
			createCommand(),
			updateCommand(),
			deleteCommand(),
			availableCommand(),
		},
	}
}

func kind(cCtx *cli.Context) model.VehicleKind {
	return model.VehicleKind(strings.ToLower(cCtx.String(paramKind)))
}

func vehicleFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: paramPlate, Required: required, Usage: "Registration plate, e.g. AB-123-CD"},
		&cli.StringFlag{Name: paramBrand, Required: required, Usage: "Brand"},
		&cli.StringFlag{Name: paramModel, Required: required, Usage: "Model"},
		&cli.IntFlag{Name: paramSeats, Required: required, Usage: "Seats, driver included"},
		&cli.StringFlag{Name: paramCategory, Usage: "Category"},
		&cli.StringFlag{Name: paramMotorization, Usage: "Motorization"},
		&cli.StringFlag{Name: paramPhoto, Usage: "Photo URL"},
		&cli.StringFlag{Name: paramStatus, Usage: "Company vehicles only: EN_SERVICE, EN_REPARATION or HORS_SERVICE"},
	}
}

// readVehicle overlays the flags that were set on base.
func readVehicle(cCtx *cli.Context, base model.Vehicle) model.Vehicle {
	str := map[string]*string{
		paramPlate:        &base.Plate,
		paramBrand:        &base.Brand,
		paramModel:        &base.Model,
		paramCategory:     &base.Category,
		paramMotorization: &base.Motorization,
		paramPhoto:        &base.PhotoURL,
	}
	for name, field := range str {
		if cCtx.IsSet(name) {
			*field = cCtx.String(name)
		}
	}
	if cCtx.IsSet(paramSeats) {
		base.Seats = cCtx.Int(paramSeats)
	}
	if cCtx.IsSet(paramStatus) {
		base.Status = model.VehicleStatus(strings.ToUpper(cCtx.String(paramStatus)))
	}
	return base
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the vehicles of a fleet",
		Action: func(cCtx *cli.Context) error {
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			vehicles, err := svc.Vehicles.List(cCtx.Context, kind(cCtx))
			if err != nil {
				return err
			}
			return common.Print(cCtx, vehicles, func(w io.Writer) { printVehicles(w, vehicles) })
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one vehicle",
		ArgsUsage: "<id>",
		Action: func(cCtx *cli.Context) error {
			id, err := common.ArgID(cCtx, 0, "vehicle id")
			if err != nil {
				return err
			}
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			v, err := svc.Vehicles.Get(cCtx.Context, kind(cCtx), id)
			if err != nil {
				return err
			}
			return common.Print(cCtx, v, func(w io.Writer) { printVehicles(w, []model.Vehicle{*v}) })
		},
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Register a vehicle",
		Flags: vehicleFlags(true),
		Action: func(cCtx *cli.Context) error {
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			v, err := svc.Vehicles.Create(cCtx.Context, kind(cCtx), readVehicle(cCtx, model.Vehicle{}))
			if err != nil {
				return err
			}
			return common.Print(cCtx, v, func(w io.Writer) {
				fmt.Fprintf(w, "Vehicle %d (%s) created.\n", v.ID, v.Plate)
			})
		},
	}
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Edit a vehicle",
		ArgsUsage: "<id>",
		Flags:     vehicleFlags(false),
		Action: func(cCtx *cli.Context) error {
			id, err := common.ArgID(cCtx, 0, "vehicle id")
			if err != nil {
				return err
			}
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			current, err := svc.Vehicles.Get(cCtx.Context, kind(cCtx), id)
			if err != nil {
				return err
			}
			v, err := svc.Vehicles.Update(cCtx.Context, kind(cCtx), id, readVehicle(cCtx, *current))
			if err != nil {
				return err
			}
			return common.Print(cCtx, v, func(w io.Writer) {
				fmt.Fprintf(w, "Vehicle %d updated.\n", v.ID)
			})
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Remove a vehicle",
		ArgsUsage: "<id>",
		Action: func(cCtx *cli.Context) error {
			id, err := common.ArgID(cCtx, 0, "vehicle id")
			if err != nil {
				return err
			}
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			if err := svc.Vehicles.Delete(cCtx.Context, kind(cCtx), id); err != nil {
				return err
			}
			return common.Done(cCtx, "Vehicle %d deleted.", id)
		},
	}
}

func availableCommand() *cli.Command {
	return &cli.Command{
		Name:  "available",
		Usage: "List the company vehicles free over a period",
		Flags: []cli.Flag{
			common.TimeFlag(paramFrom, "Start of the period", true),
			common.TimeFlag(paramTo, "End of the period", true),
		},
		Action: func(cCtx *cli.Context) error {
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			window := model.NewTimeWindow(common.Time(cCtx, paramFrom), common.Time(cCtx, paramTo))
			vehicles, err := svc.Availability.AvailableCompanyVehicles(cCtx.Context, window)
			if err != nil {
				return err
			}
			return common.Print(cCtx, vehicles, func(w io.Writer) {
				if len(vehicles) == 0 {
					fmt.Fprintln(w, "No company vehicle is free over this period.")
					return
				}
				printVehicles(w, vehicles)
			})
		},
	}
}

func printVehicles(w io.Writer, vehicles []model.Vehicle) {
	fmt.Fprintln(w, "ID\tPLATE\tVEHICLE\tSEATS\tSTATUS")
	for _, v := range vehicles {
		status := string(v.Status)
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s %s\t%d\t%s\n", v.ID, v.Plate, v.Brand, v.Model, v.Seats, status)
	}
}
