// Package reservation holds the company vehicle booking commands.
package reservation

import (
	"fmt"
	"io"

	"covoit/internal/command/common"
	apperrors "covoit/pkg/errors"
	"covoit/pkg/model"

	"github.com/urfave/cli/v2"
)

const (
	paramVehicle = "vehicle"
	paramFrom    = "from"
	paramTo      = "to"
	paramAt      = "at"
	paramExclude = "exclude"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:    "reservation",
		Aliases: []string{"booking"},
		Usage:   "Book company vehicles",
		Subcommands: []*cli.Command{
			listCommand(),
			createCommand(),
			updateCommand(),
			cancelCommand(),
			endEarlyCommand(),
			checkCommand(),
		},
	}
}

func windowFlags() []cli.Flag {
	return []cli.Flag{
		common.TimeFlag(paramFrom, "Start of the reservation", true),
		common.TimeFlag(paramTo, "End of the reservation", true),
	}
}

func window(cCtx *cli.Context) model.TimeWindow {
	return model.NewTimeWindow(common.Time(cCtx, paramFrom), common.Time(cCtx, paramTo))
}

func input(cCtx *cli.Context) model.VehicleReservationInput {
	return model.VehicleReservationInput{
		VehicleID:  cCtx.Int64(paramVehicle),
		TimeWindow: window(cCtx),
	}
}

func vehicleFlag() cli.Flag {
	return &cli.Int64Flag{Name: paramVehicle, Required: true, Usage: "Company vehicle ID"}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List your vehicle reservations",
		Action: func(cCtx *cli.Context) error {
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			reservations, err := svc.Availability.MyReservations(cCtx.Context)
			if err != nil {
				return err
			}
			return common.Print(cCtx, reservations, func(w io.Writer) {
				if len(reservations) == 0 {
					fmt.Fprintln(w, "You have no vehicle reservation.")
					return
				}
				printReservations(w, reservations)
			})
		},
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Book a company vehicle over a period",
		Flags: append([]cli.Flag{vehicleFlag()}, windowFlags()...),
		Action: func(cCtx *cli.Context) error {
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			r, err := svc.Availability.Reserve(cCtx.Context, input(cCtx))
			if err != nil {
				return err
			}
			return common.Print(cCtx, r, func(w io.Writer) {
				fmt.Fprintf(w, "Reservation %d confirmed from %s to %s.\n",
					r.ID, common.FormatTime(r.Start), common.FormatTime(r.End))
			})
		},
	}
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Move a reservation to another period or vehicle",
		ArgsUsage: "<id>",
		Flags:     append([]cli.Flag{vehicleFlag()}, windowFlags()...),
		Action: func(cCtx *cli.Context) error {
			id, err := common.ArgID(cCtx, 0, "reservation id")
			if err != nil {
				return err
			}
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			r, err := svc.Availability.Reschedule(cCtx.Context, id, input(cCtx))
			if err != nil {
				return err
			}
			return common.Print(cCtx, r, func(w io.Writer) {
				fmt.Fprintf(w, "Reservation %d moved to %s - %s.\n",
					r.ID, common.FormatTime(r.Start), common.FormatTime(r.End))
			})
		},
	}
}

func cancelCommand() *cli.Command {
	return &cli.Command{
		Name:      "cancel",
		Usage:     "Cancel a reservation",
		ArgsUsage: "<id>",
		Action: func(cCtx *cli.Context) error {
			id, err := common.ArgID(cCtx, 0, "reservation id")
			if err != nil {
				return err
			}
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			if err := svc.Availability.Cancel(cCtx.Context, id); err != nil {
				return err
			}
			return common.Done(cCtx, "Reservation %d cancelled.", id)
		},
	}
}

func endEarlyCommand() *cli.Command {
	return &cli.Command{
		Name:      "end-early",
		Usage:     "Give the vehicle back before the planned end",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			common.TimeFlag(paramAt, "Actual return time", true),
		},
		Action: func(cCtx *cli.Context) error {
			id, err := common.ArgID(cCtx, 0, "reservation id")
			if err != nil {
				return err
			}
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			r, err := svc.Availability.EndEarly(cCtx.Context, id, common.Time(cCtx, paramAt))
			if err != nil {
				return err
			}
			return common.Print(cCtx, r, func(w io.Writer) {
				fmt.Fprintf(w, "Reservation %d now ends at %s.\n", r.ID, common.FormatTime(r.End))
			})
		},
	}
}

type checkResult struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:    "check",
		Aliases: []string{"check-overlap"},
		Usage:   "Tell whether a period collides with one of your reservations",
		Flags: append(windowFlags(),
			&cli.Int64Flag{Name: paramExclude, Usage: "Reservation ID to ignore, when editing it"},
		),
		Action: func(cCtx *cli.Context) error {
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			err = svc.Availability.CheckPersonalConflict(cCtx.Context, window(cCtx), cCtx.Int64(paramExclude))
			if err != nil && !apperrors.HasCode(err, apperrors.CodeConflict) {
				return err
			}
			res := checkResult{Available: err == nil}
			if err != nil {
				res.Message = apperrors.UserMessage(err)
			}
			return common.Print(cCtx, res, func(w io.Writer) {
				if res.Available {
					fmt.Fprintln(w, "The period is free.")
					return
				}
				fmt.Fprintln(w, res.Message)
			})
		},
	}
}

func printReservations(w io.Writer, reservations []model.ReservationInterval) {
	fmt.Fprintln(w, "ID\tVEHICLE\tFROM\tTO")
	for _, r := range reservations {
		vehicle := r.Vehicle
		if vehicle == "" {
			vehicle = fmt.Sprintf("#%d", r.VehicleID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, vehicle, common.FormatTime(r.Start), common.FormatTime(r.End))
	}
}
