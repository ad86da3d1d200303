// Package listing holds the ride sharing commands.
package listing

import (
	"fmt"
	"io"
	"time"

	"covoit/internal/command/common"
	"covoit/internal/search"
	"covoit/pkg/model"

	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:    "listing",
		Aliases: []string{"ride"},
		Usage:   "Search, offer and book shared rides",
		Subcommands: []*cli.Command{
			searchCommand(),
			showCommand(),
			createCommand(),
			updateCommand(),
			deleteCommand(),
			reserveCommand(),
			cancelCommand(),
			rosterCommand(),
			mineCommand(),
		},
	}
}

func searchCommand() *cli.Command {
	flags := []cli.Flag{
		common.TimeFlag(paramAt, "Wished departure time", true),
		&cli.Float64Flag{Name: paramFlexibility, Usage: "Accepted gap around the departure time, in hours; 0 asks for the exact time (default from configuration)"},
	}
	flags = append(flags, addressFlags(prefixFrom, false)...)
	flags = append(flags, addressFlags(prefixTo, false)...)

	return &cli.Command{
		Name:  "search",
		Usage: "Find open rides near a departure time, nearest first",
		Flags: flags,
		Action: func(cCtx *cli.Context) error {
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			flexibility := svc.Searcher.DefaultFlexibility()
			if cCtx.IsSet(paramFlexibility) {
				flex := cCtx.Float64(paramFlexibility)
				if flex < 0 {
					return cli.Exit("--flex cannot be negative", 2)
				}
				flexibility = time.Duration(flex * float64(time.Hour))
			}

			res := svc.Searcher.Search(cCtx.Context, search.Criteria{
				Origin:      readAddress(cCtx, prefixFrom),
				Destination: readAddress(cCtx, prefixTo),
				Target:      common.Time(cCtx, paramAt),
				Flexibility: flexibility,
			})
			if res.Err != nil {
				return res.Err
			}

			return common.Print(cCtx, res, func(w io.Writer) {
				if len(res.Listings) == 0 {
					fmt.Fprintln(w, "No ride matches your search.")
					return
				}
				printListings(w, res.Listings)
				if len(res.Unverified) > 0 {
					fmt.Fprintf(w, "\nCould not check your participation in %v; they may include your own rides.\n", res.Unverified)
				}
			})
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one ride",
		ArgsUsage: "<id>",
		Action: func(cCtx *cli.Context) error {
			id, err := common.ArgID(cCtx, 0, "listing id")
			if err != nil {
				return err
			}
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			l, err := svc.Listings.Get(cCtx.Context, id)
			if err != nil {
				return err
			}
			return common.Print(cCtx, l, func(w io.Writer) { printListings(w, []model.Listing{*l}) })
		},
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Offer a ride",
		Flags: listingInputFlags(true),
		Action: func(cCtx *cli.Context) error {
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			l, err := svc.Listings.Create(cCtx.Context, readListingInput(cCtx, model.ListingInput{}))
			if err != nil {
				return err
			}
			return common.Print(cCtx, l, func(w io.Writer) {
				fmt.Fprintf(w, "Ride %d created.\n", l.ID)
			})
		},
	}
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Edit a ride nobody has booked yet",
		ArgsUsage: "<id>",
		Flags:     listingInputFlags(false),
		Action: func(cCtx *cli.Context) error {
			id, err := common.ArgID(cCtx, 0, "listing id")
			if err != nil {
				return err
			}
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			current, err := svc.Listings.Get(cCtx.Context, id)
			if err != nil {
				return err
			}
			base := model.ListingInput{
				DepartureTime: current.DepartureTime,
				Origin:        current.Origin,
				Destination:   current.Destination,
				TotalSeats:    current.TotalSeats,
				VehicleID:     current.VehicleID,
			}
			l, err := svc.Listings.Update(cCtx.Context, id, readListingInput(cCtx, base))
			if err != nil {
				return err
			}
			return common.Print(cCtx, l, func(w io.Writer) {
				fmt.Fprintf(w, "Ride %d updated.\n", l.ID)
			})
		},
	}
}

func deleteCommand() *cli.Command {
	return idCommand("delete", "Withdraw one of your rides", func(cCtx *cli.Context, id int64) error {
		svc, err := common.GetServices(cCtx)
		if err != nil {
			return err
		}
		if err := svc.Listings.Delete(cCtx.Context, id); err != nil {
			return err
		}
		return common.Done(cCtx, "Ride %d deleted.", id)
	})
}

func reserveCommand() *cli.Command {
	return idCommand("reserve", "Book a seat on a ride", func(cCtx *cli.Context, id int64) error {
		svc, err := common.GetServices(cCtx)
		if err != nil {
			return err
		}
		if err := svc.Listings.ReserveSeat(cCtx.Context, id); err != nil {
			return err
		}
		return common.Done(cCtx, "Seat booked on ride %d.", id)
	})
}

func cancelCommand() *cli.Command {
	return idCommand("cancel", "Give back your seat on a ride", func(cCtx *cli.Context, id int64) error {
		svc, err := common.GetServices(cCtx)
		if err != nil {
			return err
		}
		if err := svc.Listings.CancelSeat(cCtx.Context, id); err != nil {
			return err
		}
		return common.Done(cCtx, "Seat on ride %d cancelled.", id)
	})
}

func rosterCommand() *cli.Command {
	return idCommand("roster", "List the driver and passengers of a ride", func(cCtx *cli.Context, id int64) error {
		svc, err := common.GetServices(cCtx)
		if err != nil {
			return err
		}
		roster, err := svc.Listings.Participants(cCtx.Context, id)
		if err != nil {
			return err
		}
		return common.Print(cCtx, roster, func(w io.Writer) {
			fmt.Fprintf(w, "Driver:\t%s\n", common.Name(roster.Driver))
			for _, p := range roster.Passengers {
				fmt.Fprintf(w, "Passenger:\t%s\n", common.Name(p))
			}
		})
	})
}

func mineCommand() *cli.Command {
	return &cli.Command{
		Name:  "mine",
		Usage: "List the rides you hold a seat on",
		Action: func(cCtx *cli.Context) error {
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			listings, err := svc.Listings.MyReservations(cCtx.Context)
			if err != nil {
				return err
			}
			return common.Print(cCtx, listings, func(w io.Writer) {
				if len(listings) == 0 {
					fmt.Fprintln(w, "You have no booked ride.")
					return
				}
				printListings(w, listings)
			})
		},
	}
}

func idCommand(name, usage string, run func(cCtx *cli.Context, id int64) error) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<id>",
		Action: func(cCtx *cli.Context) error {
			id, err := common.ArgID(cCtx, 0, "listing id")
			if err != nil {
				return err
			}
			return run(cCtx, id)
		},
	}
}

func printListings(w io.Writer, listings []model.Listing) {
	fmt.Fprintln(w, "ID\tDEPARTURE\tFROM\tTO\tFREE SEATS")
	for _, l := range listings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
			l.ID,
			common.FormatTime(l.DepartureTime),
			common.FormatAddress(l.Origin),
			common.FormatAddress(l.Destination),
			l.FreeSeats(),
		)
	}
}
