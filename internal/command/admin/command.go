// Package admin holds the user management commands. The backend refuses
// them for non-admin accounts; the session check only avoids the round trip.
package admin

import (
	"fmt"
	"io"
	"strings"

	"covoit/internal/command/common"
	"covoit/pkg/model"

	"github.com/urfave/cli/v2"
)

const paramStatus = "status"

func Command() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Manage user accounts",
		Subcommands: []*cli.Command{
			usersCommand(),
			setStatusCommand(),
			deleteCommand(),
		},
	}
}

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "List user accounts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: paramStatus, Usage: "Only show accounts with this status (ACTIF, BANNI, SUPPRIME, NON_VERIFIE)"},
		},
		Action: func(cCtx *cli.Context) error {
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			status := model.AccountStatus(strings.ToUpper(cCtx.String(paramStatus)))
			users, err := svc.Accounts.Users(cCtx.Context, status)
			if err != nil {
				return err
			}
			return common.Print(cCtx, users, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSTATUS")
				for _, u := range users {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, common.Name(u.Identity), u.Email, u.Role, u.Status)
				}
			})
		},
	}
}

func setStatusCommand() *cli.Command {
	return &cli.Command{
		Name:      "set-status",
		Usage:     "Ban, restore or verify an account",
		ArgsUsage: "<id> <status>",
		Action: func(cCtx *cli.Context) error {
			id, err := common.ArgID(cCtx, 0, "user id")
			if err != nil {
				return err
			}
			raw := cCtx.Args().Get(1)
			if raw == "" {
				return cli.Exit("missing status argument", 2)
			}
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			status := model.AccountStatus(strings.ToUpper(raw))
			if err := svc.Accounts.SetStatus(cCtx.Context, id, status); err != nil {
				return err
			}
			return common.Done(cCtx, "User %d is now %s.", id, status)
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an account",
		ArgsUsage: "<id>",
		Action: func(cCtx *cli.Context) error {
			id, err := common.ArgID(cCtx, 0, "user id")
			if err != nil {
				return err
			}
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			if err := svc.Accounts.DeleteUser(cCtx.Context, id); err != nil {
				return err
			}
			return common.Done(cCtx, "User %d deleted.", id)
		},
	}
}
