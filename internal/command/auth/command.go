// Package auth holds the account commands: login, register, logout, whoami
// and profile.
package auth

import (
	"fmt"
	"io"

	"covoit/internal/command/common"
	"covoit/pkg/model"

	"github.com/urfave/cli/v2"
)

const (
	flagEmail     = "email"
	flagPassword  = "password"
	flagFirstName = "first-name"
	flagLastName  = "last-name"
	flagPhone     = "phone"
)

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagEmail, Aliases: []string{"e"}, Required: true, Usage: "Account email"},
		&cli.StringFlag{Name: flagPassword, Aliases: []string{"p"}, Required: true, EnvVars: []string{"COVOIT_PASSWORD"}, Usage: "Account password"},
	}
}

func identityFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagFirstName, Required: required, Usage: "First name"},
		&cli.StringFlag{Name: flagLastName, Required: required, Usage: "Last name"},
		&cli.StringFlag{Name: flagPhone, Usage: "Phone number, national or international format"},
	}
}

func Commands() []*cli.Command {
	return []*cli.Command{
		loginCommand(),
		registerCommand(),
		logoutCommand(),
		whoamiCommand(),
		profileCommand(),
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in and keep the session for later commands",
		Flags: credentialFlags(),
		Action: func(cCtx *cli.Context) error {
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			user, err := svc.Session.Login(cCtx.Context, cCtx.String(flagEmail), cCtx.String(flagPassword))
			if err != nil {
				return err
			}
			return common.Print(cCtx, user, func(w io.Writer) {
				fmt.Fprintf(w, "Signed in as %s <%s>\n", common.Name(user.Profile.Identity), user.Profile.Email)
			})
		},
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account",
		Flags: append(credentialFlags(), identityFlags(true)...),
		Action: func(cCtx *cli.Context) error {
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			user, err := svc.Session.Register(cCtx.Context, model.RegisterInput{
				Email:    cCtx.String(flagEmail),
				Password: cCtx.String(flagPassword),
				Phone:    cCtx.String(flagPhone),
				Identity: model.Identity{
					FirstName: cCtx.String(flagFirstName),
					LastName:  cCtx.String(flagLastName),
				},
			})
			if err != nil {
				return err
			}
			if user == nil {
				return common.Done(cCtx, "Account created. Check your emails to verify it before signing in.")
			}
			return common.Done(cCtx, "Account created, signed in as %s", user.Profile.Email)
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Forget the stored session",
		Action: func(cCtx *cli.Context) error {
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			if err := svc.Session.Logout(); err != nil {
				return err
			}
			return common.Done(cCtx, "Signed out")
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the signed-in user, refreshing it from the backend",
		Action: func(cCtx *cli.Context) error {
			svc, err := common.GetServices(cCtx)
			if err != nil {
				return err
			}
			user, err := svc.Session.Refresh(cCtx.Context)
			if err != nil {
				return err
			}
			return common.Print(cCtx, user, func(w io.Writer) {
				p := user.Profile
				fmt.Fprintf(w, "Name:\t%s\n", common.Name(p.Identity))
				fmt.Fprintf(w, "Email:\t%s\n", p.Email)
				fmt.Fprintf(w, "Role:\t%s\n", p.Role)
				fmt.Fprintf(w, "Session ends:\t%s\n", common.FormatTime(user.ExpiresAt))
			})
		},
	}
}

func profileCommand() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Show or edit your profile",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show your profile",
				Action: func(cCtx *cli.Context) error {
					svc, err := common.GetServices(cCtx)
					if err != nil {
						return err
					}
					profile, err := svc.Accounts.Profile(cCtx.Context)
					if err != nil {
						return err
					}
					return printProfile(cCtx, profile)
				},
			},
			{
				Name:  "update",
				Usage: "Change your name or phone number",
				Flags: identityFlags(false),
				Action: func(cCtx *cli.Context) error {
					svc, err := common.GetServices(cCtx)
					if err != nil {
						return err
					}
					current, err := svc.Accounts.Profile(cCtx.Context)
					if err != nil {
						return err
					}
					update := model.ProfileUpdate{Phone: current.Phone, Identity: current.Identity}
					if cCtx.IsSet(flagFirstName) {
						update.FirstName = cCtx.String(flagFirstName)
					}
					if cCtx.IsSet(flagLastName) {
						update.LastName = cCtx.String(flagLastName)
					}
					if cCtx.IsSet(flagPhone) {
						update.Phone = cCtx.String(flagPhone)
					}
					profile, err := svc.Accounts.UpdateProfile(cCtx.Context, update)
					if err != nil {
						return err
					}
					return printProfile(cCtx, profile)
				},
			},
		},
	}
}

func printProfile(cCtx *cli.Context, p *model.Profile) error {
	return common.Print(cCtx, p, func(w io.Writer) {
		fmt.Fprintf(w, "Name:\t%s\n", common.Name(p.Identity))
		fmt.Fprintf(w, "Email:\t%s\n", p.Email)
		fmt.Fprintf(w, "Phone:\t%s\n", p.Phone)
		fmt.Fprintf(w, "Status:\t%s\n", p.Status)
	})
}
