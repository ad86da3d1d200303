// Package command is the covoit command-line front end.
package command

import (
	"fmt"
	"os"
	"sort"

	"covoit/internal/command/common"
	apperrors "covoit/pkg/errors"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

var version = "dev"

func Main(name string, usage string, commands ...*cli.Command) {
	flags := common.GlobalFlags()
	loadConfigFile := altsrc.InitInputSourceWithContext(flags, altsrc.NewYamlSourceFromFlagFunc(common.ParamConfig))

	app := &cli.App{
		Name:     name,
		Usage:    usage,
		Version:  version,
		Commands: commands,
		Flags:    flags,
		Metadata: map[string]any{},
		Before: func(cCtx *cli.Context) error {
			if err := loadConfigFile(cCtx); err != nil {
				return errors.Wrap(err, "could not read configuration file")
			}
			return nil
		},
		After: common.Close,
	}

	app.ExitErrHandler = func(cCtx *cli.Context, err error) {
		if err == nil {
			return
		}
		if cCtx.Bool(common.ParamDebug) {
			fmt.Fprintf(cCtx.App.ErrWriter, "%+v\n", err)
		}
		msg := err.Error()
		if apperrors.IsAppError(err) {
			msg = apperrors.UserMessage(err)
		}
		fmt.Fprintln(cCtx.App.ErrWriter, "Error:", msg)
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		os.Exit(ExitCode(err))
	}
}

// ExitCode maps an error to the process status so scripts can branch on it.
func ExitCode(err error) int {
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if !apperrors.IsAppError(err) {
		return 1
	}
	switch apperrors.AsAppError(err).Code {
	case apperrors.CodeValidation, apperrors.CodeInvalidInput:
		return 2
	case apperrors.CodeUnauthorized, apperrors.CodeForbidden:
		return 3
	case apperrors.CodeConflict:
		return 4
	case apperrors.CodeNotFound:
		return 5
	case apperrors.CodeNetwork, apperrors.CodeTimeout:
		return 6
	}
	return 1
}
