package common

import (
	"strconv"
	"strings"
	"time"

	"covoit/internal/bootstrap"
	"covoit/pkg/config"
	"covoit/pkg/logger"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

const (
	ParamConfig      = "config"
	ParamAPIURL      = "api-url"
	ParamSessionFile = "session-file"
	ParamLogLevel    = "log-level"
	ParamJSON        = "json"
	ParamDebug       = "debug"

	metadataServices = "services"
	serviceName      = "covoit"
)

// GlobalFlags are accepted by every command. All but --config may also be
// set from the YAML file it names.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    ParamConfig,
			Aliases: []string{"c"},
			EnvVars: []string{"COVOIT_CONFIG"},
			Usage:   "YAML configuration file to use",
		},
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    ParamAPIURL,
			EnvVars: []string{config.EnvAPIBaseURL},
			Value:   config.DefaultAPIBaseURL,
			Usage:   "Backend base URL",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    ParamSessionFile,
			EnvVars: []string{config.EnvSessionFile},
			Usage:   "Where the session token is kept",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    ParamLogLevel,
			EnvVars: []string{config.EnvLogLevel},
			Value:   logger.WARN,
			Usage:   "Set logging level (debug, info, warn, error)",
		}),
		&cli.BoolFlag{
			Name:  ParamJSON,
			Usage: "Print results as JSON",
		},
		&cli.BoolFlag{
			Name:    ParamDebug,
			EnvVars: []string{"COVOIT_DEBUG"},
			Usage:   "Print full error chains",
		},
	}
}

// GetServices builds the service graph once per invocation. Flags win over
// the environment, which wins over defaults.
func GetServices(cCtx *cli.Context) (*bootstrap.Services, error) {
	if svc, ok := cCtx.App.Metadata[metadataServices].(*bootstrap.Services); ok {
		return svc, nil
	}

	cfg := config.FromEnv()
	if v := cCtx.String(ParamAPIURL); v != "" {
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}
	if v := cCtx.String(ParamSessionFile); v != "" {
		cfg.SessionFile = v
	}
	cfg.LogLevel = cCtx.String(ParamLogLevel)
	cfg.LogFormat = logger.TEXT
	cfg.Log = logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  logger.TEXT,
		Output:  cCtx.App.ErrWriter,
		Service: serviceName,
	})

	if err := cfg.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}
	cfg.LogConfiguration()

	svc, err := bootstrap.Build(cfg, serviceName)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	cCtx.App.Metadata[metadataServices] = svc
	return svc, nil
}

// Close releases what GetServices built, if anything.
func Close(cCtx *cli.Context) error {
	if svc, ok := cCtx.App.Metadata[metadataServices].(*bootstrap.Services); ok {
		return svc.Close()
	}
	return nil
}

// ArgID parses the positional argument at index i as a positive ID.
func ArgID(cCtx *cli.Context, i int, name string) (int64, error) {
	raw := cCtx.Args().Get(i)
	if raw == "" {
		return 0, cli.Exit("missing "+name+" argument", 2)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, cli.Exit("invalid "+name+": "+raw, 2)
	}
	return id, nil
}

// TimeFlag declares an RFC 3339 instant flag.
func TimeFlag(name, usage string, required bool) *cli.TimestampFlag {
	return &cli.TimestampFlag{
		Name:     name,
		Layout:   time.RFC3339,
		Usage:    usage + " (RFC 3339, e.g. 2025-06-01T14:00:00+02:00)",
		Required: required,
	}
}

// Time reads a TimeFlag. Unset flags return the zero time.
func Time(cCtx *cli.Context, name string) time.Time {
	if t := cCtx.Timestamp(name); t != nil {
		return *t
	}
	return time.Time{}
}
