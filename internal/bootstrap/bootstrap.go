// Package bootstrap builds the service graph shared by the CLI and the gateway.
package bootstrap

import (
	"fmt"

	"covoit/internal/accounts"
	"covoit/internal/availability"
	"covoit/internal/events"
	"covoit/internal/forms"
	"covoit/internal/listings"
	maestro "covoit/internal/maestro/core"
	"covoit/internal/search"
	"covoit/internal/session"
	"covoit/internal/vehicles"
	"covoit/pkg/client"
	"covoit/pkg/config"
	kafka_config "covoit/pkg/kafka/config"
)

type Services struct {
	Config       *config.Config
	Client       *client.Client
	Session      *session.Session
	Validator    *forms.Validator
	Events       events.Publisher
	Searcher     *search.Searcher
	Availability availability.Service
	Listings     listings.Service
	Vehicles     vehicles.Service
	Accounts     accounts.Service

	closeEvents func() error
}

// Build wires every service against cfg and restores the stored session.
// The client is created first so that the session can be its token source.
func Build(cfg *config.Config, source string) (*Services, error) {
	log := cfg.Log

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading kafka configuration: %w", err)
	}
	publisher, closeEvents, err := events.New(kafkaCfg, cfg.KafkaActivityTopic, source, log)
	if err != nil {
		return nil, err
	}

	api := client.New(cfg.APIBaseURL, cfg.RequestTimeout, nil, log)
	validator := forms.NewValidator(log)

	store := session.NewFileStore(cfg.SessionFile, cfg.IsSecure())
	sess := session.New(api.Auth, api.Profile, store, validator, log)
	api.HTTP.Tokens = sess
	if err := sess.Restore(); err != nil {
		log.Warn("Could not restore session", "path", store.Path(), "error", err)
	}

	policy := search.KeepUnverified
	if cfg.SearchDropUnverified {
		policy = search.DropUnverified
	}
	searcher := search.NewSearcher(api.Listings, api.Profile, search.Options{
		DefaultFlexibility:   cfg.SearchDefaultFlexibility,
		MaxConcurrentRosters: cfg.SearchMaxRosterFetches,
		RosterPolicy:         policy,
	}, log)

	return &Services{
		Config:       cfg,
		Client:       api,
		Session:      sess,
		Validator:    validator,
		Events:       publisher,
		Searcher:     searcher,
		Availability: availability.NewService(api.Reservations, api.Company, validator, publisher, log),
		Listings:     listings.NewService(api.Listings, validator, publisher, log),
		Vehicles:     vehicles.NewService(api.Personal, api.Company, validator, sess.RequireAdmin, log),
		Accounts:     accounts.NewService(api.Profile, api.Admin, sess, validator, log),
		closeEvents:  closeEvents,
	}, nil
}

// MaestroDeps exposes the services the flow engine needs.
func (s *Services) MaestroDeps() *maestro.Deps {
	return &maestro.Deps{
		Searcher:     s.Searcher,
		Availability: s.Availability,
		Log:          s.Config.Log,
	}
}

// Close flushes pending activity events.
func (s *Services) Close() error {
	return s.closeEvents()
}
