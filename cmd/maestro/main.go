package main

import (
	"covoit/internal/bootstrap"
	"covoit/internal/maestro/api"
	maestro "covoit/internal/maestro/core"
	"covoit/pkg/app"
	"covoit/pkg/config"
)

const serviceName = "maestro"

func main() {
	cfg := config.Load(serviceName)
	log := cfg.Log
	log.Info("Starting Maestro gateway", "base_url", cfg.APIBaseURL)

	services, err := bootstrap.Build(cfg, serviceName)
	if err != nil {
		log.Fatal("Failed to initialize services", "error", err)
	}
	if user, ok := services.Session.Current(); ok {
		log.Info("Serving on behalf of stored session", "email", user.Profile.Email)
	} else {
		log.Warn("No stored session, flows that need authentication will fail until `covoit login` is run")
	}

	appHandler, healthHandler := api.Routes(services.MaestroDeps(), services.Client.HTTP, maestro.MaxConcurrentFlows, log)

	application := app.NewApplication()
	application.SetApp(cfg, healthHandler, appHandler)
	application.OnShutdown(services.Close)
	application.Run()
}
