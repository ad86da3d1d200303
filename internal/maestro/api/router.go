package api

import (
	maestro "covoit/internal/maestro/core"
	"covoit/internal/maestro/handlers"
	"covoit/internal/maestro/service"
	"covoit/pkg/contracts"
	"covoit/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// Routes returns the flow endpoints and the health endpoints, mounted
// separately so that probes skip the rate limiter.
func Routes(deps *maestro.Deps, backend handlers.Pinger, maxConcurrentFlows int, log *logger.Logger) (app, health contracts.Handler) {
	maestroService := service.NewMaestroService(deps, maestro.NewLimiter(maxConcurrentFlows), log)
	return handlers.NewFlowHandler(maestroService, log), handlers.NewHealthHandler(backend, log)
}

// SetupRouter mounts both groups on a single router, for tests and embedding.
func SetupRouter(deps *maestro.Deps, backend handlers.Pinger, log *logger.Logger) *httprouter.Router {
	app, health := Routes(deps, backend, maestro.MaxConcurrentFlows, log)
	router := httprouter.New()
	app.RegisterRoutes(router)
	health.RegisterRoutes(router)
	return router
}
