package service

import (
	"context"

	maestro "covoit/internal/maestro/core"
	"covoit/internal/maestro/flows"
	"covoit/pkg/logger"
)

type MaestroService struct {
	engine *maestro.Engine
	deps   *maestro.Deps
	Logger *logger.Logger
}

func NewMaestroService(deps *maestro.Deps, limiter maestro.Limiter, logger *logger.Logger) *MaestroService {
	return &MaestroService{
		engine: maestro.NewEngine(limiter, flows.All()...),
		deps:   deps,
		Logger: logger,
	}
}

func (s *MaestroService) ExecuteFlow(ctx context.Context, flowName string, input map[string]any) (map[string]any, error) {
	mctx := maestro.NewMaestroContext(ctx, input, s.deps)
	if err := s.engine.Run(flowName, mctx); err != nil {
		return nil, err
	}
	return mctx.Output, nil
}

func (s *MaestroService) GetAvailableFlows() []string {
	return s.engine.Names()
}
