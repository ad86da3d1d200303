package core

import (
	"fmt"
	"sort"

	apperrors "covoit/pkg/errors"
)

type Engine struct {
	flows   map[string]Flow
	limiter Limiter
}

func NewEngine(limiter Limiter, flows ...Flow) *Engine {
	m := map[string]Flow{}
	for _, f := range flows {
		m[f.Name()] = f
	}
	if limiter == nil {
		limiter = NewLimiter(MaxConcurrentFlows)
	}
	return &Engine{flows: m, limiter: limiter}
}

// Run executes every step of flowName in order and stops at the first
// failure. The step error is wrapped so that AppErrors keep their code.
func (e *Engine) Run(flowName string, ctx *MaestroContext) error {
	f, exists := e.flows[flowName]
	if !exists {
		return apperrors.NotFoundWithID("Flow", flowName)
	}

	return e.limiter.Run(ctx.Ctx, func() error {
		for _, step := range f.Steps() {
			if err := ctx.Ctx.Err(); err != nil {
				return apperrors.Timeout("Flow cancelled before step " + step.Name)
			}
			if err := step.Execute(ctx); err != nil {
				return fmt.Errorf("%s step failed: %w", step.Name, err)
			}
		}
		return nil
	})
}

func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.flows))
	for name := range e.flows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
