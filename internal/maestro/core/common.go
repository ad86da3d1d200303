package core

import (
	"context"

	apperrors "covoit/pkg/errors"
)

const MaxConcurrentFlows = 40

// Limiter caps how many flows hit the backend at once.
type Limiter chan struct{}

func NewLimiter(size int) Limiter {
	if size <= 0 {
		size = MaxConcurrentFlows
	}
	return make(Limiter, size)
}

// Run executes fn once a slot is free. The slot is released even if fn
// panics; the panic then propagates to the caller.
func (l Limiter) Run(ctx context.Context, fn func() error) error {
	select {
	case l <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l }()

	return fn()
}

func IsMissing(str string) bool {
	return len(str) == 0
}

func MissingParamErr(paramName string) error {
	return apperrors.Validation("Missing required parameter", map[string]any{
		paramName: paramName + " is required",
	})
}
