package core

import (
	"context"
	"encoding/json"
	"time"

	"covoit/internal/availability"
	"covoit/internal/search"
	apperrors "covoit/pkg/errors"
	"covoit/pkg/logger"
)

// Deps are the services a flow step may call.
type Deps struct {
	Searcher     *search.Searcher
	Availability availability.Service
	Log          *logger.Logger
}

type MaestroContext struct {
	Ctx     context.Context
	Input   map[string]any
	Process map[string]any
	Output  map[string]any
	Deps    *Deps
}

func NewMaestroContext(ctx context.Context, input map[string]any, deps *Deps) *MaestroContext {
	if input == nil {
		input = map[string]any{}
	}
	return &MaestroContext{
		Ctx:     ctx,
		Input:   input,
		Process: make(map[string]any),
		Output:  make(map[string]any),
		Deps:    deps,
	}
}

// Bind decodes the raw input into target through its JSON tags.
func (c *MaestroContext) Bind(target any) error {
	raw, err := json.Marshal(c.Input)
	if err != nil {
		return apperrors.InvalidInput("flow input is not valid JSON")
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return apperrors.InvalidInput("flow input does not match the expected shape: " + err.Error())
	}
	return nil
}

func (c *MaestroContext) ExtractString(key string) string {
	s, _ := c.Input[key].(string)
	return s
}

// ExtractTime parses an RFC 3339 input. ok is false when the key is absent.
func (c *MaestroContext) ExtractTime(key string) (t time.Time, ok bool, err error) {
	raw := c.ExtractString(key)
	if IsMissing(raw) {
		return time.Time{}, false, nil
	}
	t, err = time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, true, apperrors.Validation("Invalid date", map[string]any{
			key: key + " must be an RFC 3339 timestamp",
		})
	}
	return t, true, nil
}

// ExtractInt64 accepts JSON numbers, which decode as float64.
func (c *MaestroContext) ExtractInt64(key string) (int64, bool) {
	switch v := c.Input[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}
