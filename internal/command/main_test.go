package command

import (
	"fmt"
	"testing"

	apperrors "covoit/pkg/errors"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "plain error", err: fmt.Errorf("boom"), want: 1},
		{name: "cli exit", err: cli.Exit("missing listing id argument", 2), want: 2},
		{name: "validation", err: apperrors.Validation("bad", nil), want: 2},
		{name: "invalid input", err: apperrors.InvalidInput("bad id"), want: 2},
		{name: "unauthorized", err: apperrors.Unauthorized(apperrors.ReasonBanned, "banned"), want: 3},
		{name: "forbidden", err: apperrors.Forbidden("admins only"), want: 3},
		{name: "conflict", err: apperrors.Conflict("double booking"), want: 4},
		{name: "not found", err: apperrors.NotFound("Listing"), want: 5},
		{name: "network", err: apperrors.Network(nil), want: 6},
		{name: "timeout", err: apperrors.Timeout("slow"), want: 6},
		{name: "internal", err: apperrors.Internal("oops", nil), want: 1},
		{name: "wrapped app error", err: errors.Wrap(apperrors.Conflict("taken"), "reserve"), want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
