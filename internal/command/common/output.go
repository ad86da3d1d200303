package common

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"covoit/pkg/model"

	"github.com/urfave/cli/v2"
)

const displayLayout = "Mon 02 Jan 2006 15:04"

// Print writes v as indented JSON under --json and calls text otherwise.
func Print(cCtx *cli.Context, v any, text func(w io.Writer)) error {
	w := cCtx.App.Writer
	if cCtx.Bool(ParamJSON) {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}

// Done prints a one-line confirmation, or {"ok":true} under --json.
func Done(cCtx *cli.Context, format string, args ...any) error {
	return Print(cCtx, map[string]bool{"ok": true}, func(w io.Writer) {
		fmt.Fprintf(w, format+"\n", args...)
	})
}

func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(displayLayout)
}

func FormatAddress(a model.Address) string {
	out := a.City
	if a.PostalCode != "" {
		out = a.PostalCode + " " + out
	}
	if a.Street != "" {
		street := a.Street
		if a.Number != "" {
			street = a.Number + " " + street
		}
		out = street + ", " + out
	}
	return out
}

func Name(id model.Identity) string {
	return id.FirstName + " " + id.LastName
}
