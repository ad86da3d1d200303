package flows

import (
	maestro "covoit/internal/maestro/core"
	"covoit/internal/maestro/types"
	"covoit/internal/search"
	apperrors "covoit/pkg/errors"
)

func SearchListings() maestro.Flow {
	return maestro.NewFlow(SEARCH_LISTINGS,
		maestro.NewStep("parse_criteria", parseCriteria),
		maestro.NewStep("search", runSearch),
	)
}

// required: dateDepart
// optional: adresseDepart, adresseArrivee, flexibiliteHeures
func parseCriteria(ctx *maestro.MaestroContext) error {
	var in types.SearchListingsInput
	if err := ctx.Bind(&in); err != nil {
		return err
	}
	if in.Target.IsZero() {
		return maestro.MissingParamErr("dateDepart")
	}
	if in.FlexibilityHours != nil && *in.FlexibilityHours < 0 {
		return apperrors.Validation("Invalid flexibility", map[string]any{
			"flexibiliteHeures": "flexibiliteHeures cannot be negative",
		})
	}

	ctx.Process["criteria"] = search.Criteria{
		Origin:      in.Origin,
		Destination: in.Destination,
		Target:      in.Target,
		Flexibility: in.Flexibility(ctx.Deps.Searcher.DefaultFlexibility()),
	}
	return nil
}

func runSearch(ctx *maestro.MaestroContext) error {
	c := ctx.Process["criteria"].(search.Criteria)
	res := ctx.Deps.Searcher.Search(ctx.Ctx, c)
	if res.Err != nil {
		return res.Err
	}

	ctx.Output["result"] = types.SearchListingsOutput{
		Seq:        res.Seq,
		Listings:   res.Listings,
		Unverified: res.Unverified,
		Stale:      res.Stale,
	}
	return nil
}
