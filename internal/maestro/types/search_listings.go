package types

import (
	"time"

	"covoit/pkg/model"
)

// SearchListingsInput is the payload of the search_listings flow.
type SearchListingsInput struct {
	Origin           model.Address `json:"adresseDepart"`
	Destination      model.Address `json:"adresseArrivee"`
	Target           time.Time     `json:"dateDepart"`
	FlexibilityHours *float64      `json:"flexibiliteHeures,omitempty"`
}

// Flexibility converts the hour count, or returns def when it was omitted.
func (i SearchListingsInput) Flexibility(def time.Duration) time.Duration {
	if i.FlexibilityHours == nil {
		return def
	}
	return time.Duration(*i.FlexibilityHours * float64(time.Hour))
}

type SearchListingsOutput struct {
	Seq        uint64          `json:"seq"`
	Listings   []model.Listing `json:"listings"`
	Unverified []int64         `json:"unverified,omitempty"`
	Stale      bool            `json:"stale,omitempty"`
}
