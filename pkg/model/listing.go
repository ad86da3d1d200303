package model

import "time"

type Address struct {
	Number     string `json:"numero,omitempty" validate:"omitempty,max=10"`
	Street     string `json:"libelle,omitempty" validate:"omitempty,max=200"`
	PostalCode string `json:"codePostal,omitempty" validate:"omitempty,postal_code_fr"`
	City       string `json:"ville" validate:"required,min=1,max=100"`
}

// IsEmpty reports whether no field was supplied.
func (a Address) IsEmpty() bool {
	return a.Number == "" && a.Street == "" && a.PostalCode == "" && a.City == ""
}

// Listing is a posted ride offer. TotalSeats counts the driver.
type Listing struct {
	ID            int64     `json:"id"`
	DepartureTime time.Time `json:"dateDepart"`
	Origin        Address   `json:"adresseDepart"`
	Destination   Address   `json:"adresseArrivee"`
	TotalSeats    int       `json:"nbPlaces"`
	OccupiedSeats int       `json:"nbPlacesOccupees"`
	DurationMin   int       `json:"dureeTrajet,omitempty"`
	DistanceKm    float64   `json:"distanceKm,omitempty"`
	VehicleID     int64     `json:"vehiculeId,omitempty"`
	DriverID      int64     `json:"conducteurId,omitempty"`
}

// FreeSeats is the number of passenger seats still open, the driver excluded.
func (l Listing) FreeSeats() int {
	return l.TotalSeats - 1 - l.OccupiedSeats
}

// Editable reports whether the owner may still change the listing.
func (l Listing) Editable() bool {
	return l.OccupiedSeats == 0
}

type ListingInput struct {
	DepartureTime time.Time `json:"dateDepart" validate:"required"`
	Origin        Address   `json:"adresseDepart" validate:"required"`
	Destination   Address   `json:"adresseArrivee" validate:"required"`
	TotalSeats    int       `json:"nbPlaces" validate:"required,min=2,max=9"`
	VehicleID     int64     `json:"vehiculeId" validate:"required,min=1"`
}

// Roster lists the confirmed participants of a listing.
type Roster struct {
	Driver     Identity   `json:"conducteur"`
	Passengers []Identity `json:"passagers"`
}

// Members returns the driver followed by the passengers.
func (r Roster) Members() []Identity {
	out := make([]Identity, 0, len(r.Passengers)+1)
	out = append(out, r.Driver)
	return append(out, r.Passengers...)
}
