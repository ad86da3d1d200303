package model

import (
	"errors"
	"time"
)

// TimeWindow is a half-open range [Start, End).
type TimeWindow struct {
	Start time.Time `json:"dateDebut" validate:"required"`
	End   time.Time `json:"dateFin" validate:"required,gtfield=Start"`
}

func NewTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{Start: start, End: end}
}

func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t falls inside the closed range [Start, End].
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ReservationInterval is a window owned by one user against one vehicle.
type ReservationInterval struct {
	ID        int64  `json:"id,omitempty"`
	VehicleID int64  `json:"vehiculeId"`
	UserID    int64  `json:"utilisateurId,omitempty"`
	Vehicle   string `json:"vehicule,omitempty"`
	TimeWindow
}

type VehicleReservationInput struct {
	VehicleID int64 `json:"vehiculeId" validate:"required,min=1"`
	TimeWindow
}

var ErrInvalidTruncation = errors.New("reservation can only be shortened to an instant strictly inside its window")

// Truncate ends the reservation early at the given instant. Only the end may
// move, only earlier, and the window must stay non-empty.
func (r ReservationInterval) Truncate(at time.Time) (ReservationInterval, error) {
	if !at.After(r.Start) || !at.Before(r.End) {
		return r, ErrInvalidTruncation
	}
	r.End = at
	return r, nil
}
