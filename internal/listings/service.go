// Package listings manages ride offers and seat bookings.
package listings

import (
	"context"
	"sort"

	"covoit/internal/events"
	"covoit/internal/forms"
	apperrors "covoit/pkg/errors"
	"covoit/pkg/logger"
	"covoit/pkg/model"
)

type ListingAPI interface {
	List(ctx context.Context) ([]model.Listing, error)
	Get(ctx context.Context, id int64) (*model.Listing, error)
	Create(ctx context.Context, input model.ListingInput) (*model.Listing, error)
	Update(ctx context.Context, id int64, input model.ListingInput) (*model.Listing, error)
	Delete(ctx context.Context, id int64) error
	Reserve(ctx context.Context, id int64) error
	CancelReservation(ctx context.Context, id int64) error
	Participants(ctx context.Context, id int64) (*model.Roster, error)
	MyReservations(ctx context.Context) ([]model.Listing, error)
}

type Service interface {
	Get(ctx context.Context, id int64) (*model.Listing, error)
	Create(ctx context.Context, input model.ListingInput) (*model.Listing, error)
	Update(ctx context.Context, id int64, input model.ListingInput) (*model.Listing, error)
	Delete(ctx context.Context, id int64) error
	ReserveSeat(ctx context.Context, id int64) error
	CancelSeat(ctx context.Context, id int64) error
	Participants(ctx context.Context, id int64) (*model.Roster, error)
	MyReservations(ctx context.Context) ([]model.Listing, error)
}

type service struct {
	api       ListingAPI
	validator *forms.Validator
	events    events.Publisher
	log       *logger.Logger
}

func NewService(api ListingAPI, validator *forms.Validator, publisher events.Publisher, log *logger.Logger) Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &service{api: api, validator: validator, events: publisher, log: log}
}

func (s *service) Get(ctx context.Context, id int64) (*model.Listing, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.api.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, input model.ListingInput) (*model.Listing, error) {
	if err := s.validator.Listing(&input); err != nil {
		return nil, err
	}

	created, err := s.api.Create(ctx, input)
	if err != nil {
		s.log.Error("Failed to create listing", "error", err)
		return nil, err
	}

	s.log.Info("Listing created", "id", created.ID, "departure", created.DepartureTime)
	s.emit(ctx, events.ListingCreated, created.ID, created)
	return created, nil
}

// Update edits a listing that nobody has booked yet.
func (s *service) Update(ctx context.Context, id int64, input model.ListingInput) (*model.Listing, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ListingEdit(*current, &input); err != nil {
		return nil, err
	}

	updated, err := s.api.Update(ctx, id, input)
	if err != nil {
		s.log.Error("Failed to update listing", "id", id, "error", err)
		return nil, err
	}

	s.log.Info("Listing updated", "id", id)
	s.emit(ctx, events.ListingUpdated, id, updated)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.api.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete listing", "id", id, "error", err)
		return err
	}

	s.log.Info("Listing deleted", "id", id)
	s.emit(ctx, events.ListingDeleted, id, map[string]int64{"id": id})
	return nil
}

// ReserveSeat books a passenger seat. A listing known to be full is refused
// locally; the backend stays the authority on the final count.
func (s *service) ReserveSeat(ctx context.Context, id int64) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.FreeSeats() <= 0 {
		return apperrors.Conflict("This ride has no free seat left")
	}

	if err := s.api.Reserve(ctx, id); err != nil {
		s.log.Error("Failed to reserve seat", "listing_id", id, "error", err)
		return err
	}

	s.log.Info("Seat reserved", "listing_id", id)
	s.emit(ctx, events.ListingSeatReserved, id, map[string]int64{"covoitId": id})
	return nil
}

func (s *service) CancelSeat(ctx context.Context, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.api.CancelReservation(ctx, id); err != nil {
		s.log.Error("Failed to cancel seat", "listing_id", id, "error", err)
		return err
	}

	s.log.Info("Seat cancelled", "listing_id", id)
	s.emit(ctx, events.ListingSeatCancelled, id, map[string]int64{"covoitId": id})
	return nil
}

func (s *service) Participants(ctx context.Context, id int64) (*model.Roster, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.api.Participants(ctx, id)
}

// MyReservations lists the rides the caller holds a seat on, soonest first.
func (s *service) MyReservations(ctx context.Context) ([]model.Listing, error) {
	listings, err := s.api.MyReservations(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].DepartureTime.Before(listings[j].DepartureTime)
	})
	return listings, nil
}

func (s *service) emit(ctx context.Context, eventType string, id int64, payload any) {
	events.Emit(ctx, s.events, s.log, events.Event{
		Type:       eventType,
		Resource:   "listing",
		ResourceID: id,
		Payload:    payload,
	})
}

func checkID(id int64) error {
	if id <= 0 {
		return apperrors.InvalidInput("Listing ID must be positive")
	}
	return nil
}
