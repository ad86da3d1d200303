package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"covoit/internal/events"
	"covoit/internal/forms"
	apperrors "covoit/pkg/errors"
	"covoit/pkg/logger"
	"covoit/pkg/model"
)

// ReservationAPI is the backend resource holding the caller's vehicle reservations.
type ReservationAPI interface {
	Mine(ctx context.Context) ([]model.ReservationInterval, error)
	Create(ctx context.Context, input model.VehicleReservationInput) (*model.ReservationInterval, error)
	Update(ctx context.Context, id int64, input model.VehicleReservationInput) (*model.ReservationInterval, error)
	Delete(ctx context.Context, id int64) error
}

// FleetAPI answers fleet-wide availability for company vehicles.
type FleetAPI interface {
	Available(ctx context.Context, w model.TimeWindow) ([]model.Vehicle, error)
}

type Service interface {
	CheckPersonalConflict(ctx context.Context, candidate model.TimeWindow, excludeID int64) error
	AvailableCompanyVehicles(ctx context.Context, w model.TimeWindow) ([]model.Vehicle, error)
	MyReservations(ctx context.Context) ([]model.ReservationInterval, error)
	Reserve(ctx context.Context, input model.VehicleReservationInput) (*model.ReservationInterval, error)
	Reschedule(ctx context.Context, id int64, input model.VehicleReservationInput) (*model.ReservationInterval, error)
	EndEarly(ctx context.Context, id int64, at time.Time) (*model.ReservationInterval, error)
	Cancel(ctx context.Context, id int64) error
}

type service struct {
	reservations ReservationAPI
	fleet        FleetAPI
	validator    *forms.Validator
	events       events.Publisher
	log          *logger.Logger
}

func NewService(
	reservations ReservationAPI,
	fleet FleetAPI,
	validator *forms.Validator,
	publisher events.Publisher,
	log *logger.Logger,
) Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &service{
		reservations: reservations,
		fleet:        fleet,
		validator:    validator,
		events:       publisher,
		log:          log,
	}
}

func invalidWindow() *apperrors.AppError {
	return apperrors.Validation("The end date must be after the start date", map[string]any{
		"dateFin": "dateFin must be later than the start date",
	})
}

// CheckPersonalConflict fails with a conflict error when candidate overlaps
// one of the caller's reservations. excludeID skips the reservation being edited.
func (s *service) CheckPersonalConflict(ctx context.Context, candidate model.TimeWindow, excludeID int64) error {
	if !IsValidWindow(candidate) {
		return invalidWindow()
	}

	mine, err := s.reservations.Mine(ctx)
	if err != nil {
		s.log.Error("Failed to fetch own reservations", "error", err)
		return err
	}

	existing := make([]model.ReservationInterval, 0, len(mine))
	for _, r := range mine {
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		existing = append(existing, r)
	}

	conflicts := Conflicts(candidate, existing)
	if len(conflicts) == 0 {
		return nil
	}

	details := make(map[string]any, len(conflicts))
	for _, c := range conflicts {
		details[strconv.FormatInt(c.ID, 10)] = fmt.Sprintf("%s to %s",
			c.Start.Format(time.DateTime), c.End.Format(time.DateTime))
	}
	return apperrors.Conflict("You already have a vehicle reservation during this period").WithDetails(details)
}

func (s *service) AvailableCompanyVehicles(ctx context.Context, w model.TimeWindow) ([]model.Vehicle, error) {
	if !IsValidWindow(w) {
		return nil, invalidWindow()
	}

	vehicles, err := s.fleet.Available(ctx, w)
	if err != nil {
		s.log.Error("Failed to query company vehicle availability", "error", err)
		return nil, err
	}
	return vehicles, nil
}

// MyReservations returns the caller's reservations ordered by start.
func (s *service) MyReservations(ctx context.Context) ([]model.ReservationInterval, error) {
	mine, err := s.reservations.Mine(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].Start.Before(mine[j].Start)
	})
	return mine, nil
}

func (s *service) Reserve(ctx context.Context, input model.VehicleReservationInput) (*model.ReservationInterval, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}
	if err := s.CheckPersonalConflict(ctx, input.TimeWindow, 0); err != nil {
		return nil, err
	}

	created, err := s.reservations.Create(ctx, input)
	if err != nil {
		s.log.Error("Failed to create vehicle reservation", "vehicle_id", input.VehicleID, "error", err)
		return nil, err
	}

	s.log.Info("Vehicle reservation created",
		"id", created.ID,
		"vehicle_id", created.VehicleID,
		"start", created.Start,
		"end", created.End,
	)
	s.emit(ctx, events.VehicleReservationCreated, created)
	return created, nil
}

func (s *service) Reschedule(ctx context.Context, id int64, input model.VehicleReservationInput) (*model.ReservationInterval, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("Reservation ID must be positive")
	}
	if err := s.validate(&input); err != nil {
		return nil, err
	}
	if err := s.CheckPersonalConflict(ctx, input.TimeWindow, id); err != nil {
		return nil, err
	}

	updated, err := s.reservations.Update(ctx, id, input)
	if err != nil {
		s.log.Error("Failed to update vehicle reservation", "id", id, "error", err)
		return nil, err
	}

	s.log.Info("Vehicle reservation updated", "id", id, "start", updated.Start, "end", updated.End)
	s.emit(ctx, events.VehicleReservationUpdated, updated)
	return updated, nil
}

// EndEarly truncates an ongoing reservation at the given instant.
func (s *service) EndEarly(ctx context.Context, id int64, at time.Time) (*model.ReservationInterval, error) {
	mine, err := s.reservations.Mine(ctx)
	if err != nil {
		return nil, err
	}

	var current *model.ReservationInterval
	for i := range mine {
		if mine[i].ID == id {
			current = &mine[i]
			break
		}
	}
	if current == nil {
		return nil, apperrors.NotFoundWithID("Reservation", strconv.FormatInt(id, 10))
	}

	truncated, err := current.Truncate(at)
	if err != nil {
		if errors.Is(err, model.ErrInvalidTruncation) {
			return nil, apperrors.Validation("The new end must fall strictly inside the reservation", map[string]any{
				"dateFin": err.Error(),
			})
		}
		return nil, err
	}

	updated, err := s.reservations.Update(ctx, id, model.VehicleReservationInput{
		VehicleID:  truncated.VehicleID,
		TimeWindow: truncated.TimeWindow,
	})
	if err != nil {
		s.log.Error("Failed to end vehicle reservation early", "id", id, "error", err)
		return nil, err
	}

	s.log.Info("Vehicle reservation ended early", "id", id, "end", updated.End)
	s.emit(ctx, events.VehicleReservationEnded, updated)
	return updated, nil
}

func (s *service) Cancel(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.InvalidInput("Reservation ID must be positive")
	}
	if err := s.reservations.Delete(ctx, id); err != nil {
		s.log.Error("Failed to cancel vehicle reservation", "id", id, "error", err)
		return err
	}

	s.log.Info("Vehicle reservation cancelled", "id", id)
	s.emit(ctx, events.VehicleReservationCancelled, &model.ReservationInterval{ID: id})
	return nil
}

func (s *service) validate(input *model.VehicleReservationInput) error {
	if !IsValidWindow(input.TimeWindow) {
		return invalidWindow()
	}
	if s.validator == nil {
		return nil
	}
	return s.validator.Reservation(input)
}

func (s *service) emit(ctx context.Context, eventType string, r *model.ReservationInterval) {
	events.Emit(ctx, s.events, s.log, events.Event{
		Type:       eventType,
		Resource:   "vehicle_reservation",
		ResourceID: r.ID,
		Payload:    r,
	})
}
