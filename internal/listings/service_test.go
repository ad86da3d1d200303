package listings

import (
	"context"
	"testing"
	"time"

	"covoit/internal/events"
	"covoit/internal/forms"
	apperrors "covoit/pkg/errors"
	"covoit/pkg/logger"
	"covoit/pkg/model"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type mockAPI struct {
	listings map[int64]model.Listing
	mine     []model.Listing
	reserved []int64
	updated  []int64
}

func (m *mockAPI) List(context.Context) ([]model.Listing, error) { return nil, nil }

func (m *mockAPI) Get(_ context.Context, id int64) (*model.Listing, error) {
	l, ok := m.listings[id]
	if !ok {
		return nil, apperrors.FromResponse(404, nil)
	}
	return &l, nil
}

func (m *mockAPI) Create(_ context.Context, in model.ListingInput) (*model.Listing, error) {
	return &model.Listing{ID: 50, DepartureTime: in.DepartureTime, TotalSeats: in.TotalSeats}, nil
}

func (m *mockAPI) Update(_ context.Context, id int64, in model.ListingInput) (*model.Listing, error) {
	m.updated = append(m.updated, id)
	return &model.Listing{ID: id, DepartureTime: in.DepartureTime, TotalSeats: in.TotalSeats}, nil
}

func (m *mockAPI) Delete(context.Context, int64) error { return nil }

func (m *mockAPI) Reserve(_ context.Context, id int64) error {
	m.reserved = append(m.reserved, id)
	return nil
}

func (m *mockAPI) CancelReservation(context.Context, int64) error { return nil }

func (m *mockAPI) Participants(context.Context, int64) (*model.Roster, error) {
	return &model.Roster{}, nil
}

func (m *mockAPI) MyReservations(context.Context) ([]model.Listing, error) { return m.mine, nil }

type recorder struct{ types []string }

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.types = append(r.types, e.Type)
	return nil
}

func newTestService(api *mockAPI, pub events.Publisher) Service {
	v := forms.NewValidator(logger.Discard()).WithClock(func() time.Time { return now })
	return NewService(api, v, pub, logger.Discard())
}

func input() model.ListingInput {
	return model.ListingInput{
		DepartureTime: now.Add(48 * time.Hour),
		Origin:        model.Address{City: "Nîmes"},
		Destination:   model.Address{City: "Arles"},
		TotalSeats:    4,
		VehicleID:     1,
	}
}

func TestUpdate_OnlyWhileUnbooked(t *testing.T) {
	api := &mockAPI{listings: map[int64]model.Listing{
		1: {ID: 1, TotalSeats: 4, OccupiedSeats: 0},
		2: {ID: 2, TotalSeats: 4, OccupiedSeats: 1},
	}}
	pub := &recorder{}
	svc := newTestService(api, pub)

	if _, err := svc.Update(context.Background(), 1, input()); err != nil {
		t.Fatalf("unbooked listing must be editable: %v", err)
	}
	if _, err := svc.Update(context.Background(), 2, input()); !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Errorf("booked listing must be refused, got %v", err)
	}
	if len(api.updated) != 1 || api.updated[0] != 1 {
		t.Errorf("only listing 1 should reach the backend, got %v", api.updated)
	}
	if len(pub.types) != 1 || pub.types[0] != events.ListingUpdated {
		t.Errorf("unexpected events %v", pub.types)
	}
}

func TestReserveSeat(t *testing.T) {
	api := &mockAPI{listings: map[int64]model.Listing{
		1: {ID: 1, TotalSeats: 4, OccupiedSeats: 2},
		2: {ID: 2, TotalSeats: 4, OccupiedSeats: 3},
	}}
	pub := &recorder{}
	svc := newTestService(api, pub)

	if err := svc.ReserveSeat(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.ReserveSeat(context.Background(), 2); !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Errorf("full listing must be refused, got %v", err)
	}
	if err := svc.ReserveSeat(context.Background(), 3); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("unknown listing must be not found, got %v", err)
	}
	if len(api.reserved) != 1 || len(pub.types) != 1 || pub.types[0] != events.ListingSeatReserved {
		t.Errorf("expected exactly one reservation and event, got %v / %v", api.reserved, pub.types)
	}
}

func TestCreate_ValidatesFirst(t *testing.T) {
	svc := newTestService(&mockAPI{}, nil)

	bad := input()
	bad.DepartureTime = now.Add(-time.Hour)
	if _, err := svc.Create(context.Background(), bad); !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Errorf("past departure must fail validation, got %v", err)
	}

	created, err := svc.Create(context.Background(), input())
	if err != nil || created.ID != 50 {
		t.Errorf("unexpected result %+v %v", created, err)
	}
}

func TestMyReservations_Sorted(t *testing.T) {
	api := &mockAPI{mine: []model.Listing{
		{ID: 2, DepartureTime: now.Add(48 * time.Hour)},
		{ID: 1, DepartureTime: now.Add(24 * time.Hour)},
	}}
	got, err := newTestService(api, nil).MyReservations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("expected soonest first, got %+v", got)
	}
}

func TestInvalidIDs(t *testing.T) {
	svc := newTestService(&mockAPI{}, nil)
	ctx := context.Background()

	if err := svc.Delete(ctx, 0); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("Delete(0) = %v", err)
	}
	if err := svc.CancelSeat(ctx, -1); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("CancelSeat(-1) = %v", err)
	}
	if _, err := svc.Participants(ctx, 0); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("Participants(0) = %v", err)
	}
}
