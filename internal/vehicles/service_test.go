package vehicles

import (
	"context"
	"testing"

	"covoit/internal/forms"
	apperrors "covoit/pkg/errors"
	"covoit/pkg/logger"
	"covoit/pkg/model"
)

type mockFleet struct {
	kind    model.VehicleKind
	plates  map[string]bool
	created []model.Vehicle
	deleted []int64
}

func newMockFleet(kind model.VehicleKind) *mockFleet {
	return &mockFleet{kind: kind, plates: map[string]bool{}}
}

func (m *mockFleet) Kind() model.VehicleKind { return m.kind }
func (m *mockFleet) List(context.Context) ([]model.Vehicle, error) { return m.created, nil }
func (m *mockFleet) Get(context.Context, int64) (*model.Vehicle, error) { return &model.Vehicle{}, nil }

func (m *mockFleet) Create(_ context.Context, v model.Vehicle) (*model.Vehicle, error) {
	if m.plates[v.Plate] {
		return nil, apperrors.FromResponse(409, []byte(`{"message":"Immatriculation déjà utilisée"}`))
	}
	m.plates[v.Plate] = true
	v.ID = int64(len(m.created) + 1)
	m.created = append(m.created, v)
	return &v, nil
}

func (m *mockFleet) Update(_ context.Context, id int64, v model.Vehicle) (*model.Vehicle, error) {
	v.ID = id
	return &v, nil
}

func (m *mockFleet) Delete(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func car(plate string) model.Vehicle {
	return model.Vehicle{Plate: plate, Brand: "Renault", Model: "Clio", Seats: 5}
}

func TestCreate(t *testing.T) {
	personal := newMockFleet(model.PersonalVehicle)
	svc := NewService(personal, newMockFleet(model.CompanyVehicle), forms.NewValidator(logger.Discard()), nil, logger.Discard())
	ctx := context.Background()

	tests := []struct {
		name     string
		vehicle  model.Vehicle
		wantCode string
	}{
		{name: "valid plate is normalized", vehicle: car("ab-123-cd")},
		{name: "duplicate plate conflicts", vehicle: car(" AB-123-CD "), wantCode: apperrors.CodeConflict},
		{name: "malformed plate", vehicle: car("1234"), wantCode: apperrors.CodeValidation},
		{name: "missing brand", vehicle: model.Vehicle{Plate: "EF-456-GH", Model: "Zoe", Seats: 4}, wantCode: apperrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, model.PersonalVehicle, tt.vehicle)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}

	if len(personal.created) != 1 || personal.created[0].Plate != "AB-123-CD" {
		t.Errorf("expected one normalized vehicle, got %+v", personal.created)
	}
}

func TestCompanyWritesRequireAdmin(t *testing.T) {
	company := newMockFleet(model.CompanyVehicle)
	notAdmin := func() error { return apperrors.Forbidden("admins only") }
	svc := NewService(newMockFleet(model.PersonalVehicle), company, forms.NewValidator(logger.Discard()), notAdmin, logger.Discard())
	ctx := context.Background()

	if _, err := svc.Create(ctx, model.CompanyVehicle, car("AB-123-CD")); !apperrors.HasCode(err, apperrors.CodeForbidden) {
		t.Errorf("Create = %v, want forbidden", err)
	}
	if err := svc.Delete(ctx, model.CompanyVehicle, 3); !apperrors.HasCode(err, apperrors.CodeForbidden) {
		t.Errorf("Delete = %v, want forbidden", err)
	}
	if _, err := svc.List(ctx, model.CompanyVehicle); err != nil {
		t.Errorf("listing the fleet must stay open: %v", err)
	}
	if _, err := svc.Create(ctx, model.PersonalVehicle, car("AB-123-CD")); err != nil {
		t.Errorf("personal vehicles need no admin: %v", err)
	}
	if len(company.created) != 0 || len(company.deleted) != 0 {
		t.Error("company fleet must not be touched")
	}
}

func TestUnknownKind(t *testing.T) {
	svc := NewService(newMockFleet(model.PersonalVehicle), newMockFleet(model.CompanyVehicle), forms.NewValidator(logger.Discard()), nil, logger.Discard())

	if _, err := svc.List(context.Background(), "boat"); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}
