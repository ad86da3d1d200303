// Package vehicles manages the caller's personal cars and the company fleet.
package vehicles

import (
	"context"

	"covoit/internal/forms"
	apperrors "covoit/pkg/errors"
	"covoit/pkg/logger"
	"covoit/pkg/model"
)

type VehicleAPI interface {
	Kind() model.VehicleKind
	List(ctx context.Context) ([]model.Vehicle, error)
	Get(ctx context.Context, id int64) (*model.Vehicle, error)
	Create(ctx context.Context, v model.Vehicle) (*model.Vehicle, error)
	Update(ctx context.Context, id int64, v model.Vehicle) (*model.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	List(ctx context.Context, kind model.VehicleKind) ([]model.Vehicle, error)
	Get(ctx context.Context, kind model.VehicleKind, id int64) (*model.Vehicle, error)
	Create(ctx context.Context, kind model.VehicleKind, v model.Vehicle) (*model.Vehicle, error)
	Update(ctx context.Context, kind model.VehicleKind, id int64, v model.Vehicle) (*model.Vehicle, error)
	Delete(ctx context.Context, kind model.VehicleKind, id int64) error
}

// AdminCheck gates company fleet writes.
type AdminCheck func() error

type service struct {
	fleets       map[model.VehicleKind]VehicleAPI
	validator    *forms.Validator
	requireAdmin AdminCheck
	log          *logger.Logger
}

func NewService(personal, company VehicleAPI, validator *forms.Validator, requireAdmin AdminCheck, log *logger.Logger) Service {
	if requireAdmin == nil {
		requireAdmin = func() error { return nil }
	}
	return &service{
		fleets: map[model.VehicleKind]VehicleAPI{
			model.PersonalVehicle: personal,
			model.CompanyVehicle:  company,
		},
		validator:    validator,
		requireAdmin: requireAdmin,
		log:          log,
	}
}

func (s *service) fleet(kind model.VehicleKind) (VehicleAPI, error) {
	api, ok := s.fleets[kind]
	if !ok || api == nil {
		return nil, apperrors.InvalidInput("Unknown vehicle kind: " + string(kind))
	}
	return api, nil
}

// writable resolves the fleet for a mutation. Only admins manage company cars.
func (s *service) writable(kind model.VehicleKind) (VehicleAPI, error) {
	api, err := s.fleet(kind)
	if err != nil {
		return nil, err
	}
	if kind == model.CompanyVehicle {
		if err := s.requireAdmin(); err != nil {
			return nil, err
		}
	}
	return api, nil
}

func (s *service) List(ctx context.Context, kind model.VehicleKind) ([]model.Vehicle, error) {
	api, err := s.fleet(kind)
	if err != nil {
		return nil, err
	}
	return api.List(ctx)
}

func (s *service) Get(ctx context.Context, kind model.VehicleKind, id int64) (*model.Vehicle, error) {
	api, err := s.fleet(kind)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.InvalidInput("Vehicle ID must be positive")
	}
	return api.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, kind model.VehicleKind, v model.Vehicle) (*model.Vehicle, error) {
	api, err := s.writable(kind)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Vehicle(&v); err != nil {
		return nil, err
	}

	created, err := api.Create(ctx, v)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeConflict) {
			s.log.Warn("Plate already registered", "kind", kind, "plate", v.Plate)
		} else {
			s.log.Error("Failed to create vehicle", "kind", kind, "error", err)
		}
		return nil, err
	}

	s.log.Info("Vehicle created", "kind", kind, "id", created.ID, "plate", created.Plate)
	return created, nil
}

func (s *service) Update(ctx context.Context, kind model.VehicleKind, id int64, v model.Vehicle) (*model.Vehicle, error) {
	api, err := s.writable(kind)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.InvalidInput("Vehicle ID must be positive")
	}
	if err := s.validator.Vehicle(&v); err != nil {
		return nil, err
	}

	updated, err := api.Update(ctx, id, v)
	if err != nil {
		s.log.Error("Failed to update vehicle", "kind", kind, "id", id, "error", err)
		return nil, err
	}

	s.log.Info("Vehicle updated", "kind", kind, "id", id)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, kind model.VehicleKind, id int64) error {
	api, err := s.writable(kind)
	if err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.InvalidInput("Vehicle ID must be positive")
	}
	if err := api.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete vehicle", "kind", kind, "id", id, "error", err)
		return err
	}

	s.log.Info("Vehicle deleted", "kind", kind, "id", id)
	return nil
}
