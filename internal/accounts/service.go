// Package accounts covers the caller's profile and the admin user console.
package accounts

import (
	"context"
	"sort"

	"covoit/internal/forms"
	apperrors "covoit/pkg/errors"
	"covoit/pkg/logger"
	"covoit/pkg/model"
)

type ProfileAPI interface {
	Get(ctx context.Context) (*model.Profile, error)
	Update(ctx context.Context, update model.ProfileUpdate) (*model.Profile, error)
}

type AdminAPI interface {
	List(ctx context.Context) ([]model.Profile, error)
	SetStatus(ctx context.Context, id int64, update model.StatusUpdate) error
	Delete(ctx context.Context, id int64) error
}

// Gate is satisfied by the session.
type Gate interface {
	RequireAdmin() error
}

type Service interface {
	Profile(ctx context.Context) (*model.Profile, error)
	UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.Profile, error)
	Users(ctx context.Context, status model.AccountStatus) ([]model.Profile, error)
	SetStatus(ctx context.Context, id int64, status model.AccountStatus) error
	DeleteUser(ctx context.Context, id int64) error
}

type service struct {
	profiles  ProfileAPI
	admin     AdminAPI
	gate      Gate
	validator *forms.Validator
	log       *logger.Logger
}

func NewService(profiles ProfileAPI, admin AdminAPI, gate Gate, validator *forms.Validator, log *logger.Logger) Service {
	return &service{
		profiles:  profiles,
		admin:     admin,
		gate:      gate,
		validator: validator,
		log:       log,
	}
}

func (s *service) Profile(ctx context.Context) (*model.Profile, error) {
	return s.profiles.Get(ctx)
}

func (s *service) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.Profile, error) {
	if err := s.validator.ProfileUpdate(&update); err != nil {
		return nil, err
	}

	profile, err := s.profiles.Update(ctx, update)
	if err != nil {
		s.log.Error("Failed to update profile", "error", err)
		return nil, err
	}

	s.log.Info("Profile updated", "user_id", profile.ID)
	return profile, nil
}

// Users lists accounts sorted by last then first name. An empty status
// returns every account.
func (s *service) Users(ctx context.Context, status model.AccountStatus) ([]model.Profile, error) {
	if err := s.gate.RequireAdmin(); err != nil {
		return nil, err
	}

	users, err := s.admin.List(ctx)
	if err != nil {
		return nil, err
	}

	out := users[:0:0]
	for _, u := range users {
		if status == "" || u.Status == status {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (s *service) SetStatus(ctx context.Context, id int64, status model.AccountStatus) error {
	if err := s.gate.RequireAdmin(); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.InvalidInput("User ID must be positive")
	}

	update := model.StatusUpdate{Status: status}
	if err := s.validator.StatusUpdate(&update); err != nil {
		return err
	}
	if err := s.admin.SetStatus(ctx, id, update); err != nil {
		s.log.Error("Failed to change user status", "user_id", id, "status", status, "error", err)
		return err
	}

	s.log.Info("User status changed", "user_id", id, "status", status)
	return nil
}

func (s *service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.gate.RequireAdmin(); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.InvalidInput("User ID must be positive")
	}
	if err := s.admin.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete user", "user_id", id, "error", err)
		return err
	}

	s.log.Info("User deleted", "user_id", id)
	return nil
}
