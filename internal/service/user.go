package service

import (
	"context"

	"shareit/internal/model"
)

// UserService implements user registry rules. Email uniqueness is
// enforced by the store and surfaces as a conflict.
type UserService struct {
	users UserStore
}

// NewUserService wires a UserService.
func NewUserService(users UserStore) *UserService { return &UserService{users: users} }

// Create registers a new user.
func (s *UserService) Create(ctx context.Context, name, email string) (*model.User, error) {
	u := &model.User{Name: name, Email: email}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// Get returns a single user.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// GetAll returns every registered user.
func (s *UserService) GetAll(ctx context.Context) ([]model.User, error) {
	return s.users.GetAll(ctx)
}

// Update applies a partial update to a user. Only fields present in
// the patch are overwritten.
func (s *UserService) Update(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// Delete removes a user by id.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return translate(s.users.Delete(ctx, id))
}
