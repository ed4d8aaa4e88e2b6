package services

import (
	"context"
	"errors"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/pkg/auth"
)

// UserStore is the persistence contract for the user directory.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (string, error)
	All(ctx context.Context) ([]models.User, error)
	Promote(ctx context.Context, id string) error
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

// UserService manages directory records and role promotion.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Register creates a user record on first registration. Registering an
// email that already exists is a no-op reported through created=false.
// A supplied password is stored as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, user *models.User) (created bool, id string, err error) {
	existing, err := s.users.FindByEmail(ctx, user.Email)
	if err != nil {
		return false, "", errors.Join(ErrPersistence, err)
	}
	if existing != nil {
		return false, existing.ID.Hex(), nil
	}

	if user.Password != "" {
		hash, err := auth.HashPassword(user.Password)
		if err != nil {
			return false, "", err
		}
		user.Password = hash
	}

	id, err = s.users.Create(ctx, user)
	if err != nil {
		return false, "", errors.Join(ErrPersistence, err)
	}
	return true, id, nil
}

// All lists every directory record.
func (s *UserService) All(ctx context.Context) ([]models.User, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, errors.Join(ErrPersistence, err)
	}
	return users, nil
}

// Promote sets the user's role to admin. There is no demotion path.
func (s *UserService) Promote(ctx context.Context, id string) error {
	if err := s.users.Promote(ctx, id); err != nil {
		return errors.Join(ErrPersistence, err)
	}
	return nil
}

// IsAdminFor answers the dashboard's "am I an admin" check. Asking about
// any email other than the caller's own is answered false without touching
// the directory.
func (s *UserService) IsAdminFor(ctx context.Context, email, principalEmail string) (bool, error) {
	if email != principalEmail {
		return false, nil
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return false, errors.Join(ErrPersistence, err)
	}
	if user == nil {
		return false, nil
	}
	return user.Role.Admin(), nil
}

// Delete removes a directory record by email.
func (s *UserService) Delete(ctx context.Context, email string) (int64, error) {
	removed, err := s.users.DeleteByEmail(ctx, email)
	if err != nil {
		return 0, errors.Join(ErrPersistence, err)
	}
	return removed, nil
}
