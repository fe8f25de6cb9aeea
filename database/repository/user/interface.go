package userRepo

import (
	"context"
	"errors"

	"telecare/models"
)

var (
	// ErrNotFound is returned when no user matches the query.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when registering an email already in use.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository persists portal accounts (patients, doctors, admins).
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListDoctors(ctx context.Context) ([]models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
}
