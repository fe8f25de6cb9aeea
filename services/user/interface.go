package user

import (
	"context"
	"errors"

	userRepo "telecare/database/repository/user"
	"telecare/models"

	"github.com/go-redis/redis/v8"
)

// ErrInvalidCredentials is returned when email/password authentication fails.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthResult carries the account and its freshly issued token.
type AuthResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// RegistrationRequest is the payload for creating a portal account.
type RegistrationRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Name     string      `json:"name" binding:"required"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     models.Role `json:"role" binding:"required,oneof=patient doctor"`
}

// UserService manages portal accounts and session tokens.
type UserService interface {
	Register(ctx context.Context, req RegistrationRequest) (*AuthResult, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListDoctors(ctx context.Context) ([]models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
	RevokeToken(ctx context.Context, token string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository

	// Cache backs the doctors listing; nil disables caching.
	Cache *redis.Client
}
