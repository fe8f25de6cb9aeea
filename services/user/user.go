package user

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	userRepo "telecare/database/repository/user"
	"telecare/models"
	"telecare/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is the session token lifetime.
const tokenTTL = 72 * time.Hour

const (
	doctorsCacheKey = "doctors:list"
	doctorsCacheTTL = 5 * time.Minute
)

// Register creates an account and returns it with a session token.
func (s *DefaultUserService) Register(ctx context.Context, req RegistrationRequest) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(u.ID, string(u.Role), tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	return &AuthResult{User: *u, Token: token}, nil
}

// Authenticate verifies credentials and issues a session token.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == userRepo.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, string(u.Role), tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	return &AuthResult{User: *u, Token: token}, nil
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListDoctors returns the bookable doctors, served from the cache when warm.
// The listing is the portal's hottest read and tolerates brief staleness.
func (s *DefaultUserService) ListDoctors(ctx context.Context) ([]models.User, error) {
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, doctorsCacheKey).Result(); err == nil {
			var doctors []models.User
			if err := json.Unmarshal([]byte(raw), &doctors); err == nil {
				return doctors, nil
			}
		}
	}

	doctors, err := s.Repo.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(doctors); err == nil {
			s.Cache.Set(ctx, doctorsCacheKey, raw, doctorsCacheTTL)
		}
	}
	return doctors, nil
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, id, token string) error {
	return s.Repo.UpdateFCMToken(ctx, id, token)
}

// RevokeToken blacklists a token hash in the auth cache until it would have
// expired anyway.
func (s *DefaultUserService) RevokeToken(ctx context.Context, token string) error {
	client := utils.GetAuthCacheClient()
	key := "revoked:" + utils.HashToken(token)
	if err := client.Set(ctx, key, "1", tokenTTL).Err(); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}
