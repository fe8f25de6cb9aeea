package user

import (
	"context"
	"testing"

	userRepo "telecare/database/repository/user"
	"telecare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepo is an in-memory account store.
type fakeUserRepo struct {
	byID    map[string]models.User
	byEmail map[string]string // email -> ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	if _, exists := f.byEmail[u.Email]; exists {
		return userRepo.ErrDuplicateEmail
	}
	f.byID[u.ID] = *u
	f.byEmail[u.Email] = u.ID
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return f.GetByID(ctx, id)
}

func (f *fakeUserRepo) ListDoctors(ctx context.Context) ([]models.User, error) {
	var doctors []models.User
	for _, u := range f.byID {
		if u.Role == models.RoleDoctor {
			doctors = append(doctors, u)
		}
	}
	return doctors, nil
}

func (f *fakeUserRepo) UpdateFCMToken(ctx context.Context, id, token string) error {
	u, ok := f.byID[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.FCMToken = token
	f.byID[id] = u
	return nil
}

func registration(email string, role models.Role) RegistrationRequest {
	return RegistrationRequest{
		Email:    email,
		Name:     "Test User",
		Password: "correct horse battery",
		Role:     role,
	}
}

func TestRegister_HashesPasswordAndIssuesToken(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}

	res, err := svc.Register(context.Background(), registration("Pat@Example.com", models.RolePatient))
	require.NoError(t, err)

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "pat@example.com", res.User.Email)
	assert.NotEqual(t, "correct horse battery", res.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(res.User.PasswordHash), []byte("correct horse battery")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}
	ctx := context.Background()

	_, err := svc.Register(ctx, registration("pat@example.com", models.RolePatient))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registration("pat@example.com", models.RolePatient))
	assert.Equal(t, userRepo.ErrDuplicateEmail, err)
}

func TestAuthenticate(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}
	ctx := context.Background()

	_, err := svc.Register(ctx, registration("pat@example.com", models.RolePatient))
	require.NoError(t, err)

	res, err := svc.Authenticate(ctx, "PAT@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Authenticate(ctx, "pat@example.com", "wrong password")
	assert.Equal(t, ErrInvalidCredentials, err)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "correct horse battery")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestListDoctors_FallsThroughWithoutCache(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}
	ctx := context.Background()

	_, err := svc.Register(ctx, registration("doc@example.com", models.RoleDoctor))
	require.NoError(t, err)
	_, err = svc.Register(ctx, registration("pat@example.com", models.RolePatient))
	require.NoError(t, err)

	doctors, err := svc.ListDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, models.RoleDoctor, doctors[0].Role)
}
