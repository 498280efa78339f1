package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
)

const testSecret = "test-secret"

func setupAuthService() AuthService {
	store := kv.NewMemoryStore()
	userRepo := repository.NewUserRepository(store)
	referralSvc := NewReferralService(repository.NewReferralRepository(store))
	return NewAuthService(userRepo, referralSvc, testSecret, 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	svc := setupAuthService()

	user, tokens, err := svc.Register("new@example.com", "password123", "New User", model.RoleCustomer)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, tokens)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash, "password must not be stored in plain text")
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := setupAuthService()

	_, _, err := svc.Register("dup@example.com", "password123", "First", model.RoleCustomer)
	require.NoError(t, err)

	// Case-insensitive duplicate check
	_, _, err = svc.Register("DUP@example.com", "password456", "Second", model.RoleCustomer)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Register_DefaultsAndInvalidRole(t *testing.T) {
	svc := setupAuthService()

	user, _, err := svc.Register("default@example.com", "password123", "User", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, user.Role)

	_, _, err = svc.Register("bad@example.com", "password123", "User", "mega-admin")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthService_Register_ProvisionsReferral(t *testing.T) {
	store := kv.NewMemoryStore()
	userRepo := repository.NewUserRepository(store)
	referralRepo := repository.NewReferralRepository(store)
	svc := NewAuthService(userRepo, NewReferralService(referralRepo), testSecret, time.Minute, time.Hour)

	user, _, err := svc.Register("ref@example.com", "password123", "User", model.RoleCustomer)
	require.NoError(t, err)

	ref, err := referralRepo.ByOwner(user.ID)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.NotEmpty(t, ref.Code)
}

func TestAuthService_Login(t *testing.T) {
	svc := setupAuthService()

	registered, _, err := svc.Register("login@example.com", "password123", "User", model.RoleBusinessAdmin)
	require.NoError(t, err)

	user, tokens, err := svc.Login("login@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := setupAuthService()

	_, _, err := svc.Register("login@example.com", "password123", "User", model.RoleCustomer)
	require.NoError(t, err)

	_, _, err = svc.Login("login@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := setupAuthService()

	// Same error as a wrong password, so responses don't leak which emails exist
	_, _, err := svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Refresh(t *testing.T) {
	svc := setupAuthService()

	registered, tokens, err := svc.Register("refresh@example.com", "password123", "User", model.RoleCustomer)
	require.NoError(t, err)

	user, rotated, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, rotated.AccessToken)

	_, _, err = svc.Refresh("not.a.token")
	assert.Error(t, err)
}
