package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lease-backend/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db)

	user, err := svc.Register(&models.UserRegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "secret-password", user.PasswordHash)

	got, err := svc.Login(&models.UserLoginRequest{
		Email:    "alice@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(&models.UserRegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	_, err = svc.Register(&models.UserRegisterRequest{
		Name:     "alice2",
		Email:    "alice@example.com",
		Password: "another-password",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(&models.UserRegisterRequest{
		Name:     "ab",
		Email:    "not-an-email",
		Password: "short",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(&models.UserRegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	_, err = svc.Login(&models.UserLoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&models.UserLoginRequest{
		Email:    "nobody@example.com",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestListUsersExcludesSecrets(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db)

	createTestUser(t, db, "alice", "alice@example.com")
	createTestUser(t, db, "bob", "bob@example.com")

	users, err := svc.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Name)
	assert.Equal(t, "bob@example.com", users[1].Email)
}
