package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, nil, "test-secret")

	user, err := svc.Register(RegisterInput{
		Email:    "cook@example.com",
		Username: "cook",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "password123", user.PasswordHash)

	token, err := svc.Login("cook@example.com", "password123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.NotEmpty(t, claims.TokenID)
}

func TestRegisterDuplicates(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, nil, "test-secret")

	_, err := svc.Register(RegisterInput{Email: "cook@example.com", Username: "cook", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Email: "cook@example.com", Username: "other", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(RegisterInput{Email: "other@example.com", Username: "cook", Password: "password123"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginErrors(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, nil, "test-secret")

	_, err := svc.Register(RegisterInput{Email: "cook@example.com", Username: "cook", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Login("cook@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsForgeries(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, nil, "test-secret")

	_, err := svc.ValidateToken(context.Background(), "not a token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// a token signed with a different secret is rejected
	other := NewAuthService(db, nil, "other-secret")
	_, err = other.Register(RegisterInput{Email: "cook@example.com", Username: "cook", Password: "password123"})
	require.NoError(t, err)

	forged, err := other.Login("cook@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
