package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"juaconnect_backend/internal/auth"
	"juaconnect_backend/internal/models"
	"juaconnect_backend/internal/services/dto"
	"juaconnect_backend/pkg/apperrors"
)

func TestSignup_ClientAndArtisan(t *testing.T) {
	env := newTestEnv(t)

	client, err := env.auth.Signup(dto.SignupRequest{
		Username: "wanjiku",
		Email:    "wanjiku@example.com",
		Password: "secret123",
		Role:     models.UserRoleClient,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, client.Token)
	assert.Equal(t, models.UserRoleClient, client.User.Role)
	assert.False(t, client.User.IsVerified)

	artisan, err := env.auth.Signup(dto.SignupRequest{
		Username:        "otieno",
		Email:           "otieno@example.com",
		Password:        "secret123",
		Role:            models.UserRoleArtisan,
		ServiceCategory: "plumbing",
		ExperienceYears: 7,
		Bio:             "Master plumber",
	})
	require.NoError(t, err)
	assert.True(t, artisan.User.IsVerified)
	assert.Equal(t, "plumbing", artisan.User.ServiceCategory)

	claims, err := auth.ParseToken(artisan.Token)
	require.NoError(t, err)
	assert.Equal(t, artisan.User.ID, claims.UserID)
	assert.Equal(t, string(models.UserRoleArtisan), claims.Role)
}

func TestSignup_DefaultsToClientRole(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.auth.Signup(dto.SignupRequest{
		Username: "wanjiku",
		Email:    "wanjiku@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleClient, resp.User.Role)
}

func TestSignup_DuplicateEmailAndUsername(t *testing.T) {
	env := newTestEnv(t)
	env.signupClient(t, "wanjiku")

	_, err := env.auth.Signup(dto.SignupRequest{
		Username: "different",
		Email:    "wanjiku@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)

	_, err = env.auth.Signup(dto.SignupRequest{
		Username: "wanjiku",
		Email:    "other@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)
}

func TestSignup_WeakPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Signup(dto.SignupRequest{
		Username: "wanjiku",
		Email:    "wanjiku@example.com",
		Password: "short",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestSignin(t *testing.T) {
	env := newTestEnv(t)
	user := env.signupClient(t, "wanjiku")

	resp, err := env.auth.Signin(dto.SigninRequest{
		Email:    "wanjiku@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	// Wrong password and unknown account fail identically.
	_, err = env.auth.Signin(dto.SigninRequest{
		Email:    "wanjiku@example.com",
		Password: "wrongpass",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidCredentials, appErr.Code)

	_, err = env.auth.Signin(dto.SigninRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidCredentials, appErr.Code)
}
