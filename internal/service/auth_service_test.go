package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrdesk/review-api/internal/models"
	"github.com/hrdesk/review-api/pkg/config"
	appErrors "github.com/hrdesk/review-api/pkg/errors"
)

func authConfig(t *testing.T) config.AuthConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return config.AuthConfig{
		Username:     "admin",
		PasswordHash: string(hash),
		JWTSecret:    "test-secret",
		Expiration:   time.Hour,
		Issuer:       "review-api",
	}
}

func TestAuthServiceLoginAndValidate(t *testing.T) {
	svc := NewAuthService(authConfig(t), nil, nil)

	resp, err := svc.Login(models.LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(authConfig(t), nil, nil)

	_, err := svc.Login(models.LoginRequest{Username: "admin", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(authConfig(t), nil, nil)

	_, err := svc.Login(models.LoginRequest{Username: "mallory", Password: "s3cret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateGarbageToken(t *testing.T) {
	svc := NewAuthService(authConfig(t), nil, nil)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
