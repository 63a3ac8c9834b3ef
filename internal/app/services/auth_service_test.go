package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcbcollege/noticeboard/internal/app/models"
	"github.com/dcbcollege/noticeboard/internal/app/models/dto"
	"github.com/dcbcollege/noticeboard/internal/app/repositories"
	"github.com/dcbcollege/noticeboard/internal/pkg/apperrors"
	"github.com/dcbcollege/noticeboard/internal/pkg/auth"
)

type fakeAdminStore struct {
	users map[string]*models.AdminUser
}

func (f *fakeAdminStore) GetByUsername(_ context.Context, username string) (*models.AdminUser, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()

	hashed, err := auth.HashPassword("admin123")
	require.NoError(t, err)

	store := &fakeAdminStore{users: map[string]*models.AdminUser{
		"admin": {ID: 1, Username: "admin", Password: hashed, FullName: "Administrator", Role: models.RoleAdmin},
	}}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "test",
	})

	return NewAuthService(store, jwtService)
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, int64(1), resp.User.ID)
	assert.Equal(t, "Administrator", resp.User.DisplayName)
	assert.Equal(t, "admin", resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownUserSameError(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "admin123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginEmptyFields(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &dto.LoginRequest{Username: "", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: ""})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "   ", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
