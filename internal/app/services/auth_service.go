package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dcbcollege/noticeboard/internal/app/models"
	"github.com/dcbcollege/noticeboard/internal/app/models/dto"
	"github.com/dcbcollege/noticeboard/internal/app/repositories"
	"github.com/dcbcollege/noticeboard/internal/pkg/apperrors"
	"github.com/dcbcollege/noticeboard/internal/pkg/auth"
	"github.com/dcbcollege/noticeboard/internal/pkg/logger"
)

// AuthService authenticates admin users and issues session tokens.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// adminUserStore is the account lookup surface the service needs.
type adminUserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
}

type authServiceImpl struct {
	admins adminUserStore
	jwt    *auth.JWTService
}

// NewAuthService creates a new authentication service instance
func NewAuthService(admins adminUserStore, jwt *auth.JWTService) AuthService {
	return &authServiceImpl{admins: admins, jwt: jwt}
}

// Login verifies the credentials and returns a signed session token. A
// missing account and a wrong password produce the same error so the
// response does not reveal which usernames exist.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Username and password cannot be empty")
	}

	user, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		logger.Warn().Str("username", username).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwt.GenerateToken(user.ID, user.Username, user.FullName, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Success:   true,
		Message:   "Login successful",
		Token:     token,
		ExpiresIn: expiresIn,
		User: dto.AdminInfo{
			ID:          user.ID,
			Username:    user.Username,
			DisplayName: user.FullName,
			Role:        string(user.Role),
		},
	}, nil
}
