package services

import (
	"github.com/dcbcollege/noticeboard/internal/app/repositories"
	"github.com/dcbcollege/noticeboard/internal/pkg/auth"
	"github.com/dcbcollege/noticeboard/internal/pkg/filestorage"
)

// Services holds all service layer instances
type Services struct {
	AuthService         AuthService
	NotificationService NotificationService
	FacultyService      FacultyService
}

// NewServices wires the service layer over the repositories and storage.
func NewServices(repos *repositories.Repositories, storage *filestorage.LocalStorage, jwtService *auth.JWTService) *Services {
	return &Services{
		AuthService:         NewAuthService(repos.AdminUserRepository, jwtService),
		NotificationService: NewNotificationService(repos.NotificationRepository, repos.NotificationFileRepository, storage),
		FacultyService:      NewFacultyService(repos.FacultyRepository, storage),
	}
}
