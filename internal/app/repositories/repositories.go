package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is the shared sentinel for missing rows.
var ErrNotFound = errors.New("resource not found")

// Repositories holds all the repository instances
type Repositories struct {
	AdminUserRepository        *AdminUserRepository
	NotificationRepository     *NotificationRepository
	NotificationFileRepository *NotificationFileRepository
	FacultyRepository          *FacultyRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AdminUserRepository:        NewAdminUserRepository(db),
		NotificationRepository:     NewNotificationRepository(db),
		NotificationFileRepository: NewNotificationFileRepository(db),
		FacultyRepository:          NewFacultyRepository(db),
	}
}
