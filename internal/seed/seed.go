package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcbcollege/noticeboard/internal/app/models"
	"github.com/dcbcollege/noticeboard/internal/app/repositories"
	"github.com/dcbcollege/noticeboard/internal/pkg/auth"
	"github.com/dcbcollege/noticeboard/internal/pkg/dberrors"
	"github.com/dcbcollege/noticeboard/internal/pkg/logger"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
	defaultAdminName     = "Administrator"
)

// CreateDefaultAdmin inserts the bootstrap admin account when no account
// with that username exists yet, so a fresh deployment is immediately
// usable. The password should be changed after first login.
func CreateDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool) error {
	adminRepo := repositories.NewAdminUserRepository(dbPool)

	exists, err := adminRepo.UsernameExists(ctx, defaultAdminUsername)
	if err != nil {
		return err
	}
	if exists {
		logger.Debug().Msg("Default admin account already present")
		return nil
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	id, err := adminRepo.Create(ctx, &models.AdminUser{
		Username: defaultAdminUsername,
		Password: hashed,
		FullName: defaultAdminName,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		// Two instances racing to seed the same database is harmless.
		if dberrors.IsUniqueViolation(err) {
			return nil
		}
		return err
	}

	logger.Info().Int64("adminID", id).Msg("Default admin account created")
	return nil
}
