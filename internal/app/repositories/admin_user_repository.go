package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcbcollege/noticeboard/internal/app/models"
	"github.com/dcbcollege/noticeboard/internal/pkg/logger"
)

// AdminUserRepository handles admin account database operations
type AdminUserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAdminUserRepository creates a new AdminUserRepository
func NewAdminUserRepository(db *pgxpool.Pool) *AdminUserRepository {
	return &AdminUserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByUsername retrieves an admin account by its unique username.
func (r *AdminUserRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	sql, args, err := r.sb.Select("id", "username", "password", "full_name", "role", "created_at").
		From("admin_users").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get admin query: %w", err)
	}

	user := &models.AdminUser{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Username, &user.Password, &user.FullName, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("username", username).Msg("Error scanning admin user row")
		return nil, fmt.Errorf("error getting admin user: %w", err)
	}

	return user, nil
}

// UsernameExists checks whether an admin account exists for the username.
func (r *AdminUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM admin_users WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking admin username: %w", err)
	}
	return exists, nil
}

// Create inserts a new admin account.
func (r *AdminUserRepository) Create(ctx context.Context, user *models.AdminUser) (int64, error) {
	sql, args, err := r.sb.Insert("admin_users").
		Columns("username", "password", "full_name", "role").
		Values(user.Username, user.Password, user.FullName, user.Role).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create admin query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("username", user.Username).Msg("Error creating admin user")
		return 0, fmt.Errorf("error creating admin user: %w", err)
	}

	return id, nil
}
