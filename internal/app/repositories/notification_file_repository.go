package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcbcollege/noticeboard/internal/app/models"
	"github.com/dcbcollege/noticeboard/internal/pkg/dberrors"
	"github.com/dcbcollege/noticeboard/internal/pkg/logger"
)

// ErrFileNotFound is returned when an attachment row does not exist.
var ErrFileNotFound = errors.New("file not found")

// NotificationFileRepository handles attachment database operations
type NotificationFileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationFileRepository creates a new NotificationFileRepository
func NewNotificationFileRepository(db *pgxpool.Pool) *NotificationFileRepository {
	return &NotificationFileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an attachment row and returns its id.
func (r *NotificationFileRepository) Create(ctx context.Context, f *models.NotificationFile) (int64, error) {
	sql, args, err := r.sb.Insert("notification_files").
		Columns("notification_id", "original_name", "saved_name", "file_path", "file_size", "file_type").
		Values(f.NotificationID, f.OriginalName, f.SavedName, f.FilePath, f.FileSize, f.FileType).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create file query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		// A vanished parent row means the notification was deleted between
		// the upload starting and this insert.
		if dberrors.IsForeignKeyViolation(err) {
			return 0, ErrNotificationNotFound
		}
		logger.Error().Err(err).Str("file", f.OriginalName).Msg("Error creating attachment row")
		return 0, fmt.Errorf("failed to save file record: %w", err)
	}

	return id, nil
}

// ListByNotification returns the attachments of one notification in upload order.
func (r *NotificationFileRepository) ListByNotification(ctx context.Context, notificationID int64) ([]models.NotificationFile, error) {
	sql, args, err := r.selectColumns().
		Where(squirrel.Eq{"notification_id": notificationID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list files query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying attachment rows: %w", err)
	}
	defer rows.Close()

	files := []models.NotificationFile{}
	for rows.Next() {
		var f models.NotificationFile
		if err := rows.Scan(
			&f.ID, &f.NotificationID, &f.OriginalName, &f.SavedName,
			&f.FilePath, &f.FileSize, &f.FileType, &f.UploadDate,
		); err != nil {
			return nil, fmt.Errorf("error scanning attachment row: %w", err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

// GetFilePaths returns the stored paths for a notification's attachments,
// used by delete to unlink physical files after the cascade.
func (r *NotificationFileRepository) GetFilePaths(ctx context.Context, notificationID int64) ([]string, error) {
	sql, args, err := r.sb.Select("file_path").
		From("notification_files").
		Where(squirrel.Eq{"notification_id": notificationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build file paths query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying file paths: %w", err)
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("error scanning file path: %w", err)
		}
		paths = append(paths, p)
	}

	return paths, rows.Err()
}

// GetByNotificationAndName resolves a download request: the original filename
// must belong to the given notification.
func (r *NotificationFileRepository) GetByNotificationAndName(ctx context.Context, notificationID int64, originalName string) (*models.NotificationFile, error) {
	sql, args, err := r.selectColumns().
		Where(squirrel.Eq{"notification_id": notificationID, "original_name": originalName}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get file query: %w", err)
	}

	f := &models.NotificationFile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&f.ID, &f.NotificationID, &f.OriginalName, &f.SavedName,
		&f.FilePath, &f.FileSize, &f.FileType, &f.UploadDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		logger.Error().Err(err).Int64("notificationID", notificationID).Str("file", originalName).Msg("Error scanning attachment row")
		return nil, fmt.Errorf("error getting attachment: %w", err)
	}

	return f, nil
}

// CountAndTotalSize returns the attachment count and byte total across all
// notifications, for the dashboard statistics.
func (r *NotificationFileRepository) CountAndTotalSize(ctx context.Context) (count, totalSize int64, err error) {
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(file_size), 0) FROM notification_files`,
	).Scan(&count, &totalSize)
	if err != nil {
		return 0, 0, fmt.Errorf("error aggregating attachment sizes: %w", err)
	}
	return count, totalSize, nil
}

func (r *NotificationFileRepository) selectColumns() squirrel.SelectBuilder {
	return r.sb.Select(
		"id", "notification_id", "original_name", "saved_name",
		"file_path", "file_size", "file_type", "upload_date",
	).From("notification_files")
}
