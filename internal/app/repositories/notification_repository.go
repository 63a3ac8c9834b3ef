package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcbcollege/noticeboard/internal/app/models"
	"github.com/dcbcollege/noticeboard/internal/pkg/logger"
)

// ErrNotificationNotFound is returned when a notification row does not exist.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationWithFiles is a notification row joined with its aggregated
// attachment names and sizes, in upload order.
type NotificationWithFiles struct {
	models.Notification
	FileNames []string
	FileSizes []int64
}

// NotificationFilter narrows public listings.
type NotificationFilter struct {
	Priority string
	Category string
	Search   string
}

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts the notification row inside its own transaction and returns
// the generated id. Attachment storage happens after this commit; only the
// row insert itself is atomic.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (int64, error) {
	sql, args, err := r.sb.Insert("notifications").
		Columns("title", "description", "priority", "category", "valid_until", "created_by", "folder_path").
		Values(n.Title, n.Description, n.Priority, n.Category, n.ValidUntil, n.CreatedBy, n.FolderPath).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create notification query: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create notification query")
		return 0, fmt.Errorf("failed to save notification: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

// GetByID retrieves a single notification.
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	sql, args, err := r.selectColumns().
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get notification query: %w", err)
	}

	n := &models.Notification{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&n.ID, &n.Title, &n.Description, &n.Priority, &n.Category,
		&n.ValidUntil, &n.CreatedAt, &n.CreatedBy, &n.FolderPath, &n.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error scanning notification row")
		return nil, fmt.Errorf("error getting notification: %w", err)
	}

	return n, nil
}

// Delete removes a notification row. Attachment rows cascade away at the
// database level. Returns ErrNotificationNotFound when no row matched.
func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("notifications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete notification query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error executing delete notification query")
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

const fileAggColumns = `COALESCE(array_agg(f.original_name ORDER BY f.id) FILTER (WHERE f.id IS NOT NULL), '{}'),
		COALESCE(array_agg(f.file_size ORDER BY f.id) FILTER (WHERE f.id IS NOT NULL), '{}')`

// ListAll returns every notification, newest first, with aggregated file data.
func (r *NotificationRepository) ListAll(ctx context.Context) ([]NotificationWithFiles, error) {
	query := `
		SELECT n.id, n.title, n.description, n.priority, n.category,
		       n.valid_until, n.created_at, n.created_by, n.folder_path, n.status,
		       ` + fileAggColumns + `
		FROM notifications n
		LEFT JOIN notification_files f ON n.id = f.notification_id
		GROUP BY n.id
		ORDER BY n.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list notifications query")
		return nil, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	return scanNotificationsWithFiles(rows)
}

// ListPublic returns notifications still inside their validity window,
// ordered by priority then recency, with the filtered total for pagination.
func (r *NotificationRepository) ListPublic(ctx context.Context, filter NotificationFilter, today time.Time, offset uint64, limit int) ([]NotificationWithFiles, int64, error) {
	where, args := publicWhere(filter, today)

	countQuery := `SELECT COUNT(DISTINCT n.id) FROM notifications n ` + where
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting notices: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT n.id, n.title, n.description, n.priority, n.category,
		       n.valid_until, n.created_at, n.created_by, n.folder_path, n.status,
		       `+fileAggColumns+`
		FROM notifications n
		LEFT JOIN notification_files f ON n.id = f.notification_id
		%s
		GROUP BY n.id
		ORDER BY
		  CASE n.priority
		    WHEN 'urgent' THEN 1
		    WHEN 'high' THEN 2
		    WHEN 'medium' THEN 3
		    ELSE 4
		  END,
		  n.created_at DESC
		LIMIT %d OFFSET %d`, where, limit, offset)

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing public notices query")
		return nil, 0, fmt.Errorf("error querying notices: %w", err)
	}
	defer rows.Close()

	notices, err := scanNotificationsWithFiles(rows)
	if err != nil {
		return nil, 0, err
	}

	return notices, total, nil
}

func publicWhere(filter NotificationFilter, today time.Time) (string, []interface{}) {
	where := `WHERE (n.valid_until IS NULL OR n.valid_until >= $1)`
	args := []interface{}{today}
	next := 2

	if filter.Priority != "" {
		where += fmt.Sprintf(" AND n.priority = $%d", next)
		args = append(args, filter.Priority)
		next++
	}
	if filter.Category != "" {
		where += fmt.Sprintf(" AND n.category = $%d", next)
		args = append(args, filter.Category)
		next++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (n.title ILIKE $%d OR n.description ILIKE $%d)", next, next+1)
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	return where, args
}

func scanNotificationsWithFiles(rows pgx.Rows) ([]NotificationWithFiles, error) {
	results := []NotificationWithFiles{}
	for rows.Next() {
		var n NotificationWithFiles
		if err := rows.Scan(
			&n.ID, &n.Title, &n.Description, &n.Priority, &n.Category,
			&n.ValidUntil, &n.CreatedAt, &n.CreatedBy, &n.FolderPath, &n.Status,
			&n.FileNames, &n.FileSizes,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning notification row")
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		results = append(results, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return results, nil
}

// Statistics aggregates dashboard counters.
func (r *NotificationRepository) Statistics(ctx context.Context, todayStart time.Time) (total, today int64, byPriority, byCategory map[string]int64, err error) {
	if err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`).Scan(&total); err != nil {
		return 0, 0, nil, nil, fmt.Errorf("error counting notifications: %w", err)
	}

	if err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE created_at >= $1 AND created_at < $2`,
		todayStart, todayStart.Add(24*time.Hour),
	).Scan(&today); err != nil {
		return 0, 0, nil, nil, fmt.Errorf("error counting today's notifications: %w", err)
	}

	byPriority, err = r.groupedCount(ctx, "priority")
	if err != nil {
		return 0, 0, nil, nil, err
	}

	byCategory, err = r.groupedCount(ctx, "category")
	if err != nil {
		return 0, 0, nil, nil, err
	}

	return total, today, byPriority, byCategory, nil
}

func (r *NotificationRepository) groupedCount(ctx context.Context, column string) (map[string]int64, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM notifications GROUP BY %s`, column, column)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error grouping notifications by %s: %w", column, err)
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("error scanning grouped count: %w", err)
		}
		counts[key] = count
	}

	return counts, rows.Err()
}

func (r *NotificationRepository) selectColumns() squirrel.SelectBuilder {
	return r.sb.Select(
		"id", "title", "description", "priority", "category",
		"valid_until", "created_at", "created_by", "folder_path", "status",
	).From("notifications")
}
