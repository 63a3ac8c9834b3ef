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

// ErrFacultyNotFound is returned when a faculty row does not exist.
var ErrFacultyNotFound = errors.New("faculty member not found")

// FacultyRepository handles faculty database operations
type FacultyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new faculty profile and returns its id.
func (r *FacultyRepository) Create(ctx context.Context, f *models.Faculty) (int64, error) {
	sql, args, err := r.sb.Insert("faculty").
		Columns("name", "designation", "department", "qualification", "specialization",
			"experience_years", "email", "phone", "profile_image", "display_order",
			"status", "bio", "research_interests", "publications").
		Values(f.Name, f.Designation, f.Department, f.Qualification, f.Specialization,
			f.ExperienceYears, f.Email, f.Phone, f.ProfileImage, f.DisplayOrder,
			f.Status, f.Bio, f.ResearchInterests, f.Publications).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create faculty query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("name", f.Name).Msg("Error creating faculty row")
		return 0, fmt.Errorf("failed to add faculty: %w", err)
	}

	return id, nil
}

// Update rewrites an existing profile. The profile image column is only
// touched when newImage is true, so an edit without a fresh upload preserves
// the stored image.
func (r *FacultyRepository) Update(ctx context.Context, f *models.Faculty, newImage bool) error {
	setMap := map[string]interface{}{
		"name":               f.Name,
		"designation":        f.Designation,
		"department":         f.Department,
		"qualification":      f.Qualification,
		"specialization":     f.Specialization,
		"experience_years":   f.ExperienceYears,
		"email":              f.Email,
		"phone":              f.Phone,
		"display_order":      f.DisplayOrder,
		"status":             f.Status,
		"bio":                f.Bio,
		"research_interests": f.ResearchInterests,
		"publications":       f.Publications,
	}
	if newImage {
		setMap["profile_image"] = f.ProfileImage
	}

	sql, args, err := r.sb.Update("faculty").
		SetMap(setMap).
		Where(squirrel.Eq{"id": f.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", f.ID).Msg("Error updating faculty row")
		return fmt.Errorf("failed to update faculty: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrFacultyNotFound
	}

	return nil
}

// Delete removes a faculty row. Returns ErrFacultyNotFound when no row matched.
func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("faculty").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error deleting faculty row")
		return fmt.Errorf("failed to delete faculty: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrFacultyNotFound
	}

	return nil
}

// GetByID retrieves one full profile, used for edit-form prefill.
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*models.Faculty, error) {
	sql, args, err := r.selectColumns().
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	f := &models.Faculty{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(facultyFields(f)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFacultyNotFound
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error getting faculty: %w", err)
	}

	return f, nil
}

// ListByDepartment returns faculty of one department ordered by display
// order then name. activeOnly restricts to active profiles for public pages.
func (r *FacultyRepository) ListByDepartment(ctx context.Context, department models.Department, activeOnly bool) ([]*models.Faculty, error) {
	builder := r.selectColumns().
		Where(squirrel.Eq{"department": department}).
		OrderBy("display_order ASC", "name ASC")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"status": models.StatusActive})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list faculty query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("department", string(department)).Msg("Error querying faculty rows")
		return nil, fmt.Errorf("error querying faculty: %w", err)
	}
	defer rows.Close()

	faculty := []*models.Faculty{}
	for rows.Next() {
		f := &models.Faculty{}
		if err := rows.Scan(facultyFields(f)...); err != nil {
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		faculty = append(faculty, f)
	}

	return faculty, rows.Err()
}

func (r *FacultyRepository) selectColumns() squirrel.SelectBuilder {
	return r.sb.Select(
		"id", "name", "designation", "department", "qualification", "specialization",
		"experience_years", "email", "phone", "profile_image", "bio",
		"research_interests", "publications", "display_order", "status",
		"created_at", "updated_at",
	).From("faculty")
}

func facultyFields(f *models.Faculty) []interface{} {
	return []interface{}{
		&f.ID, &f.Name, &f.Designation, &f.Department, &f.Qualification, &f.Specialization,
		&f.ExperienceYears, &f.Email, &f.Phone, &f.ProfileImage, &f.Bio,
		&f.ResearchInterests, &f.Publications, &f.DisplayOrder, &f.Status,
		&f.CreatedAt, &f.UpdatedAt,
	}
}
