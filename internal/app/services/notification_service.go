package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/dcbcollege/noticeboard/internal/app/models"
	"github.com/dcbcollege/noticeboard/internal/app/models/dto"
	"github.com/dcbcollege/noticeboard/internal/app/repositories"
	"github.com/dcbcollege/noticeboard/internal/pkg/apperrors"
	"github.com/dcbcollege/noticeboard/internal/pkg/filestorage"
	"github.com/dcbcollege/noticeboard/internal/pkg/helpers"
	"github.com/dcbcollege/noticeboard/internal/pkg/logger"
	"github.com/dcbcollege/noticeboard/internal/pkg/validation"
)

// PublicPageSize is the fixed page size of the public notice listing.
const PublicPageSize = 12

// HomePageLimit caps the home page notice feed.
const HomePageLimit = 10

// NotificationService defines notice board operations.
type NotificationService interface {
	Create(ctx context.Context, req *dto.UploadRequest, files []*multipart.FileHeader, createdBy string) (*dto.UploadResponse, error)
	Delete(ctx context.Context, id int64) (*dto.DeleteResponse, error)
	ListAdmin(ctx context.Context) ([]dto.AdminNotification, error)
	ListPublic(ctx context.Context, filter dto.NoticeFilter) (*dto.PublicNoticeListResponse, error)
	Latest(ctx context.Context) ([]dto.PublicNotice, error)
	Detail(ctx context.Context, id int64) (*dto.NoticeDetailResponse, error)
	Statistics(ctx context.Context) (*dto.Statistics, error)
	ResolveDownload(ctx context.Context, notificationID int64, originalName string) (*models.NotificationFile, error)
}

// notificationStore is the data access surface the service needs.
type notificationStore interface {
	Create(ctx context.Context, n *models.Notification) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]repositories.NotificationWithFiles, error)
	ListPublic(ctx context.Context, filter repositories.NotificationFilter, today time.Time, offset uint64, limit int) ([]repositories.NotificationWithFiles, int64, error)
	Statistics(ctx context.Context, todayStart time.Time) (total, today int64, byPriority, byCategory map[string]int64, err error)
}

// notificationFileStore is the attachment data access surface.
type notificationFileStore interface {
	Create(ctx context.Context, f *models.NotificationFile) (int64, error)
	ListByNotification(ctx context.Context, notificationID int64) ([]models.NotificationFile, error)
	GetFilePaths(ctx context.Context, notificationID int64) ([]string, error)
	GetByNotificationAndName(ctx context.Context, notificationID int64, originalName string) (*models.NotificationFile, error)
	CountAndTotalSize(ctx context.Context) (count, totalSize int64, err error)
}

// uploadStorage is the filesystem surface the service needs.
type uploadStorage interface {
	EnsureDateDir() (string, error)
	Store(fh *multipart.FileHeader, destPath string) error
	Exists(path string) bool
	Remove(path string) error
}

type notificationServiceImpl struct {
	notifications notificationStore
	files         notificationFileStore
	storage       uploadStorage
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(notifications notificationStore, files notificationFileStore, storage uploadStorage) NotificationService {
	return &notificationServiceImpl{
		notifications: notifications,
		files:         files,
		storage:       storage,
	}
}

// Create validates the form fields, inserts the notification row, then
// stores each attachment independently. A rejected or failed attachment is
// skipped with its reason collected; the notification itself still succeeds.
func (s *notificationServiceImpl) Create(ctx context.Context, req *dto.UploadRequest, files []*multipart.FileHeader, createdBy string) (*dto.UploadResponse, error) {
	n, err := buildNotification(req, createdBy)
	if err != nil {
		return nil, err
	}

	uploadDir, err := s.storage.EnsureDateDir()
	if err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	n.FolderPath = uploadDir

	id, err := s.notifications.Create(ctx, n)
	if err != nil {
		return nil, err
	}

	uploaded := 0
	var fileErrors []string

	for _, fh := range files {
		if fh == nil || fh.Filename == "" {
			continue
		}

		if err := filestorage.ValidateUpload(fh, filestorage.AttachmentProfile); err != nil {
			fileErrors = append(fileErrors, fmt.Sprintf("%s for file: %s", err.Error(), fh.Filename))
			continue
		}

		safeName := filestorage.SanitizeFilename(fh.Filename)
		destPath := filestorage.UniqueFilePath(filepath.Join(uploadDir, safeName))
		finalName := filepath.Base(destPath)

		if err := s.storage.Store(fh, destPath); err != nil {
			logger.Error().Err(err).Str("file", fh.Filename).Msg("Failed to store attachment")
			fileErrors = append(fileErrors, fmt.Sprintf("Failed to move uploaded file: %s", fh.Filename))
			continue
		}

		record := &models.NotificationFile{
			NotificationID: id,
			OriginalName:   fh.Filename,
			SavedName:      finalName,
			FilePath:       destPath,
			FileSize:       fh.Size,
			FileType:       fh.Header.Get("Content-Type"),
		}

		if _, err := s.files.Create(ctx, record); err != nil {
			// The file made it to disk but its row did not; remove the
			// orphan so database and filesystem stay aligned.
			_ = s.storage.Remove(destPath)
			fileErrors = append(fileErrors, fmt.Sprintf("Failed to save file record: %s", fh.Filename))
			continue
		}

		uploaded++
	}

	message := "Notification uploaded successfully"
	if len(fileErrors) > 0 {
		message += " with some file upload errors"
	}

	return &dto.UploadResponse{
		Success:        true,
		Message:        message,
		NotificationID: id,
		FilesUploaded:  uploaded,
		FileErrors:     fileErrors,
	}, nil
}

func buildNotification(req *dto.UploadRequest, createdBy string) (*models.Notification, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("Title is required")
	}
	if len(title) > validation.TitleMaxLength {
		return nil, apperrors.NewValidationError("Title is too long (maximum 255 characters)")
	}

	description := strings.TrimSpace(req.Description)
	if len(description) > validation.DescriptionMaxLength {
		return nil, apperrors.NewValidationError("Description is too long")
	}

	priority := models.Priority(req.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.IsValidPriority(priority) {
		return nil, apperrors.NewValidationError("Invalid priority level: " + req.Priority)
	}

	category := models.Category(req.Category)
	if category == "" {
		category = models.CategoryGeneral
	}
	if !models.IsValidCategory(category) {
		return nil, apperrors.NewValidationError("Invalid category: " + req.Category)
	}

	var validUntil *time.Time
	if req.ValidUntil != "" {
		if !validation.IsDateShaped(req.ValidUntil) {
			return nil, apperrors.NewValidationError("Invalid date format for valid_until")
		}
		parsed, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			return nil, apperrors.NewValidationError("Invalid date format for valid_until")
		}
		validUntil = &parsed
	}

	return &models.Notification{
		Title:       title,
		Description: description,
		Priority:    priority,
		Category:    category,
		ValidUntil:  validUntil,
		CreatedBy:   createdBy,
		Status:      models.StatusActive,
	}, nil
}

// Delete removes the notification row (attachment rows cascade) and then
// unlinks physical files best-effort. Unlink failures do not fail the
// operation; the row removal is the success criterion.
func (s *notificationServiceImpl) Delete(ctx context.Context, id int64) (*dto.DeleteResponse, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Invalid notification ID")
	}

	paths, err := s.files.GetFilePaths(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.notifications.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, err
	}

	deleted := 0
	for _, p := range paths {
		if s.storage.Exists(p) && s.storage.Remove(p) == nil {
			deleted++
		}
	}

	return &dto.DeleteResponse{
		Success:      true,
		Message:      "Notification deleted successfully",
		FilesDeleted: deleted,
	}, nil
}

// ListAdmin returns every notification, newest first, annotated for the
// dashboard table.
func (s *notificationServiceImpl) ListAdmin(ctx context.Context) ([]dto.AdminNotification, error) {
	rows, err := s.notifications.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]dto.AdminNotification, 0, len(rows))
	for _, row := range rows {
		list = append(list, dto.NewAdminNotification(row.Notification, row.FileNames, row.FileSizes))
	}

	return list, nil
}

// ListPublic returns current notices matching the filter, priority first.
func (s *notificationServiceImpl) ListPublic(ctx context.Context, filter dto.NoticeFilter) (*dto.PublicNoticeListResponse, error) {
	if filter.Priority != "" && !models.IsValidPriority(models.Priority(filter.Priority)) {
		filter.Priority = ""
	}
	if filter.Category != "" && !models.IsValidCategory(models.Category(filter.Category)) {
		filter.Category = ""
	}
	if filter.PageSize <= 0 {
		filter.PageSize = PublicPageSize
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	rows, total, err := s.notifications.ListPublic(ctx, repositories.NotificationFilter{
		Priority: filter.Priority,
		Category: filter.Category,
		Search:   strings.TrimSpace(filter.Search),
	}, dto.TodayStart(time.Now()), offset, limit)
	if err != nil {
		return nil, err
	}

	notices := make([]dto.PublicNotice, 0, len(rows))
	for _, row := range rows {
		notices = append(notices, dto.PublicNotice{Notification: row.Notification, Files: row.FileNames})
	}

	return &dto.PublicNoticeListResponse{
		Success:    true,
		Notices:    notices,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, limit),
	}, nil
}

// Latest returns the home page notice feed.
func (s *notificationServiceImpl) Latest(ctx context.Context) ([]dto.PublicNotice, error) {
	rows, _, err := s.notifications.ListPublic(ctx, repositories.NotificationFilter{}, dto.TodayStart(time.Now()), 0, HomePageLimit)
	if err != nil {
		return nil, err
	}

	notices := make([]dto.PublicNotice, 0, len(rows))
	for _, row := range rows {
		notices = append(notices, dto.PublicNotice{Notification: row.Notification, Files: row.FileNames})
	}

	return notices, nil
}

// Detail returns one notice with its attachments and an expiry flag. Expired
// notices stay reachable by direct link; only listings hide them.
func (s *notificationServiceImpl) Detail(ctx context.Context, id int64) (*dto.NoticeDetailResponse, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Invalid notification ID")
	}

	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, err
	}

	attachments, err := s.files.ListByNotification(ctx, id)
	if err != nil {
		return nil, err
	}

	files := make([]dto.NoticeFileInfo, 0, len(attachments))
	for _, f := range attachments {
		files = append(files, dto.NoticeFileInfo{
			OriginalName:  f.OriginalName,
			FileSize:      f.FileSize,
			FormattedSize: helpers.FormatFileSize(f.FileSize),
			FileType:      f.FileType,
		})
	}

	return &dto.NoticeDetailResponse{
		Success: true,
		Notice:  *n,
		Files:   files,
		Expired: n.IsExpired(time.Now()),
	}, nil
}

// ResolveDownload locates an attachment by notification id and original
// filename. The name must belong to that notification, so a crafted request
// cannot reach files of other notices, and the physical file must still exist.
func (s *notificationServiceImpl) ResolveDownload(ctx context.Context, notificationID int64, originalName string) (*models.NotificationFile, error) {
	if notificationID <= 0 || originalName == "" {
		return nil, apperrors.NewValidationError("Invalid download request")
	}

	f, err := s.files.GetByNotificationAndName(ctx, notificationID, originalName)
	if err != nil {
		if errors.Is(err, repositories.ErrFileNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, err
	}

	if !s.storage.Exists(f.FilePath) {
		logger.Warn().Str("path", f.FilePath).Msg("Attachment row exists but file is missing on disk")
		return nil, apperrors.ErrFileNotFound
	}

	return f, nil
}

// Statistics aggregates the dashboard counters.
func (s *notificationServiceImpl) Statistics(ctx context.Context) (*dto.Statistics, error) {
	total, today, byPriority, byCategory, err := s.notifications.Statistics(ctx, dto.TodayStart(time.Now()))
	if err != nil {
		return nil, err
	}

	fileCount, totalSize, err := s.files.CountAndTotalSize(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.Statistics{
		TotalNotifications: total,
		TodayUploads:       today,
		TotalFiles:         fileCount,
		TotalSize:          totalSize,
		FormattedTotalSize: helpers.FormatFileSize(totalSize),
		PriorityStats:      byPriority,
		CategoryStats:      byCategory,
	}, nil
}
