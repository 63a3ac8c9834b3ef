package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcbcollege/noticeboard/internal/app/models"
	"github.com/dcbcollege/noticeboard/internal/app/models/dto"
	"github.com/dcbcollege/noticeboard/internal/app/repositories"
	"github.com/dcbcollege/noticeboard/internal/pkg/apperrors"
)

var pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

// makeFileHeader builds a real multipart.FileHeader the way gin receives one.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

type fakeNotificationStore struct {
	rows   map[int64]*models.Notification
	nextID int64

	listAllRows    []repositories.NotificationWithFiles
	listPublicRows []repositories.NotificationWithFiles
	total          int64
	lastFilter     repositories.NotificationFilter
	lastOffset     uint64
	lastLimit      int

	statsTotal, statsToday int64
	byPriority, byCategory map[string]int64
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{rows: map[int64]*models.Notification{}}
}

func (f *fakeNotificationStore) Create(_ context.Context, n *models.Notification) (int64, error) {
	f.nextID++
	saved := *n
	saved.ID = f.nextID
	f.rows[f.nextID] = &saved
	return f.nextID, nil
}

func (f *fakeNotificationStore) GetByID(_ context.Context, id int64) (*models.Notification, error) {
	n, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotificationNotFound
	}
	return n, nil
}

func (f *fakeNotificationStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrNotificationNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeNotificationStore) ListAll(_ context.Context) ([]repositories.NotificationWithFiles, error) {
	return f.listAllRows, nil
}

func (f *fakeNotificationStore) ListPublic(_ context.Context, filter repositories.NotificationFilter, _ time.Time, offset uint64, limit int) ([]repositories.NotificationWithFiles, int64, error) {
	f.lastFilter = filter
	f.lastOffset = offset
	f.lastLimit = limit
	return f.listPublicRows, f.total, nil
}

func (f *fakeNotificationStore) Statistics(_ context.Context, _ time.Time) (int64, int64, map[string]int64, map[string]int64, error) {
	return f.statsTotal, f.statsToday, f.byPriority, f.byCategory, nil
}

type fakeFileStore struct {
	rows       map[int64][]models.NotificationFile
	nextID     int64
	failCreate bool
	count      int64
	totalSize  int64
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{rows: map[int64][]models.NotificationFile{}}
}

func (f *fakeFileStore) Create(_ context.Context, file *models.NotificationFile) (int64, error) {
	if f.failCreate {
		return 0, errors.New("failed to save file record")
	}
	f.nextID++
	saved := *file
	saved.ID = f.nextID
	f.rows[file.NotificationID] = append(f.rows[file.NotificationID], saved)
	return f.nextID, nil
}

func (f *fakeFileStore) ListByNotification(_ context.Context, notificationID int64) ([]models.NotificationFile, error) {
	return f.rows[notificationID], nil
}

func (f *fakeFileStore) GetFilePaths(_ context.Context, notificationID int64) ([]string, error) {
	var paths []string
	for _, file := range f.rows[notificationID] {
		paths = append(paths, file.FilePath)
	}
	return paths, nil
}

func (f *fakeFileStore) GetByNotificationAndName(_ context.Context, notificationID int64, originalName string) (*models.NotificationFile, error) {
	for _, file := range f.rows[notificationID] {
		if file.OriginalName == originalName {
			found := file
			return &found, nil
		}
	}
	return nil, repositories.ErrFileNotFound
}

func (f *fakeFileStore) CountAndTotalSize(_ context.Context) (int64, int64, error) {
	return f.count, f.totalSize, nil
}

type fakeStorage struct {
	dateDir   string
	files     map[string]bool
	failStore bool
	removed   []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{dateDir: filepath.Join("uploads", "2025", "06", "15"), files: map[string]bool{}}
}

func (f *fakeStorage) EnsureDateDir() (string, error) { return f.dateDir, nil }

func (f *fakeStorage) EnsureSubDir(name string) (string, error) {
	return filepath.Join("uploads", name), nil
}

func (f *fakeStorage) Store(_ *multipart.FileHeader, destPath string) error {
	if f.failStore {
		return errors.New("disk full")
	}
	f.files[destPath] = true
	return nil
}

func (f *fakeStorage) Exists(path string) bool { return f.files[path] }

func (f *fakeStorage) Remove(path string) error {
	delete(f.files, path)
	f.removed = append(f.removed, path)
	return nil
}

func newTestNotificationService(t *testing.T) (*notificationServiceImpl, *fakeNotificationStore, *fakeFileStore, *fakeStorage) {
	t.Helper()
	notifications := newFakeNotificationStore()
	files := newFakeFileStore()
	storage := newFakeStorage()
	svc := NewNotificationService(notifications, files, storage).(*notificationServiceImpl)
	return svc, notifications, files, storage
}

func TestCreateNotificationWithAttachments(t *testing.T) {
	svc, notifications, files, storage := newTestNotificationService(t)

	req := &dto.UploadRequest{
		Title:      "Exam Schedule",
		Priority:   "high",
		Category:   "exam",
		ValidUntil: "2025-12-31",
	}
	attachments := []*multipart.FileHeader{
		makeFileHeader(t, "schedule 2025.pdf", pdfContent),
		makeFileHeader(t, "rooms.pdf", pdfContent),
	}

	resp, err := svc.Create(context.Background(), req, attachments, "Administrator")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Notification uploaded successfully", resp.Message)
	assert.Equal(t, 2, resp.FilesUploaded)
	assert.Empty(t, resp.FileErrors)

	saved := notifications.rows[resp.NotificationID]
	require.NotNil(t, saved)
	assert.Equal(t, models.PriorityHigh, saved.Priority)
	assert.Equal(t, models.CategoryExam, saved.Category)
	assert.Equal(t, "Administrator", saved.CreatedBy)
	assert.Equal(t, storage.dateDir, saved.FolderPath)
	require.NotNil(t, saved.ValidUntil)
	assert.Equal(t, 2025, saved.ValidUntil.Year())

	records := files.rows[resp.NotificationID]
	require.Len(t, records, 2)
	assert.Equal(t, "schedule 2025.pdf", records[0].OriginalName)
	assert.Equal(t, "schedule_2025.pdf", records[0].SavedName)
	assert.True(t, storage.Exists(records[0].FilePath))
}

func TestCreateNotificationDefaultsPriorityAndCategory(t *testing.T) {
	svc, notifications, _, _ := newTestNotificationService(t)

	resp, err := svc.Create(context.Background(), &dto.UploadRequest{Title: "Holiday"}, nil, "Administrator")
	require.NoError(t, err)

	saved := notifications.rows[resp.NotificationID]
	assert.Equal(t, models.PriorityMedium, saved.Priority)
	assert.Equal(t, models.CategoryGeneral, saved.Category)
	assert.Nil(t, saved.ValidUntil)
	assert.Equal(t, 0, resp.FilesUploaded)
}

func TestCreateNotificationValidation(t *testing.T) {
	svc, _, _, _ := newTestNotificationService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *dto.UploadRequest
		wantMsg string
	}{
		{"missing title", &dto.UploadRequest{}, "Title is required"},
		{"blank title", &dto.UploadRequest{Title: "   "}, "Title is required"},
		{"bad priority", &dto.UploadRequest{Title: "x", Priority: "critical"}, "Invalid priority level: critical"},
		{"bad category", &dto.UploadRequest{Title: "x", Category: "sports"}, "Invalid category: sports"},
		{"bad date", &dto.UploadRequest{Title: "x", ValidUntil: "31-12-2025"}, "Invalid date format for valid_until"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req, nil, "Administrator")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestCreateNotificationSkipsRejectedFile(t *testing.T) {
	svc, _, files, _ := newTestNotificationService(t)

	attachments := []*multipart.FileHeader{
		makeFileHeader(t, "notes.pdf", pdfContent),
		makeFileHeader(t, "tool.exe", []byte("MZ\x90\x00")),
	}

	resp, err := svc.Create(context.Background(), &dto.UploadRequest{Title: "Mixed"}, attachments, "Administrator")
	require.NoError(t, err)

	assert.True(t, resp.Success, "notification itself still succeeds")
	assert.Equal(t, "Notification uploaded successfully with some file upload errors", resp.Message)
	assert.Equal(t, 1, resp.FilesUploaded)
	require.Len(t, resp.FileErrors, 1)
	assert.Contains(t, resp.FileErrors[0], "file type not allowed")
	assert.Contains(t, resp.FileErrors[0], "tool.exe")
	assert.Len(t, files.rows[resp.NotificationID], 1)
}

func TestCreateNotificationCompensatesFailedRecord(t *testing.T) {
	svc, _, files, storage := newTestNotificationService(t)
	files.failCreate = true

	attachments := []*multipart.FileHeader{makeFileHeader(t, "notes.pdf", pdfContent)}

	resp, err := svc.Create(context.Background(), &dto.UploadRequest{Title: "Orphan check"}, attachments, "Administrator")
	require.NoError(t, err)

	assert.Equal(t, 0, resp.FilesUploaded)
	require.Len(t, resp.FileErrors, 1)
	assert.Contains(t, resp.FileErrors[0], "Failed to save file record")

	// The stored file was unlinked again.
	assert.Empty(t, storage.files)
	require.Len(t, storage.removed, 1)
}

func TestDeleteNotificationRemovesFiles(t *testing.T) {
	svc, notifications, files, storage := newTestNotificationService(t)

	id, err := notifications.Create(context.Background(), &models.Notification{Title: "Old"})
	require.NoError(t, err)

	onDisk := filepath.Join(storage.dateDir, "a.pdf")
	missing := filepath.Join(storage.dateDir, "b.pdf")
	storage.files[onDisk] = true
	files.rows[id] = []models.NotificationFile{
		{NotificationID: id, OriginalName: "a.pdf", FilePath: onDisk},
		{NotificationID: id, OriginalName: "b.pdf", FilePath: missing},
	}

	resp, err := svc.Delete(context.Background(), id)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.FilesDeleted, "only files present on disk count")
	assert.Empty(t, notifications.rows)
	assert.False(t, storage.Exists(onDisk))
}

func TestDeleteNotificationNotFound(t *testing.T) {
	svc, _, _, _ := newTestNotificationService(t)

	_, err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)

	_, err = svc.Delete(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestListPublicDropsInvalidFilters(t *testing.T) {
	svc, notifications, _, _ := newTestNotificationService(t)
	notifications.total = 25

	resp, err := svc.ListPublic(context.Background(), dto.NoticeFilter{
		Priority: "critical",
		Category: "sports",
		Page:     2,
	})
	require.NoError(t, err)

	assert.Empty(t, notifications.lastFilter.Priority)
	assert.Empty(t, notifications.lastFilter.Category)
	assert.Equal(t, uint64(PublicPageSize), notifications.lastOffset)
	assert.Equal(t, PublicPageSize, notifications.lastLimit)
	assert.Equal(t, int64(25), resp.Pagination.TotalItems)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestLatestUsesHomeLimit(t *testing.T) {
	svc, notifications, _, _ := newTestNotificationService(t)

	_, err := svc.Latest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(0), notifications.lastOffset)
	assert.Equal(t, HomePageLimit, notifications.lastLimit)
}

func TestDetailReportsExpiry(t *testing.T) {
	svc, notifications, files, _ := newTestNotificationService(t)

	past := time.Now().AddDate(0, 0, -2)
	id, err := notifications.Create(context.Background(), &models.Notification{
		Title:      "Expired notice",
		ValidUntil: &past,
	})
	require.NoError(t, err)
	files.rows[id] = []models.NotificationFile{
		{NotificationID: id, OriginalName: "old.pdf", FileSize: 2048},
	}

	resp, err := svc.Detail(context.Background(), id)
	require.NoError(t, err)

	assert.True(t, resp.Expired)
	require.Len(t, resp.Files, 1)
	assert.Equal(t, "old.pdf", resp.Files[0].OriginalName)
	assert.Equal(t, "2 KB", resp.Files[0].FormattedSize)
}

func TestDetailNotFound(t *testing.T) {
	svc, _, _, _ := newTestNotificationService(t)

	_, err := svc.Detail(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
}

func TestStatistics(t *testing.T) {
	svc, notifications, files, _ := newTestNotificationService(t)
	notifications.statsTotal = 10
	notifications.statsToday = 2
	notifications.byPriority = map[string]int64{"urgent": 1, "medium": 9}
	notifications.byCategory = map[string]int64{"general": 10}
	files.count = 7
	files.totalSize = 1536

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), stats.TotalNotifications)
	assert.Equal(t, int64(2), stats.TodayUploads)
	assert.Equal(t, int64(7), stats.TotalFiles)
	assert.Equal(t, "1.5 KB", stats.FormattedTotalSize)
	assert.Equal(t, int64(1), stats.PriorityStats["urgent"])
}

func TestResolveDownload(t *testing.T) {
	svc, _, files, storage := newTestNotificationService(t)

	path := filepath.Join(storage.dateDir, "notes.pdf")
	storage.files[path] = true
	files.rows[5] = []models.NotificationFile{
		{NotificationID: 5, OriginalName: "notes.pdf", FilePath: path, FileSize: 10},
	}

	record, err := svc.ResolveDownload(context.Background(), 5, "notes.pdf")
	require.NoError(t, err)
	assert.Equal(t, path, record.FilePath)

	// Name belonging to another notification does not resolve.
	_, err = svc.ResolveDownload(context.Background(), 6, "notes.pdf")
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)

	// Row present but file gone from disk.
	delete(storage.files, path)
	_, err = svc.ResolveDownload(context.Background(), 5, "notes.pdf")
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)

	_, err = svc.ResolveDownload(context.Background(), 0, "notes.pdf")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
