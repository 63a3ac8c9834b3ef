package dto

import (
	"time"

	"github.com/dcbcollege/noticeboard/internal/app/models"
	"github.com/dcbcollege/noticeboard/internal/pkg/helpers"
)

// UploadRequest carries the posted notification form. Attachments travel
// separately as multipart files under the "files" field.
type UploadRequest struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	Priority    string `form:"priority" json:"priority"`
	Category    string `form:"category" json:"category"`
	ValidUntil  string `form:"valid_until" json:"valid_until"`
}

// UploadResponse reports a created notification. The operation succeeds even
// when individual attachments were rejected; those show up in FileErrors.
type UploadResponse struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	NotificationID int64    `json:"notification_id"`
	FilesUploaded  int      `json:"files_uploaded"`
	FileErrors     []string `json:"file_errors,omitempty"`
}

// DeleteRequest identifies the notification to remove.
type DeleteRequest struct {
	ID int64 `form:"id" json:"id"`
}

// DeleteResponse reports a removed notification and how many physical files
// were actually unlinked.
type DeleteResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	FilesDeleted int    `json:"files_deleted"`
}

// AdminNotification is one row of the admin listing, annotated with
// aggregated attachment data.
type AdminNotification struct {
	models.Notification
	Files             []string `json:"files"`
	FileSizes         []int64  `json:"fileSizes"`
	TotalFileSize     int64    `json:"totalFileSize"`
	FormattedFileSize string   `json:"formattedFileSize"`
	FileCount         int      `json:"fileCount"`
	PriorityColor     string   `json:"priorityColor"`
}

// NewAdminNotification annotates a notification with its attachment aggregate.
func NewAdminNotification(n models.Notification, fileNames []string, fileSizes []int64) AdminNotification {
	var total int64
	for _, s := range fileSizes {
		total += s
	}
	return AdminNotification{
		Notification:      n,
		Files:             fileNames,
		FileSizes:         fileSizes,
		TotalFileSize:     total,
		FormattedFileSize: helpers.FormatFileSize(total),
		FileCount:         len(fileNames),
		PriorityColor:     models.PriorityColor(n.Priority),
	}
}

// NotificationListResponse is the admin listing body.
type NotificationListResponse struct {
	Success       bool                `json:"success"`
	Notifications []AdminNotification `json:"notifications"`
}

// PublicNotice is one row of the public listings.
type PublicNotice struct {
	models.Notification
	Files []string `json:"files"`
}

// PublicNoticeListResponse is the filtered, paginated public listing body.
type PublicNoticeListResponse struct {
	Success    bool                   `json:"success"`
	Notices    []PublicNotice         `json:"notices"`
	Pagination helpers.PaginationInfo `json:"pagination"`
}

// NoticeFileInfo describes one downloadable attachment on the detail view.
type NoticeFileInfo struct {
	OriginalName  string `json:"originalName"`
	FileSize      int64  `json:"fileSize"`
	FormattedSize string `json:"formattedSize"`
	FileType      string `json:"fileType"`
}

// NoticeDetailResponse is the single-notice public view.
type NoticeDetailResponse struct {
	Success bool                `json:"success"`
	Notice  models.Notification `json:"notice"`
	Files   []NoticeFileInfo    `json:"files"`
	Expired bool                `json:"expired"`
}

// NoticeFilter captures the public listing query parameters.
type NoticeFilter struct {
	Priority string
	Category string
	Search   string
	Page     int
	PageSize int
}

// Statistics is the admin dashboard aggregate.
type Statistics struct {
	TotalNotifications int64            `json:"total_notifications"`
	TodayUploads       int64            `json:"today_uploads"`
	TotalFiles         int64            `json:"total_files"`
	TotalSize          int64            `json:"total_size"`
	FormattedTotalSize string           `json:"formatted_total_size"`
	PriorityStats      map[string]int64 `json:"priority_stats"`
	CategoryStats      map[string]int64 `json:"category_stats"`
}

// StatisticsResponse wraps the dashboard aggregate.
type StatisticsResponse struct {
	Success    bool       `json:"success"`
	Statistics Statistics `json:"statistics"`
}

// TodayStart returns midnight of the given instant, used for the "today's
// uploads" statistic and the validity window comparison.
func TodayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
